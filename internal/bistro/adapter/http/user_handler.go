package http

import (
	"bistro-boss/internal/bistro/domain/model"
	"bistro-boss/internal/bistro/usecase"

	"github.com/gofiber/fiber/v2"
)

const msgEmailExists = "Your Email Already exist"

func (h *HTTPHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.BistroUC.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// CreateUser answers the existing-user sentinel instead of failing on a known email.
func (h *HTTPHandler) CreateUser(c *fiber.Ctx) error {
	var req usecase.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	res, err := h.BistroUC.CreateUser(c.UserContext(), req)
	if err != nil {
		return err
	}
	if res.Existing {
		return c.JSON(model.ExistingUserResult{Message: msgEmailExists})
	}
	return c.JSON(res.Inserted)
}

// CheckAdmin handles GET /users/admin/:email. RequireSelf has already matched the caller.
func (h *HTTPHandler) CheckAdmin(c *fiber.Ctx) error {
	email, err := decodedParam(c, "email")
	if err != nil {
		return err
	}
	admin, err := h.BistroUC.IsAdmin(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"admin": admin})
}

func (h *HTTPHandler) PromoteUser(c *fiber.Ctx) error {
	res, err := h.BistroUC.PromoteUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *HTTPHandler) DeleteUser(c *fiber.Ctx) error {
	res, err := h.BistroUC.DeleteUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(res)
}
