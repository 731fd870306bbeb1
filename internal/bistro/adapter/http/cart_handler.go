package http

import (
	authhttp "bistro-boss/internal/auth/adapter/http"
	"bistro-boss/internal/bistro/domain/model"

	"github.com/gofiber/fiber/v2"
)

func (h *HTTPHandler) ListCarts(c *fiber.Ctx) error {
	carts, err := h.BistroUC.ListCarts(c.UserContext(), c.Query("email"))
	if err != nil {
		return err
	}
	return c.JSON(carts)
}

func (h *HTTPHandler) AddToCart(c *fiber.Ctx) error {
	var item model.CartItem
	if err := c.BodyParser(&item); err != nil {
		return badBody()
	}
	caller, _ := authhttp.GetUserEmail(c)
	res, err := h.BistroUC.AddToCart(c.UserContext(), caller, &item)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *HTTPHandler) UpdateCartQuantity(c *fiber.Ctx) error {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badBody()
	}
	res, err := h.BistroUC.UpdateCartQuantity(c.UserContext(), c.Params("id"), body.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *HTTPHandler) RemoveFromCart(c *fiber.Ctx) error {
	res, err := h.BistroUC.RemoveFromCart(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(res)
}
