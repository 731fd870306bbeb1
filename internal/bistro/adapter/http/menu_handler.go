package http

import (
	"bistro-boss/internal/bistro/domain/model"
	"bistro-boss/internal/bistro/usecase"

	"github.com/gofiber/fiber/v2"
)

func (h *HTTPHandler) ListMenu(c *fiber.Ctx) error {
	items, err := h.BistroUC.ListMenu(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// GetMenuItem answers null for an unknown id.
func (h *HTTPHandler) GetMenuItem(c *fiber.Ctx) error {
	item, err := h.BistroUC.GetMenuItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func (h *HTTPHandler) CreateMenuItem(c *fiber.Ctx) error {
	var item model.MenuItem
	if err := c.BodyParser(&item); err != nil {
		return badBody()
	}
	res, err := h.BistroUC.CreateMenuItem(c.UserContext(), &item)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *HTTPHandler) UpdateMenuItem(c *fiber.Ctx) error {
	var update model.MenuUpdate
	if err := c.BodyParser(&update); err != nil {
		return badBody()
	}
	res, err := h.BistroUC.UpdateMenuItem(c.UserContext(), c.Params("id"), update)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *HTTPHandler) DeleteMenuItem(c *fiber.Ctx) error {
	res, err := h.BistroUC.DeleteMenuItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// UploadMenuImage handles multipart POST /menu/:id/image with the file in field "image".
func (h *HTTPHandler) UploadMenuImage(c *fiber.Ctx) error {
	header, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "image file is required")
	}
	file, err := header.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "image file is unreadable")
	}
	defer file.Close()

	res, err := h.BistroUC.UploadMenuImage(c.UserContext(), usecase.UploadImageRequest{
		MenuID:      c.Params("id"),
		Filename:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		return err
	}
	h.Log.WithContext(c.UserContext()).Infof("image stored for menu item %s", c.Params("id"))
	return c.JSON(res)
}

func (h *HTTPHandler) ListReviews(c *fiber.Ctx) error {
	reviews, err := h.BistroUC.ListReviews(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}
