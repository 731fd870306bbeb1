package http

import (
	"net/url"

	authhttp "bistro-boss/internal/auth/adapter/http"
	"bistro-boss/internal/bistro/domain/model"

	"github.com/gofiber/fiber/v2"
)

// CreatePaymentIntent handles POST /create-payment-intent with body {price}.
func (h *HTTPHandler) CreatePaymentIntent(c *fiber.Ctx) error {
	var body struct {
		Price float64 `json:"price"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badBody()
	}
	secret, err := h.BistroUC.CreatePaymentIntent(c.UserContext(), body.Price)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"clientSecret": secret})
}

// RecordPayment stores the payment and clears the carts it settles.
func (h *HTTPHandler) RecordPayment(c *fiber.Ctx) error {
	var payment model.Payment
	if err := c.BodyParser(&payment); err != nil {
		return badBody()
	}
	caller, _ := authhttp.GetUserEmail(c)
	res, err := h.BistroUC.RecordPayment(c.UserContext(), caller, &payment)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *HTTPHandler) PaymentHistory(c *fiber.Ctx) error {
	email, err := decodedParam(c, "email")
	if err != nil {
		return err
	}
	payments, err := h.BistroUC.PaymentHistory(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(payments)
}

func (h *HTTPHandler) AdminStats(c *fiber.Ctx) error {
	stats, err := h.BistroUC.AdminStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func decodedParam(c *fiber.Ctx, name string) (string, error) {
	v, err := url.PathUnescape(c.Params(name))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "malformed "+name)
	}
	return v, nil
}
