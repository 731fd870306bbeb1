package http

import (
	authhttp "bistro-boss/internal/auth/adapter/http"
	"bistro-boss/internal/bistro/usecase"
	"bistro-boss/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

const bannerText = "Bistro Boss api......."

// HTTPHandler serves the restaurant resources
type HTTPHandler struct {
	BistroUC usecase.BistroUsecaseInterface
	Log      logger.Logger
}

// NewBistroHTTPHandler creates a new HTTPHandler
func NewBistroHTTPHandler(bistroUC usecase.BistroUsecaseInterface, log logger.Logger) *HTTPHandler {
	if log == nil {
		log = logger.NewLogger()
	}
	return &HTTPHandler{
		BistroUC: bistroUC,
		Log:      log.WithComponent("bistro.http"),
	}
}

// RegisterRoutes registers every resource route with its guards
func (h *HTTPHandler) RegisterRoutes(router fiber.Router, mw *authhttp.AuthMiddleware) {
	router.Get("/", h.Banner)
	router.Get("/health", h.Health)

	h.registerMenuRoutes(router, mw)
	h.registerUserRoutes(router, mw)
	h.registerCartRoutes(router, mw)
	h.registerPaymentRoutes(router, mw)
}

func (h *HTTPHandler) registerMenuRoutes(router fiber.Router, mw *authhttp.AuthMiddleware) {
	router.Get("/menu", h.ListMenu)
	router.Get("/menu/:id", h.GetMenuItem)
	router.Post("/menu", mw.Protect(), mw.RequireAdmin(), h.CreateMenuItem)
	router.Patch("/menu/:id", mw.Protect(), mw.RequireAdmin(), h.UpdateMenuItem)
	router.Delete("/menu/:id", mw.Protect(), mw.RequireAdmin(), h.DeleteMenuItem)
	router.Post("/menu/:id/image", mw.Protect(), mw.RequireAdmin(), h.UploadMenuImage)

	router.Get("/reviews", h.ListReviews)
}

func (h *HTTPHandler) registerUserRoutes(router fiber.Router, mw *authhttp.AuthMiddleware) {
	router.Get("/users", mw.Protect(), mw.RequireAdmin(), h.ListUsers)
	router.Post("/users", h.CreateUser)
	router.Post("/user", h.CreateUser)
	router.Get("/users/admin/:email", mw.Protect(), mw.RequireSelf("email"), h.CheckAdmin)
	router.Patch("/users/admin/:id", mw.Protect(), mw.RequireAdminOrBootstrap(), h.PromoteUser)
	router.Delete("/users/:id", mw.Protect(), mw.RequireAdmin(), h.DeleteUser)
}

func (h *HTTPHandler) registerCartRoutes(router fiber.Router, mw *authhttp.AuthMiddleware) {
	carts := router.Group("/carts", mw.Protect())
	carts.Get("/", h.ListCarts)
	carts.Post("/", h.AddToCart)
	carts.Patch("/:id", h.UpdateCartQuantity)
	carts.Delete("/:id", h.RemoveFromCart)
}

func (h *HTTPHandler) registerPaymentRoutes(router fiber.Router, mw *authhttp.AuthMiddleware) {
	router.Post("/create-payment-intent", mw.Protect(), h.CreatePaymentIntent)
	router.Post("/payments", mw.Protect(), h.RecordPayment)
	router.Get("/payments/:email", mw.Protect(), mw.RequireSelf("email"), h.PaymentHistory)
	router.Get("/admin-stat", mw.Protect(), mw.RequireAdmin(), h.AdminStats)
}

// Banner handles GET /
func (h *HTTPHandler) Banner(c *fiber.Ctx) error {
	return c.SendString(bannerText)
}

// Health handles GET /health
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	if err := h.BistroUC.Ping(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func badBody() error {
	return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
}
