package usecase

import (
	"context"
	"math"
	"strings"

	"bistro-boss/internal/bistro/domain/model"
	apperrors "bistro-boss/internal/shared/errors"
)

var paymentMethodTypes = []string{"card"}

// CreatePaymentIntent asks the provider for an intent of price in minor units.
func (uc *BistroUsecase) CreatePaymentIntent(ctx context.Context, price float64) (string, error) {
	if uc.payments == nil {
		return "", apperrors.NewUnavailableError("payment provider is not configured")
	}
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return "", apperrors.NewValidationError("price must be positive")
	}

	amount := model.MinorUnits(price)
	secret, err := uc.payments.CreatePaymentIntent(ctx, amount, uc.currency, paymentMethodTypes)
	if err != nil {
		return "", apperrors.NewInfrastructureError("failed to create payment intent").WithCause(err)
	}
	uc.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"amount":   amount,
		"currency": uc.currency,
	}).Info("payment intent created")
	return secret, nil
}

// RecordPayment stores the payment and deletes the carts it lists. A caller may only
// record payments in its own name.
func (uc *BistroUsecase) RecordPayment(ctx context.Context, callerEmail string, payment *model.Payment) (*model.PaymentResult, error) {
	payment.Email = strings.TrimSpace(payment.Email)
	if payment.Email == "" {
		payment.Email = callerEmail
	}
	if payment.Email != callerEmail {
		return nil, apperrors.NewAuthorizationError("Forbidden: unauthorized access")
	}
	if payment.Price < 0 || math.IsNaN(payment.Price) || math.IsInf(payment.Price, 0) {
		return nil, apperrors.NewValidationError("price cannot be negative")
	}
	if payment.Date.IsZero() {
		payment.Date = uc.now().UTC()
	}
	if payment.Status == "" {
		payment.Status = model.PaymentStatusPending
	}
	if payment.CartIDs == nil {
		payment.CartIDs = []string{}
	}
	if payment.MenuItemIDs == nil {
		payment.MenuItemIDs = []string{}
	}

	res, err := uc.store.Payments().Record(ctx, payment)
	if err != nil {
		return nil, storeError(err, "failed to record payment")
	}
	uc.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"payment_id":    payment.ID.String(),
		"carts_cleared": res.DeleteResult.DeletedCount,
	}).Info("payment recorded")
	return res, nil
}

func (uc *BistroUsecase) PaymentHistory(ctx context.Context, email string) ([]*model.Payment, error) {
	payments, err := uc.store.Payments().FindByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err, "failed to load payments")
	}
	return payments, nil
}

// AdminStats counts users, menu items and payments and sums revenue.
func (uc *BistroUsecase) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	users, err := uc.store.Users().Count(ctx)
	if err != nil {
		return nil, storeError(err, "failed to count users")
	}
	products, err := uc.store.Menu().Count(ctx)
	if err != nil {
		return nil, storeError(err, "failed to count menu items")
	}
	orders, err := uc.store.Payments().Count(ctx)
	if err != nil {
		return nil, storeError(err, "failed to count payments")
	}
	revenue, err := uc.store.Payments().Revenue(ctx)
	if err != nil {
		return nil, storeError(err, "failed to sum revenue")
	}
	return &model.AdminStats{Users: users, Products: products, Orders: orders, Revenue: revenue}, nil
}
