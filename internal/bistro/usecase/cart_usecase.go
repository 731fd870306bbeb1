package usecase

import (
	"context"
	"strings"

	"bistro-boss/internal/bistro/domain/model"
	apperrors "bistro-boss/internal/shared/errors"
)

func (uc *BistroUsecase) ListCarts(ctx context.Context, email string) ([]*model.CartItem, error) {
	if email == "" {
		return nil, apperrors.NewValidationError("email query parameter is required")
	}
	carts, err := uc.store.Carts().FindByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err, "failed to load carts")
	}
	return carts, nil
}

// AddToCart defaults the owner to the caller and the quantity to one.
func (uc *BistroUsecase) AddToCart(ctx context.Context, callerEmail string, item *model.CartItem) (*model.InsertResult, error) {
	item.Email = strings.TrimSpace(item.Email)
	if item.Email == "" {
		item.Email = callerEmail
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}

	ve := apperrors.NewValidationErrors()
	if item.MenuID == "" {
		ve.Add("menuId", "menuId is required", nil)
	}
	if item.Quantity < 0 {
		ve.Add("quantity", "quantity must be positive", item.Quantity)
	}
	if item.Price < 0 {
		ve.Add("price", "price cannot be negative", item.Price)
	}
	if ve.HasErrors() {
		return nil, ve.ToAppError()
	}

	res, err := uc.store.Carts().Insert(ctx, item)
	if err != nil {
		return nil, storeError(err, "failed to add to cart")
	}
	return res, nil
}

func (uc *BistroUsecase) UpdateCartQuantity(ctx context.Context, id string, quantity int) (*model.UpdateResult, error) {
	docID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, apperrors.NewValidationError("quantity must be at least 1")
	}
	res, err := uc.store.Carts().UpdateQuantity(ctx, docID, quantity)
	if err != nil {
		return nil, storeError(err, "failed to update cart")
	}
	return res, nil
}

func (uc *BistroUsecase) RemoveFromCart(ctx context.Context, id string) (*model.DeleteResult, error) {
	docID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	res, err := uc.store.Carts().Delete(ctx, docID)
	if err != nil {
		return nil, storeError(err, "failed to delete cart item")
	}
	return res, nil
}
