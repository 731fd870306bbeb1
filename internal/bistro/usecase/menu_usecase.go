package usecase

import (
	"context"
	"path"
	"strings"

	"bistro-boss/internal/bistro/domain/model"
	apperrors "bistro-boss/internal/shared/errors"

	"github.com/google/uuid"
)

func (uc *BistroUsecase) ListMenu(ctx context.Context) ([]*model.MenuItem, error) {
	items, err := uc.store.Menu().FindAll(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load menu")
	}
	return items, nil
}

// GetMenuItem returns nil without error when the item does not exist.
func (uc *BistroUsecase) GetMenuItem(ctx context.Context, id string) (*model.MenuItem, error) {
	docID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	item, err := uc.store.Menu().FindByID(ctx, docID)
	if err != nil {
		return nil, storeError(err, "failed to load menu item")
	}
	return item, nil
}

func (uc *BistroUsecase) CreateMenuItem(ctx context.Context, item *model.MenuItem) (*model.InsertResult, error) {
	ve := apperrors.NewValidationErrors()
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		ve.Add("name", "name is required", nil)
	}
	if item.Price < 0 {
		ve.Add("price", "price cannot be negative", item.Price)
	}
	if ve.HasErrors() {
		return nil, ve.ToAppError()
	}

	res, err := uc.store.Menu().Insert(ctx, item)
	if err != nil {
		return nil, storeError(err, "failed to create menu item")
	}
	uc.logger.WithContext(ctx).Infof("menu item %s created", item.ID)
	return res, nil
}

func (uc *BistroUsecase) UpdateMenuItem(ctx context.Context, id string, update model.MenuUpdate) (*model.UpdateResult, error) {
	docID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if len(update.Fields()) == 0 {
		return nil, apperrors.NewValidationError("no fields to update")
	}
	if update.Price != nil && *update.Price < 0 {
		return nil, apperrors.NewValidationError("price cannot be negative")
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, apperrors.NewValidationError("name cannot be empty")
	}

	res, err := uc.store.Menu().Update(ctx, docID, update)
	if err != nil {
		return nil, storeError(err, "failed to update menu item")
	}
	return res, nil
}

func (uc *BistroUsecase) DeleteMenuItem(ctx context.Context, id string) (*model.DeleteResult, error) {
	docID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	res, err := uc.store.Menu().Delete(ctx, docID)
	if err != nil {
		return nil, storeError(err, "failed to delete menu item")
	}
	return res, nil
}

// UploadMenuImage stores the image and points the menu item at it. The object is
// removed again if the menu update fails.
func (uc *BistroUsecase) UploadMenuImage(ctx context.Context, req UploadImageRequest) (*MenuImageResult, error) {
	if uc.images == nil {
		return nil, apperrors.NewUnavailableError("image storage is not configured")
	}
	docID, err := parseID(req.MenuID)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return nil, apperrors.NewValidationError("file must be an image")
	}
	if req.Size <= 0 || req.Size > uc.maxImageBytes {
		return nil, apperrors.NewValidationError("image size is out of range")
	}

	item, err := uc.store.Menu().FindByID(ctx, docID)
	if err != nil {
		return nil, storeError(err, "failed to load menu item")
	}
	if item == nil {
		return nil, apperrors.NewNotFoundError("menu item")
	}

	key := path.Join("menu", docID.String(), uuid.NewString()+strings.ToLower(path.Ext(req.Filename)))
	url, err := uc.images.PutImage(ctx, key, req.ContentType, req.Body, req.Size)
	if err != nil {
		return nil, apperrors.NewInfrastructureError("failed to store image").WithCause(err)
	}

	res, err := uc.store.Menu().Update(ctx, docID, model.MenuUpdate{Image: &url})
	if err != nil {
		if rmErr := uc.images.RemoveImage(ctx, key); rmErr != nil {
			uc.logger.WithContext(ctx).Warnf("orphaned image %s: %v", key, rmErr)
		}
		return nil, storeError(err, "failed to update menu image")
	}
	return &MenuImageResult{Image: url, UpdateResult: res}, nil
}

func (uc *BistroUsecase) ListReviews(ctx context.Context) ([]*model.Review, error) {
	reviews, err := uc.store.Reviews().FindAll(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load reviews")
	}
	return reviews, nil
}
