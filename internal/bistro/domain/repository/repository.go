package repository

import (
	"context"
	"errors"
	"io"

	"bistro-boss/internal/bistro/domain/model"
)

var (
	// ErrDuplicateEmail is returned when a user insert races with another on the same email.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrPaymentsDisabled is returned when no payment provider is configured.
	ErrPaymentsDisabled = errors.New("payment provider not configured")
	// ErrImagesDisabled is returned when no object storage is configured.
	ErrImagesDisabled = errors.New("image storage not configured")
)

// MenuRepository persists the menu collection.
type MenuRepository interface {
	FindAll(ctx context.Context) ([]*model.MenuItem, error)
	// FindByID returns nil, nil when no document matches.
	FindByID(ctx context.Context, id model.DocumentID) (*model.MenuItem, error)
	Insert(ctx context.Context, item *model.MenuItem) (*model.InsertResult, error)
	Update(ctx context.Context, id model.DocumentID, update model.MenuUpdate) (*model.UpdateResult, error)
	Delete(ctx context.Context, id model.DocumentID) (*model.DeleteResult, error)
	Count(ctx context.Context) (int64, error)
}

// ReviewRepository reads the reviews collection.
type ReviewRepository interface {
	FindAll(ctx context.Context) ([]*model.Review, error)
}

// UserRepository persists the users collection.
type UserRepository interface {
	FindAll(ctx context.Context) ([]*model.User, error)
	// FindByEmail returns nil, nil when no document matches.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Insert(ctx context.Context, user *model.User) (*model.InsertResult, error)
	SetRole(ctx context.Context, id model.DocumentID, role string) (*model.UpdateResult, error)
	Delete(ctx context.Context, id model.DocumentID) (*model.DeleteResult, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// CartRepository persists the carts collection.
type CartRepository interface {
	FindByEmail(ctx context.Context, email string) ([]*model.CartItem, error)
	Insert(ctx context.Context, item *model.CartItem) (*model.InsertResult, error)
	UpdateQuantity(ctx context.Context, id model.DocumentID, quantity int) (*model.UpdateResult, error)
	Delete(ctx context.Context, id model.DocumentID) (*model.DeleteResult, error)
}

// PaymentRepository persists the payments collection.
type PaymentRepository interface {
	FindByEmail(ctx context.Context, email string) ([]*model.Payment, error)
	Count(ctx context.Context) (int64, error)
	// Revenue is the sum of all payment prices, 0 when there are none.
	Revenue(ctx context.Context) (float64, error)
	// Record inserts the payment and deletes the carts it lists as one unit of work.
	Record(ctx context.Context, payment *model.Payment) (*model.PaymentResult, error)
}

// Store groups the collections of one database.
type Store interface {
	Menu() MenuRepository
	Reviews() ReviewRepository
	Users() UserRepository
	Carts() CartRepository
	Payments() PaymentRepository
	Ping(ctx context.Context) error
}

// PaymentGateway creates payment intents at the provider.
type PaymentGateway interface {
	// CreatePaymentIntent returns the client secret of a new intent.
	CreatePaymentIntent(ctx context.Context, amount int64, currency string, methods []string) (string, error)
}

// ImageStore uploads menu images and returns their public URL.
type ImageStore interface {
	PutImage(ctx context.Context, key string, contentType string, body io.Reader, size int64) (string, error)
	RemoveImage(ctx context.Context, key string) error
}
