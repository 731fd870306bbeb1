package usecase

import (
	"context"
	"io"
	"time"

	"bistro-boss/internal/bistro/domain/model"
	"bistro-boss/internal/bistro/domain/repository"
	apperrors "bistro-boss/internal/shared/errors"
	"bistro-boss/internal/shared/logger"
)

// BistroUsecaseInterface is the application surface of the resource handlers.
type BistroUsecaseInterface interface {
	// Menu
	ListMenu(ctx context.Context) ([]*model.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*model.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *model.MenuItem) (*model.InsertResult, error)
	UpdateMenuItem(ctx context.Context, id string, update model.MenuUpdate) (*model.UpdateResult, error)
	DeleteMenuItem(ctx context.Context, id string) (*model.DeleteResult, error)
	UploadMenuImage(ctx context.Context, req UploadImageRequest) (*MenuImageResult, error)

	// Reviews
	ListReviews(ctx context.Context) ([]*model.Review, error)

	// Users
	ListUsers(ctx context.Context) ([]*model.User, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResult, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	PromoteUser(ctx context.Context, id string) (*model.UpdateResult, error)
	DeleteUser(ctx context.Context, id string) (*model.DeleteResult, error)

	// Carts
	ListCarts(ctx context.Context, email string) ([]*model.CartItem, error)
	AddToCart(ctx context.Context, callerEmail string, item *model.CartItem) (*model.InsertResult, error)
	UpdateCartQuantity(ctx context.Context, id string, quantity int) (*model.UpdateResult, error)
	RemoveFromCart(ctx context.Context, id string) (*model.DeleteResult, error)

	// Payments
	CreatePaymentIntent(ctx context.Context, price float64) (string, error)
	RecordPayment(ctx context.Context, callerEmail string, payment *model.Payment) (*model.PaymentResult, error)
	PaymentHistory(ctx context.Context, email string) ([]*model.Payment, error)

	// Dashboard
	AdminStats(ctx context.Context) (*model.AdminStats, error)
	Ping(ctx context.Context) error
}

// UploadImageRequest is a menu image upload.
type UploadImageRequest struct {
	MenuID      string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MenuImageResult reports the stored image URL and the menu update.
type MenuImageResult struct {
	Image        string              `json:"image"`
	UpdateResult *model.UpdateResult `json:"updateResult"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL,omitempty"`
	Role     string `json:"role,omitempty"`
	Password string `json:"password,omitempty"`
}

// CreateUserResult is either an insert acknowledgment or the "already exists" sentinel.
type CreateUserResult struct {
	Inserted *model.InsertResult
	Existing bool
}

// Options carry the optional collaborators.
type Options struct {
	Payments      repository.PaymentGateway
	Images        repository.ImageStore
	Currency      string
	MaxImageBytes int64
}

// BistroUsecase implements BistroUsecaseInterface over a repository.Store
type BistroUsecase struct {
	store         repository.Store
	payments      repository.PaymentGateway
	images        repository.ImageStore
	currency      string
	maxImageBytes int64
	logger        logger.Logger
	now           func() time.Time
}

// NewBistroUsecase creates the usecase. Payments and images may be nil, in which case
// their routes answer 503.
func NewBistroUsecase(store repository.Store, opts Options, log logger.Logger) *BistroUsecase {
	if log == nil {
		log = logger.NewLogger()
	}
	if opts.Currency == "" {
		opts.Currency = "usd"
	}
	if opts.MaxImageBytes <= 0 {
		opts.MaxImageBytes = 5 << 20
	}
	return &BistroUsecase{
		store:         store,
		payments:      opts.Payments,
		images:        opts.Images,
		currency:      opts.Currency,
		maxImageBytes: opts.MaxImageBytes,
		logger:        log.WithComponent("bistro.usecase"),
		now:           time.Now,
	}
}

// Ping checks the store.
func (uc *BistroUsecase) Ping(ctx context.Context) error {
	if err := uc.store.Ping(ctx); err != nil {
		return apperrors.NewUnavailableError("document store unreachable").WithCause(err)
	}
	return nil
}

// storeError wraps a repository failure so the error handler reports a bare 500.
func storeError(err error, message string) error {
	return apperrors.NewInfrastructureError(message).WithCause(err).WithComponent("bistro")
}

// parseID rejects empty identifiers, which would otherwise match nothing silently.
func parseID(raw string) (model.DocumentID, error) {
	if raw == "" {
		return model.DocumentID{}, apperrors.NewValidationError("id is required")
	}
	return model.ParseDocumentID(raw), nil
}

// Ensure BistroUsecase implements BistroUsecaseInterface
var _ BistroUsecaseInterface = (*BistroUsecase)(nil)
