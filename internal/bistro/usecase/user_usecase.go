package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"bistro-boss/internal/bistro/domain/model"
	"bistro-boss/internal/bistro/domain/repository"
	apperrors "bistro-boss/internal/shared/errors"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

func (uc *BistroUsecase) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := uc.store.Users().FindAll(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load users")
	}
	return users, nil
}

// CreateUser is idempotent on email. New users always get the user role; only the
// promotion route grants admin.
func (uc *BistroUsecase) CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResult, error) {
	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil || strings.ContainsAny(email, "<> ") {
		return nil, apperrors.NewValidationError("a valid email is required")
	}

	existing, err := uc.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err, "failed to look up user")
	}
	if existing != nil {
		return &CreateUserResult{Existing: true}, nil
	}

	user := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Role:     model.RoleUser,
		PhotoURL: req.PhotoURL,
	}
	if req.Password != "" {
		if len(req.Password) < minPasswordLength {
			return nil, apperrors.NewValidationError("password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to hash password").WithCause(err)
		}
		user.PasswordHash = string(hash)
	}
	if req.Role != "" && req.Role != model.RoleUser {
		uc.logger.WithContext(ctx).Warnf("ignoring requested role %q for new user %s", req.Role, email)
	}

	res, err := uc.store.Users().Insert(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return &CreateUserResult{Existing: true}, nil
		}
		return nil, storeError(err, "failed to create user")
	}
	return &CreateUserResult{Inserted: res}, nil
}

// IsAdmin is false for unknown emails.
func (uc *BistroUsecase) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := uc.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return false, storeError(err, "failed to look up user")
	}
	return user.IsAdmin(), nil
}

func (uc *BistroUsecase) PromoteUser(ctx context.Context, id string) (*model.UpdateResult, error) {
	docID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	res, err := uc.store.Users().SetRole(ctx, docID, model.RoleAdmin)
	if err != nil {
		return nil, storeError(err, "failed to promote user")
	}
	if res.ModifiedCount > 0 {
		uc.logger.WithContext(ctx).Infof("user %s promoted to admin", docID)
	}
	return res, nil
}

func (uc *BistroUsecase) DeleteUser(ctx context.Context, id string) (*model.DeleteResult, error) {
	docID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	res, err := uc.store.Users().Delete(ctx, docID)
	if err != nil {
		return nil, storeError(err, "failed to delete user")
	}
	return res, nil
}
