package repository

import (
	"context"
	"errors"
	"time"

	"bistro-boss/internal/auth/domain/model"
)

// ErrAccountNotFound is returned (possibly wrapped) when no user record has the email.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository is the read side of the user store the auth gate depends on.
type AccountRepository interface {
	FindAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	CountAdmins(ctx context.Context) (int64, error)
}

// RevocationStore keeps revoked token ids until the token would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
