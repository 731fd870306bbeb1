package usecase

import (
	"context"
	"fmt"

	authmodel "bistro-boss/internal/auth/domain/model"
	authrepo "bistro-boss/internal/auth/domain/repository"
	"bistro-boss/internal/bistro/domain/model"
	"bistro-boss/internal/bistro/domain/repository"
)

// AccountDirectory exposes the users collection to the auth gate.
type AccountDirectory struct {
	users repository.UserRepository
}

func NewAccountDirectory(users repository.UserRepository) *AccountDirectory {
	return &AccountDirectory{users: users}
}

func (d *AccountDirectory) FindAccountByEmail(ctx context.Context, email string) (*authmodel.Account, error) {
	user, err := d.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", authrepo.ErrAccountNotFound, email)
	}
	return &authmodel.Account{
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		PasswordHash: user.PasswordHash,
	}, nil
}

func (d *AccountDirectory) CountAdmins(ctx context.Context) (int64, error) {
	return d.users.CountByRole(ctx, model.RoleAdmin)
}

var _ authrepo.AccountRepository = (*AccountDirectory)(nil)
