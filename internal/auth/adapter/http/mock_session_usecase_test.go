package http_test

import (
	"context"

	"bistro-boss/internal/auth/domain/model"
	"bistro-boss/internal/auth/usecase"

	"github.com/stretchr/testify/mock"
)

// mockSessionUsecase is a shared mock type for the SessionUsecaseInterface
type mockSessionUsecase struct {
	mock.Mock
}

func (m *mockSessionUsecase) IssueSession(ctx context.Context, req usecase.IssueSessionRequest) (*usecase.IssuedSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.IssuedSession), args.Error(1)
}

func (m *mockSessionUsecase) ValidateToken(ctx context.Context, tokenString string) (*model.DecodedIdentity, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DecodedIdentity), args.Error(1)
}

func (m *mockSessionUsecase) Logout(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

func (m *mockSessionUsecase) AuthorizeAdmin(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *mockSessionUsecase) AuthorizePromotion(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// Ensure mockSessionUsecase implements the interface
var _ usecase.SessionUsecaseInterface = (*mockSessionUsecase)(nil)
