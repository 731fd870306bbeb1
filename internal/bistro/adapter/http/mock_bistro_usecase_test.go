package http_test

import (
	"context"

	"bistro-boss/internal/bistro/domain/model"
	"bistro-boss/internal/bistro/usecase"

	"github.com/stretchr/testify/mock"
)

type mockBistroUsecase struct {
	mock.Mock
}

func (m *mockBistroUsecase) ListMenu(ctx context.Context) ([]*model.MenuItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*model.MenuItem)
	return items, args.Error(1)
}

func (m *mockBistroUsecase) GetMenuItem(ctx context.Context, id string) (*model.MenuItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*model.MenuItem)
	return item, args.Error(1)
}

func (m *mockBistroUsecase) CreateMenuItem(ctx context.Context, item *model.MenuItem) (*model.InsertResult, error) {
	args := m.Called(ctx, item)
	res, _ := args.Get(0).(*model.InsertResult)
	return res, args.Error(1)
}

func (m *mockBistroUsecase) UpdateMenuItem(ctx context.Context, id string, update model.MenuUpdate) (*model.UpdateResult, error) {
	args := m.Called(ctx, id, update)
	res, _ := args.Get(0).(*model.UpdateResult)
	return res, args.Error(1)
}

func (m *mockBistroUsecase) DeleteMenuItem(ctx context.Context, id string) (*model.DeleteResult, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*model.DeleteResult)
	return res, args.Error(1)
}

func (m *mockBistroUsecase) UploadMenuImage(ctx context.Context, req usecase.UploadImageRequest) (*usecase.MenuImageResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*usecase.MenuImageResult)
	return res, args.Error(1)
}

func (m *mockBistroUsecase) ListReviews(ctx context.Context) ([]*model.Review, error) {
	args := m.Called(ctx)
	reviews, _ := args.Get(0).([]*model.Review)
	return reviews, args.Error(1)
}

func (m *mockBistroUsecase) ListUsers(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*model.User)
	return users, args.Error(1)
}

func (m *mockBistroUsecase) CreateUser(ctx context.Context, req usecase.CreateUserRequest) (*usecase.CreateUserResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*usecase.CreateUserResult)
	return res, args.Error(1)
}

func (m *mockBistroUsecase) IsAdmin(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockBistroUsecase) PromoteUser(ctx context.Context, id string) (*model.UpdateResult, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*model.UpdateResult)
	return res, args.Error(1)
}

func (m *mockBistroUsecase) DeleteUser(ctx context.Context, id string) (*model.DeleteResult, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*model.DeleteResult)
	return res, args.Error(1)
}

func (m *mockBistroUsecase) ListCarts(ctx context.Context, email string) ([]*model.CartItem, error) {
	args := m.Called(ctx, email)
	carts, _ := args.Get(0).([]*model.CartItem)
	return carts, args.Error(1)
}

func (m *mockBistroUsecase) AddToCart(ctx context.Context, callerEmail string, item *model.CartItem) (*model.InsertResult, error) {
	args := m.Called(ctx, callerEmail, item)
	res, _ := args.Get(0).(*model.InsertResult)
	return res, args.Error(1)
}

func (m *mockBistroUsecase) UpdateCartQuantity(ctx context.Context, id string, quantity int) (*model.UpdateResult, error) {
	args := m.Called(ctx, id, quantity)
	res, _ := args.Get(0).(*model.UpdateResult)
	return res, args.Error(1)
}

func (m *mockBistroUsecase) RemoveFromCart(ctx context.Context, id string) (*model.DeleteResult, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*model.DeleteResult)
	return res, args.Error(1)
}

func (m *mockBistroUsecase) CreatePaymentIntent(ctx context.Context, price float64) (string, error) {
	args := m.Called(ctx, price)
	return args.String(0), args.Error(1)
}

func (m *mockBistroUsecase) RecordPayment(ctx context.Context, callerEmail string, payment *model.Payment) (*model.PaymentResult, error) {
	args := m.Called(ctx, callerEmail, payment)
	res, _ := args.Get(0).(*model.PaymentResult)
	return res, args.Error(1)
}

func (m *mockBistroUsecase) PaymentHistory(ctx context.Context, email string) ([]*model.Payment, error) {
	args := m.Called(ctx, email)
	payments, _ := args.Get(0).([]*model.Payment)
	return payments, args.Error(1)
}

func (m *mockBistroUsecase) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*model.AdminStats)
	return stats, args.Error(1)
}

func (m *mockBistroUsecase) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ usecase.BistroUsecaseInterface = (*mockBistroUsecase)(nil)
