package bistro

import (
	"fmt"

	authhttp "bistro-boss/internal/auth/adapter/http"
	authrepo "bistro-boss/internal/auth/domain/repository"
	bistrohttp "bistro-boss/internal/bistro/adapter/http"
	"bistro-boss/internal/bistro/domain/repository"
	"bistro-boss/internal/bistro/usecase"
	"bistro-boss/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// BistroModule bundles the restaurant resources
type BistroModule struct {
	store    repository.Store
	usecase  usecase.BistroUsecaseInterface
	handler  *bistrohttp.HTTPHandler
	accounts *usecase.AccountDirectory
}

// NewBistroModule wires the usecase and handlers over store
func NewBistroModule(store repository.Store, opts usecase.Options, log logger.Logger) (*BistroModule, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if log == nil {
		log = logger.NewLogger()
	}

	uc := usecase.NewBistroUsecase(store, opts, log)
	return &BistroModule{
		store:    store,
		usecase:  uc,
		handler:  bistrohttp.NewBistroHTTPHandler(uc, log),
		accounts: usecase.NewAccountDirectory(store.Users()),
	}, nil
}

// RegisterRoutes registers the resource routes guarded by mw
func (m *BistroModule) RegisterRoutes(router fiber.Router, mw *authhttp.AuthMiddleware) {
	m.handler.RegisterRoutes(router, mw)
}

// Accounts exposes the users collection to the auth module
func (m *BistroModule) Accounts() authrepo.AccountRepository {
	return m.accounts
}

// GetUsecase returns the resource usecase
func (m *BistroModule) GetUsecase() usecase.BistroUsecaseInterface {
	return m.usecase
}
