package utils

import (
	"context"
	"errors"

	"bistro-boss/internal/shared/contextkeys"
)

// Common context errors
var (
	ErrUserEmailNotFound  = errors.New("userEmail not found in context")
	ErrUserEmailNotString = errors.New("userEmail in context is not a string")
	ErrTokenIDNotFound    = errors.New("tokenID not found in context")
	ErrTokenIDNotString   = errors.New("tokenID in context is not a string")
	ErrRequestIDNotFound  = errors.New("requestID not found in context")
	ErrRequestIDNotString = errors.New("requestID in context is not a string")
)

func stringFromContext(ctx context.Context, key interface{}, notFound, notString error) (string, error) {
	val := ctx.Value(key)
	if val == nil {
		return "", notFound
	}
	s, ok := val.(string)
	if !ok {
		return "", notString
	}
	return s, nil
}

// GetUserEmailFromContext retrieves the verified caller email from the context.
func GetUserEmailFromContext(ctx context.Context) (string, error) {
	return stringFromContext(ctx, contextkeys.UserEmailKey, ErrUserEmailNotFound, ErrUserEmailNotString)
}

// GetTokenIDFromContext retrieves the session token id from the context.
func GetTokenIDFromContext(ctx context.Context) (string, error) {
	return stringFromContext(ctx, contextkeys.TokenIDKey, ErrTokenIDNotFound, ErrTokenIDNotString)
}

// GetRequestIDFromContext retrieves the request ID from the context.
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	return stringFromContext(ctx, contextkeys.RequestIDKey, ErrRequestIDNotFound, ErrRequestIDNotString)
}

// Context builder functions

// WithUserEmail adds user email to context
func WithUserEmail(ctx context.Context, userEmail string) context.Context {
	return context.WithValue(ctx, contextkeys.UserEmailKey, userEmail)
}

// WithUserName adds the display name to context
func WithUserName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, contextkeys.UserNameKey, name)
}

// WithTokenID adds the session token id to context
func WithTokenID(ctx context.Context, tokenID string) context.Context {
	return context.WithValue(ctx, contextkeys.TokenIDKey, tokenID)
}

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
}

// WithComponent adds component name to context
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, contextkeys.ComponentKey, component)
}

// WithOperation adds operation name to context
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, contextkeys.OperationKey, operation)
}

// GetUserEmailOrDefault retrieves the caller email from context or returns a default value
func GetUserEmailOrDefault(ctx context.Context, def string) string {
	if v, err := GetUserEmailFromContext(ctx); err == nil {
		return v
	}
	return def
}

func HasUserEmail(ctx context.Context) bool {
	_, err := GetUserEmailFromContext(ctx)
	return err == nil
}
