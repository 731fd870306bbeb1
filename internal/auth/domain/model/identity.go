package model

import (
	"errors"
	"time"
)

// RoleAdmin is the only role value the admin gate accepts.
const RoleAdmin = "admin"

// ProofMethod records how an identity was established before a token was minted.
type ProofMethod string

const (
	// ProofPassword means a stored password hash matched.
	ProofPassword ProofMethod = "password"
	// ProofExternal means the identity was authenticated upstream (the storefront's
	// identity provider) and no local credential exists for it.
	ProofExternal ProofMethod = "external"
)

// ProvenIdentity is the only input the credential issuer accepts. Its fields are
// unexported so arbitrary request payloads cannot be signed directly.
type ProvenIdentity struct {
	email  string
	name   string
	method ProofMethod
}

// NewProvenIdentity must only be called after a credential check succeeded.
func NewProvenIdentity(email, name string, method ProofMethod) (ProvenIdentity, error) {
	if email == "" {
		return ProvenIdentity{}, errors.New("proven identity requires an email")
	}
	return ProvenIdentity{email: email, name: name, method: method}, nil
}

func (p ProvenIdentity) Email() string       { return p.email }
func (p ProvenIdentity) Name() string        { return p.name }
func (p ProvenIdentity) Method() ProofMethod { return p.method }

// DecodedIdentity is the request-scoped projection of a verified session token.
type DecodedIdentity struct {
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	TokenID   string    `json:"jti"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// Account is the slice of a persisted user record the auth gate reads.
type Account struct {
	Email        string
	Name         string
	Role         string
	PasswordHash string
}

// IsAdmin reports whether the persisted role is exactly the admin sentinel.
func (a *Account) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}
