package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"bistro-boss/internal/auth/domain/model"
	"bistro-boss/internal/auth/domain/repository"
	"bistro-boss/internal/shared/logger"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrNotAdmin           = errors.New("caller is not an admin")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// SessionUsecaseInterface defines the contract of the authentication gate.
type SessionUsecaseInterface interface {
	IssueSession(ctx context.Context, req IssueSessionRequest) (*IssuedSession, error)
	ValidateToken(ctx context.Context, tokenString string) (*model.DecodedIdentity, error)
	Logout(ctx context.Context, tokenString string) error
	AuthorizeAdmin(ctx context.Context, email string) error
	AuthorizePromotion(ctx context.Context, email string) error
}

// IssueSessionRequest is the body of POST /session.
type IssueSessionRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
}

// IssuedSession is a freshly minted token and the identity it encodes.
type IssuedSession struct {
	Token     string
	ExpiresAt time.Time
	Identity  *model.DecodedIdentity
}

// SessionUsecase implements the credential issuer, the token verifier and the admin gate.
type SessionUsecase struct {
	accounts    repository.AccountRepository
	tokenSvc    repository.TokenService
	revocations repository.RevocationStore
	log         logger.Logger
	now         func() time.Time

	requireAdminPassword bool
}

// NewSessionUsecase wires the gate. revocations may be nil, in which case logout only
// clears the client cookie and tokens stay valid until they expire.
func NewSessionUsecase(
	accounts repository.AccountRepository,
	tokenSvc repository.TokenService,
	revocations repository.RevocationStore,
	log logger.Logger,
) *SessionUsecase {
	if log == nil {
		log = logger.NewLogger()
	}
	return &SessionUsecase{
		accounts:    accounts,
		tokenSvc:    tokenSvc,
		revocations: revocations,
		log:         log.WithComponent("auth.session"),
		now:         time.Now,
	}
}

// RequireAdminPassword makes admin accounts without a local password unable to
// obtain a session.
func (uc *SessionUsecase) RequireAdminPassword(required bool) {
	uc.requireAdminPassword = required
}

// IssueSession proves the caller's identity and mints a token for it.
func (uc *SessionUsecase) IssueSession(ctx context.Context, req IssueSessionRequest) (*IssuedSession, error) {
	identity, err := uc.proveIdentity(ctx, req)
	if err != nil {
		return nil, err
	}

	token, claims, err := uc.tokenSvc.GenerateToken(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	decoded := claims.Identity()
	uc.log.WithFields(map[string]interface{}{
		"user_email": decoded.Email,
		"token_id":   decoded.TokenID,
		"proof":      string(identity.Method()),
	}).Info("session issued")

	return &IssuedSession{Token: token, ExpiresAt: decoded.ExpiresAt, Identity: decoded}, nil
}

// proveIdentity accepts a stored password when the account has one. Accounts without a
// local credential, and emails with no account yet, are authenticated by the storefront's
// identity provider before this endpoint is called.
func (uc *SessionUsecase) proveIdentity(ctx context.Context, req IssueSessionRequest) (model.ProvenIdentity, error) {
	email := strings.TrimSpace(req.Email)
	if !emailRegex.MatchString(email) {
		return model.ProvenIdentity{}, ErrInvalidEmailFormat
	}
	name := strings.TrimSpace(req.Name)

	account, err := uc.accounts.FindAccountByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrAccountNotFound):
		return model.NewProvenIdentity(email, name, model.ProofExternal)
	case err != nil:
		return model.ProvenIdentity{}, fmt.Errorf("failed to load account: %w", err)
	}

	if name == "" {
		name = account.Name
	}
	if account.PasswordHash == "" {
		if account.IsAdmin() {
			if uc.requireAdminPassword {
				return model.ProvenIdentity{}, ErrInvalidCredentials
			}
			uc.log.WithContext(ctx).Warnf("admin account %s has no password, accepting external proof", email)
		}
		return model.NewProvenIdentity(email, name, model.ProofExternal)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return model.ProvenIdentity{}, ErrInvalidCredentials
	}
	return model.NewProvenIdentity(email, name, model.ProofPassword)
}

// ValidateToken verifies signature, expiry and, when enabled, revocation.
func (uc *SessionUsecase) ValidateToken(ctx context.Context, tokenString string) (*model.DecodedIdentity, error) {
	claims, err := uc.tokenSvc.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if uc.revocations != nil {
		revoked, err := uc.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			uc.log.WithContext(ctx).Errorf("revocation lookup failed, rejecting token: %v", err)
			return nil, fmt.Errorf("%w: revocation lookup failed", ErrTokenInvalid)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	return claims.Identity(), nil
}

// Logout revokes the token when a revocation store is configured. Invalid or missing
// tokens are ignored: the cookie is cleared regardless.
func (uc *SessionUsecase) Logout(ctx context.Context, tokenString string) error {
	if uc.revocations == nil || tokenString == "" {
		return nil
	}

	claims, err := uc.tokenSvc.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil
	}

	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(uc.now())
	}
	if err := uc.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	uc.log.WithContext(ctx).WithFields(map[string]interface{}{"token_id": claims.ID}).Info("session revoked")
	return nil
}

// AuthorizeAdmin re-reads the caller's user record on every call. The role is never
// taken from the token, so promotions and demotions apply to the next request.
func (uc *SessionUsecase) AuthorizeAdmin(ctx context.Context, email string) error {
	account, err := uc.accounts.FindAccountByEmail(ctx, email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return ErrNotAdmin
	}
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}
	if !account.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}

// AuthorizePromotion lets admins promote users, and lets any verified caller promote
// while no admin exists yet so a fresh deployment can be bootstrapped.
func (uc *SessionUsecase) AuthorizePromotion(ctx context.Context, email string) error {
	err := uc.AuthorizeAdmin(ctx, email)
	if !errors.Is(err, ErrNotAdmin) {
		return err
	}

	admins, countErr := uc.accounts.CountAdmins(ctx)
	if countErr != nil {
		return fmt.Errorf("failed to count admins: %w", countErr)
	}
	if admins == 0 {
		uc.log.WithContext(ctx).Warnf("no admin exists yet, allowing bootstrap promotion by %s", email)
		return nil
	}
	return ErrNotAdmin
}

// Ensure SessionUsecase implements SessionUsecaseInterface
var _ SessionUsecaseInterface = (*SessionUsecase)(nil)
