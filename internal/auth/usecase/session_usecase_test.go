package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"bistro-boss/internal/auth/domain/model"
	"bistro-boss/internal/auth/domain/repository"
	"bistro-boss/internal/shared/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) FindAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *mockAccountRepository) CountAdmins(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken(ctx context.Context, identity model.ProvenIdentity) (string, *repository.Claims, error) {
	args := m.Called(ctx, identity)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*repository.Claims), args.Error(2)
}

func (m *mockTokenService) ValidateToken(ctx context.Context, tokenString string) (*repository.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Claims), args.Error(1)
}

type mockRevocationStore struct {
	mock.Mock
}

func (m *mockRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *mockRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

type SessionUsecaseTestSuite struct {
	suite.Suite
	accounts    *mockAccountRepository
	tokens      *mockTokenService
	revocations *mockRevocationStore
	uc          *SessionUsecase
	now         time.Time
	ctx         context.Context
}

func (s *SessionUsecaseTestSuite) SetupTest() {
	s.accounts = &mockAccountRepository{}
	s.tokens = &mockTokenService{}
	s.revocations = &mockRevocationStore{}
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = context.Background()
	s.uc = NewSessionUsecase(s.accounts, s.tokens, s.revocations, logger.NewLoggerWithConfig("error", "text"))
	s.uc.now = func() time.Time { return s.now }
}

func (s *SessionUsecaseTestSuite) claimsFor(email string) *repository.Claims {
	return &repository.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			IssuedAt:  jwt.NewNumericDate(s.now),
			ExpiresAt: jwt.NewNumericDate(s.now.Add(480 * time.Hour)),
		},
	}
}

func (s *SessionUsecaseTestSuite) TestIssueSession_NoAccountIsExternalProof() {
	s.accounts.On("FindAccountByEmail", mock.Anything, "a@x.com").Return(nil, repository.ErrAccountNotFound)
	s.tokens.On("GenerateToken", mock.Anything, mock.MatchedBy(func(id model.ProvenIdentity) bool {
		return id.Email() == "a@x.com" && id.Name() == "Ann" && id.Method() == model.ProofExternal
	})).Return("signed", s.claimsFor("a@x.com"), nil)

	issued, err := s.uc.IssueSession(s.ctx, IssueSessionRequest{Email: " a@x.com ", Name: "Ann"})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "signed", issued.Token)
	assert.Equal(s.T(), "a@x.com", issued.Identity.Email)
	assert.Equal(s.T(), s.now.Add(480*time.Hour), issued.ExpiresAt)
	s.tokens.AssertExpectations(s.T())
}

func (s *SessionUsecaseTestSuite) TestIssueSession_InvalidEmail() {
	for _, email := range []string{"", "not-an-email", "a@", "@x.com"} {
		_, err := s.uc.IssueSession(s.ctx, IssueSessionRequest{Email: email})
		assert.ErrorIs(s.T(), err, ErrInvalidEmailFormat, email)
	}
	s.tokens.AssertNotCalled(s.T(), "GenerateToken", mock.Anything, mock.Anything)
}

func (s *SessionUsecaseTestSuite) TestIssueSession_PasswordAccount() {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(s.T(), err)
	account := &model.Account{Email: "p@x.com", Name: "Pat", PasswordHash: string(hash)}
	s.accounts.On("FindAccountByEmail", mock.Anything, "p@x.com").Return(account, nil)

	_, err = s.uc.IssueSession(s.ctx, IssueSessionRequest{Email: "p@x.com", Password: "wrong"})
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)

	s.tokens.On("GenerateToken", mock.Anything, mock.MatchedBy(func(id model.ProvenIdentity) bool {
		return id.Method() == model.ProofPassword && id.Name() == "Pat"
	})).Return("signed", s.claimsFor("p@x.com"), nil)

	issued, err := s.uc.IssueSession(s.ctx, IssueSessionRequest{Email: "p@x.com", Password: "s3cret!"})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "signed", issued.Token)
}

func (s *SessionUsecaseTestSuite) TestIssueSession_AdminWithoutPassword() {
	admin := &model.Account{Email: "boss@x.com", Name: "Boss", Role: model.RoleAdmin}
	s.accounts.On("FindAccountByEmail", mock.Anything, "boss@x.com").Return(admin, nil)
	s.tokens.On("GenerateToken", mock.Anything, mock.MatchedBy(func(id model.ProvenIdentity) bool {
		return id.Method() == model.ProofExternal
	})).Return("signed", s.claimsFor("boss@x.com"), nil)

	issued, err := s.uc.IssueSession(s.ctx, IssueSessionRequest{Email: "boss@x.com"})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "signed", issued.Token)

	s.uc.RequireAdminPassword(true)
	_, err = s.uc.IssueSession(s.ctx, IssueSessionRequest{Email: "boss@x.com", Password: "anything"})
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)
	s.tokens.AssertNumberOfCalls(s.T(), "GenerateToken", 1)
}

func (s *SessionUsecaseTestSuite) TestIssueSession_RequireAdminPasswordKeepsUsers() {
	s.uc.RequireAdminPassword(true)
	user := &model.Account{Email: "u@x.com", Name: "Una", Role: "user"}
	s.accounts.On("FindAccountByEmail", mock.Anything, "u@x.com").Return(user, nil)
	s.tokens.On("GenerateToken", mock.Anything, mock.Anything).Return("signed", s.claimsFor("u@x.com"), nil)

	_, err := s.uc.IssueSession(s.ctx, IssueSessionRequest{Email: "u@x.com"})
	require.NoError(s.T(), err)
}

func (s *SessionUsecaseTestSuite) TestIssueSession_StoreFailure() {
	s.accounts.On("FindAccountByEmail", mock.Anything, "a@x.com").Return(nil, errors.New("connection reset"))

	_, err := s.uc.IssueSession(s.ctx, IssueSessionRequest{Email: "a@x.com"})

	require.Error(s.T(), err)
	assert.NotErrorIs(s.T(), err, ErrInvalidCredentials)
}

func (s *SessionUsecaseTestSuite) TestValidateToken() {
	s.tokens.On("ValidateToken", mock.Anything, "good").Return(s.claimsFor("a@x.com"), nil)
	s.revocations.On("IsRevoked", mock.Anything, "jti-1").Return(false, nil).Once()

	identity, err := s.uc.ValidateToken(s.ctx, "good")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "a@x.com", identity.Email)
	assert.Equal(s.T(), "jti-1", identity.TokenID)

	s.revocations.On("IsRevoked", mock.Anything, "jti-1").Return(true, nil).Once()
	_, err = s.uc.ValidateToken(s.ctx, "good")
	assert.ErrorIs(s.T(), err, ErrTokenRevoked)

	s.revocations.On("IsRevoked", mock.Anything, "jti-1").Return(false, errors.New("redis down")).Once()
	_, err = s.uc.ValidateToken(s.ctx, "good")
	assert.ErrorIs(s.T(), err, ErrTokenInvalid)
}

func (s *SessionUsecaseTestSuite) TestValidateToken_Invalid() {
	s.tokens.On("ValidateToken", mock.Anything, "bad").Return(nil, errors.New("token is expired"))

	_, err := s.uc.ValidateToken(s.ctx, "bad")

	assert.ErrorIs(s.T(), err, ErrTokenInvalid)
	s.revocations.AssertNotCalled(s.T(), "IsRevoked", mock.Anything, mock.Anything)
}

func (s *SessionUsecaseTestSuite) TestValidateToken_WithoutRevocationStore() {
	uc := NewSessionUsecase(s.accounts, s.tokens, nil, logger.NewLoggerWithConfig("error", "text"))
	s.tokens.On("ValidateToken", mock.Anything, "good").Return(s.claimsFor("a@x.com"), nil)

	identity, err := uc.ValidateToken(s.ctx, "good")

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "a@x.com", identity.Email)
}

func (s *SessionUsecaseTestSuite) TestLogout_RevokesForRemainingLifetime() {
	claims := s.claimsFor("a@x.com")
	s.now = s.now.Add(80 * time.Hour)
	s.tokens.On("ValidateToken", mock.Anything, "good").Return(claims, nil)
	s.revocations.On("Revoke", mock.Anything, "jti-1", 400*time.Hour).Return(nil)

	require.NoError(s.T(), s.uc.Logout(s.ctx, "good"))
	s.revocations.AssertExpectations(s.T())
}

func (s *SessionUsecaseTestSuite) TestLogout_IgnoresInvalidToken() {
	s.tokens.On("ValidateToken", mock.Anything, "bad").Return(nil, errors.New("bad"))

	assert.NoError(s.T(), s.uc.Logout(s.ctx, "bad"))
	assert.NoError(s.T(), s.uc.Logout(s.ctx, ""))
	s.revocations.AssertNotCalled(s.T(), "Revoke", mock.Anything, mock.Anything, mock.Anything)
}

func (s *SessionUsecaseTestSuite) TestAuthorizeAdmin() {
	s.accounts.On("FindAccountByEmail", mock.Anything, "admin@x.com").Return(&model.Account{Email: "admin@x.com", Role: "admin"}, nil)
	s.accounts.On("FindAccountByEmail", mock.Anything, "user@x.com").Return(&model.Account{Email: "user@x.com", Role: "user"}, nil)
	s.accounts.On("FindAccountByEmail", mock.Anything, "ghost@x.com").Return(nil, repository.ErrAccountNotFound)
	s.accounts.On("FindAccountByEmail", mock.Anything, "err@x.com").Return(nil, errors.New("timeout"))

	assert.NoError(s.T(), s.uc.AuthorizeAdmin(s.ctx, "admin@x.com"))
	assert.ErrorIs(s.T(), s.uc.AuthorizeAdmin(s.ctx, "user@x.com"), ErrNotAdmin)
	assert.ErrorIs(s.T(), s.uc.AuthorizeAdmin(s.ctx, "ghost@x.com"), ErrNotAdmin)

	err := s.uc.AuthorizeAdmin(s.ctx, "err@x.com")
	require.Error(s.T(), err)
	assert.NotErrorIs(s.T(), err, ErrNotAdmin)
}

func (s *SessionUsecaseTestSuite) TestAuthorizeAdmin_ReadsRoleEveryCall() {
	s.accounts.On("FindAccountByEmail", mock.Anything, "u@x.com").Return(&model.Account{Role: "admin"}, nil).Once()
	s.accounts.On("FindAccountByEmail", mock.Anything, "u@x.com").Return(&model.Account{Role: "user"}, nil).Once()

	assert.NoError(s.T(), s.uc.AuthorizeAdmin(s.ctx, "u@x.com"))
	assert.ErrorIs(s.T(), s.uc.AuthorizeAdmin(s.ctx, "u@x.com"), ErrNotAdmin)
}

func (s *SessionUsecaseTestSuite) TestAuthorizePromotion() {
	s.accounts.On("FindAccountByEmail", mock.Anything, "first@x.com").Return(&model.Account{Role: "user"}, nil)
	s.accounts.On("CountAdmins", mock.Anything).Return(int64(0), nil).Once()

	assert.NoError(s.T(), s.uc.AuthorizePromotion(s.ctx, "first@x.com"))

	s.accounts.On("CountAdmins", mock.Anything).Return(int64(1), nil).Once()
	assert.ErrorIs(s.T(), s.uc.AuthorizePromotion(s.ctx, "first@x.com"), ErrNotAdmin)
}

func TestSessionUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(SessionUsecaseTestSuite))
}
