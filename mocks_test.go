package accounts_test

import (
	"context"
	"time"

	accounts "github.com/goliatone/go-accounts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUsers implements accounts.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetByID(ctx context.Context, id uuid.UUID) (*accounts.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.User), args.Error(1)
}

func (m *MockUsers) GetByEmail(ctx context.Context, email string) (*accounts.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.User), args.Error(1)
}

func (m *MockUsers) IsEmailTaken(ctx context.Context, email string, excluding uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excluding)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsers) Create(ctx context.Context, record *accounts.User) (*accounts.User, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.User), args.Error(1)
}

func (m *MockUsers) Update(ctx context.Context, record *accounts.User) (*accounts.User, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.User), args.Error(1)
}

func (m *MockUsers) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUsers) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUsers) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUsers) List(ctx context.Context, filter accounts.UserFilter) (*accounts.UserPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.UserPage), args.Error(1)
}

// MockTokens implements accounts.Tokens
type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) Create(ctx context.Context, record *accounts.Token) (*accounts.Token, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.Token), args.Error(1)
}

func (m *MockTokens) FindActive(ctx context.Context, value string, kind accounts.TokenKind, userID uuid.UUID) (*accounts.Token, error) {
	args := m.Called(ctx, value, kind, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.Token), args.Error(1)
}

func (m *MockTokens) FindActiveByValue(ctx context.Context, value string, kind accounts.TokenKind) (*accounts.Token, error) {
	args := m.Called(ctx, value, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.Token), args.Error(1)
}

func (m *MockTokens) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTokens) DeleteAllForUser(ctx context.Context, userID uuid.UUID, kind accounts.TokenKind) error {
	args := m.Called(ctx, userID, kind)
	return args.Error(0)
}

// MockTokenManager implements accounts.TokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Verify(ctx context.Context, value string, kind accounts.TokenKind) (*accounts.Token, error) {
	args := m.Called(ctx, value, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.Token), args.Error(1)
}

func (m *MockTokenManager) AuthTokenPair(ctx context.Context, user *accounts.User) (*accounts.TokenPair, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.TokenPair), args.Error(1)
}

func (m *MockTokenManager) ResetPasswordToken(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) VerifyEmailToken(ctx context.Context, user *accounts.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

// MockMailer implements accounts.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendResetPasswordEmail(ctx context.Context, user *accounts.User, tokenValue string) error {
	args := m.Called(ctx, user, tokenValue)
	return args.Error(0)
}

func (m *MockMailer) SendVerificationEmail(ctx context.Context, user *accounts.User, tokenValue string) error {
	args := m.Called(ctx, user, tokenValue)
	return args.Error(0)
}

// testTokenConfig implements accounts.TokenConfig without mock plumbing
type testTokenConfig struct {
	signingKey string
	issuer     string
}

func (c testTokenConfig) GetSigningKey() string {
	if c.signingKey == "" {
		return "test-signing-key-test-signing-key"
	}
	return c.signingKey
}

func (c testTokenConfig) GetIssuer() string {
	if c.issuer == "" {
		return "test-issuer"
	}
	return c.issuer
}

func (c testTokenConfig) GetAccessTokenTTL() time.Duration        { return 30 * time.Minute }
func (c testTokenConfig) GetRefreshTokenTTL() time.Duration       { return 24 * time.Hour }
func (c testTokenConfig) GetResetPasswordTokenTTL() time.Duration { return 10 * time.Minute }
func (c testTokenConfig) GetVerifyEmailTokenTTL() time.Duration   { return 10 * time.Minute }
