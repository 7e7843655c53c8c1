package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenConfig holds the signing and lifetime options the token service
// needs. Expiries are computed as now + TTL at issuance time.
type TokenConfig interface {
	GetSigningKey() string
	GetIssuer() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetResetPasswordTokenTTL() time.Duration
	GetVerifyEmailTokenTTL() time.Duration
}

// TokenService mints, signs, persists, and verifies tokens of every kind.
type TokenService struct {
	signingKey []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	resetTTL   time.Duration
	verifyTTL  time.Duration
	tokens     Tokens
	users      UserDirectory
	logger     Logger
}

// NewTokenService creates a new TokenService instance
func NewTokenService(tokens Tokens, users UserDirectory, cfg TokenConfig, logger Logger) *TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenService{
		signingKey: []byte(cfg.GetSigningKey()),
		issuer:     cfg.GetIssuer(),
		accessTTL:  cfg.GetAccessTokenTTL(),
		refreshTTL: cfg.GetRefreshTokenTTL(),
		resetTTL:   cfg.GetResetPasswordTokenTTL(),
		verifyTTL:  cfg.GetVerifyEmailTokenTTL(),
		tokens:     tokens,
		users:      users,
		logger:     logger,
	}
}

// Issue builds a signed token for the subject. Pure computation: the
// caller decides whether the result also needs to be persisted.
func (ts *TokenService) Issue(subjectID string, role UserRole, expiresAt time.Time, kind TokenKind) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UID:      subjectID,
		UserRole: role,
		Kind:     kind,
	}

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary claims using the configured signing key.
func (ts *TokenService) SignClaims(claims *TokenClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Persist stores an issued token so it can later be matched by Verify.
func (ts *TokenService) Persist(ctx context.Context, value string, userID uuid.UUID, expiresAt time.Time, kind TokenKind) (*Token, error) {
	return ts.tokens.Create(ctx, &Token{
		Value:     value,
		UserID:    userID,
		Kind:      kind,
		ExpiresAt: expiresAt,
	})
}

// Verify parses and validates a token string as the expected kind.
//
// Signature and embedded expiry are always enforced. For persisted kinds
// the store must additionally hold a matching, non-revoked record for the
// exact value, kind, and subject; that record is returned so callers can
// delete or rotate it. Access tokens return a synthetic, unpersisted record.
func (ts *TokenService) Verify(ctx context.Context, value string, kind TokenKind) (*Token, error) {
	parserOptions := make([]jwt.ParserOption, 0, 1)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(value, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("token verify encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(TextCodeTokenMalformed).
			WithCode(errors.CodeUnauthorized)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		ts.logger.Error("token verify could not decode claims")
		return nil, ErrTokenMalformed
	}

	if claims.TokenKind() != kind {
		return nil, ErrTokenMalformed
	}

	subject, err := claims.UserID()
	if err != nil {
		return nil, ErrTokenMalformed
	}

	if kind == TokenKindAccess {
		return &Token{
			Value:     value,
			UserID:    subject,
			Kind:      kind,
			ExpiresAt: claims.Expires(),
		}, nil
	}

	return ts.tokens.FindActive(ctx, value, kind, subject)
}

// AuthTokenPair issues an access token and a persisted refresh token for
// the user. When persisting the refresh token fails, no pair is returned:
// an access token without its paired refresh token would strand the
// client at renewal time.
func (ts *TokenService) AuthTokenPair(ctx context.Context, user *User) (*TokenPair, error) {
	now := time.Now().UTC()

	accessExpires := now.Add(ts.accessTTL)
	access, err := ts.Issue(user.ID.String(), user.Role, accessExpires, TokenKindAccess)
	if err != nil {
		return nil, err
	}

	refreshExpires := now.Add(ts.refreshTTL)
	refresh, err := ts.Issue(user.ID.String(), user.Role, refreshExpires, TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	if _, err := ts.Persist(ctx, refresh, user.ID, refreshExpires, TokenKindRefresh); err != nil {
		return nil, err
	}

	return &TokenPair{
		Access:  TokenDetail{Value: access, ExpiresAt: accessExpires},
		Refresh: TokenDetail{Value: refresh, ExpiresAt: refreshExpires},
	}, nil
}

// ResetPasswordToken resolves the user by email and issues a persisted
// reset token. Unknown emails return ErrUserNotFound; callers are expected
// to treat that as success-with-no-email-sent so account existence is not
// revealed.
func (ts *TokenService) ResetPasswordToken(ctx context.Context, email string) (string, error) {
	user, err := ts.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}

	expires := time.Now().UTC().Add(ts.resetTTL)
	value, err := ts.Issue(user.ID.String(), user.Role, expires, TokenKindResetPassword)
	if err != nil {
		return "", err
	}

	if _, err := ts.Persist(ctx, value, user.ID, expires, TokenKindResetPassword); err != nil {
		return "", err
	}

	return value, nil
}

// VerifyEmailToken issues a persisted email verification token.
func (ts *TokenService) VerifyEmailToken(ctx context.Context, user *User) (string, error) {
	expires := time.Now().UTC().Add(ts.verifyTTL)
	value, err := ts.Issue(user.ID.String(), user.Role, expires, TokenKindVerifyEmail)
	if err != nil {
		return "", err
	}

	if _, err := ts.Persist(ctx, value, user.ID, expires, TokenKindVerifyEmail); err != nil {
		return "", err
	}

	return value, nil
}
