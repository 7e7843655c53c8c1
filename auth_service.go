package accounts

import (
	"context"

	"github.com/goliatone/go-errors"
)

// TokenManager is the token surface the auth flows consume. TokenService
// satisfies it; tests substitute mocks.
type TokenManager interface {
	TokenVerifier
	AuthTokenPair(ctx context.Context, user *User) (*TokenPair, error)
	ResetPasswordToken(ctx context.Context, email string) (string, error)
	VerifyEmailToken(ctx context.Context, user *User) (string, error)
}

// Auther implements the credential flows: login, logout, refresh rotation,
// password reset, and email verification.
type Auther struct {
	manager TokenManager
	tokens  Tokens
	users   UserDirectory
	logger  Logger
	sink    ActivitySink
}

// NewAuther creates a new Auther instance
func NewAuther(manager TokenManager, tokens Tokens, users UserDirectory, logger Logger) *Auther {
	if logger == nil {
		logger = defLogger{}
	}
	return &Auther{
		manager: manager,
		tokens:  tokens,
		users:   users,
		logger:  logger,
	}
}

// WithActivitySink attaches an optional audit sink. Events are emitted
// for login attempts, logouts, refreshes, resets, and verifications.
func (a *Auther) WithActivitySink(sink ActivitySink) *Auther {
	a.sink = sink
	return a
}

// Login checks the credentials and issues a fresh token pair. Unknown
// email and wrong password are indistinguishable to the caller. The email
// is normalized before lookup so it matches however it was registered.
func (a *Auther) Login(ctx context.Context, email, password string) (*User, *TokenPair, error) {
	email = normalizeEmail(email)
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		a.logger.Debug("login rejected", "reason", "email not found")
		recordActivity(ctx, a.sink, a.logger, ActivityEvent{
			EventType: ActivityEventLoginFailure,
			Metadata:  map[string]any{"email": email},
		})
		return nil, nil, ErrIncorrectEmailOrPassword
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		a.logger.Debug("login rejected", "reason", "password mismatch", "user", user.ID)
		recordActivity(ctx, a.sink, a.logger, ActivityEvent{
			EventType: ActivityEventLoginFailure,
			UserID:    user.ID,
		})
		return nil, nil, ErrIncorrectEmailOrPassword
	}

	pair, err := a.manager.AuthTokenPair(ctx, user)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CategoryInternal, "failed to issue token pair")
	}

	recordActivity(ctx, a.sink, a.logger, ActivityEvent{
		EventType: ActivityEventLoginSuccess,
		UserID:    user.ID,
	})

	return user, pair, nil
}

// Logout invalidates a refresh token by deleting its stored record. The
// value is matched against the store directly, without verifying the JWT:
// an expired-but-stored refresh token can still be logged out.
func (a *Auther) Logout(ctx context.Context, refreshToken string) error {
	record, err := a.tokens.FindActiveByValue(ctx, refreshToken, TokenKindRefresh)
	if err != nil {
		// storage failures are not a missing token
		if errors.Is(err, ErrTokenNotFound) {
			return ErrTokenNotFound
		}
		return err
	}

	if err := a.tokens.Delete(ctx, record.ID); err != nil {
		return err
	}

	recordActivity(ctx, a.sink, a.logger, ActivityEvent{
		EventType: ActivityEventLogout,
		UserID:    record.UserID,
	})

	return nil
}

// Refresh rotates a refresh token: the presented token is verified,
// consumed, and replaced with a fresh pair. The old record is deleted
// before the new pair is issued, so a failure partway leaves the client
// logged out rather than holding two live refresh tokens.
func (a *Auther) Refresh(ctx context.Context, refreshToken string) (*User, *TokenPair, error) {
	record, err := a.manager.Verify(ctx, refreshToken, TokenKindRefresh)
	if err != nil {
		a.logger.Debug("refresh rejected", "reason", err)
		return nil, nil, ErrPleaseAuthenticate
	}

	user, err := a.users.GetByID(ctx, record.UserID)
	if err != nil {
		a.logger.Debug("refresh rejected", "reason", "user not found", "user", record.UserID)
		return nil, nil, ErrPleaseAuthenticate
	}

	if err := a.tokens.Delete(ctx, record.ID); err != nil {
		return nil, nil, ErrPleaseAuthenticate
	}

	pair, err := a.manager.AuthTokenPair(ctx, user)
	if err != nil {
		return nil, nil, ErrPleaseAuthenticate
	}

	recordActivity(ctx, a.sink, a.logger, ActivityEvent{
		EventType: ActivityEventTokenRefresh,
		UserID:    user.ID,
	})

	return user, pair, nil
}

// ResetPassword verifies a reset token and replaces the user's password.
// Every stored reset token for the user is deleted afterwards, whether or
// not it was the one presented. All failure modes collapse into
// ErrPasswordResetFailed.
func (a *Auther) ResetPassword(ctx context.Context, tokenValue, newPassword string) error {
	record, err := a.manager.Verify(ctx, tokenValue, TokenKindResetPassword)
	if err != nil {
		a.logger.Debug("password reset rejected", "reason", err)
		return ErrPasswordResetFailed
	}

	user, err := a.users.GetByID(ctx, record.UserID)
	if err != nil {
		return ErrPasswordResetFailed
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return ErrPasswordResetFailed
	}

	if err := a.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return ErrPasswordResetFailed
	}

	if err := a.tokens.DeleteAllForUser(ctx, user.ID, TokenKindResetPassword); err != nil {
		return ErrPasswordResetFailed
	}

	recordActivity(ctx, a.sink, a.logger, ActivityEvent{
		EventType: ActivityEventPasswordResetSuccess,
		UserID:    user.ID,
	})

	return nil
}

// VerifyEmail verifies an email verification token and marks the user's
// email as verified. The user's verification tokens are consumed before
// the flag flips. All failure modes collapse into ErrEmailVerificationFailed.
func (a *Auther) VerifyEmail(ctx context.Context, tokenValue string) error {
	record, err := a.manager.Verify(ctx, tokenValue, TokenKindVerifyEmail)
	if err != nil {
		a.logger.Debug("email verification rejected", "reason", err)
		return ErrEmailVerificationFailed
	}

	user, err := a.users.GetByID(ctx, record.UserID)
	if err != nil {
		return ErrEmailVerificationFailed
	}

	if err := a.tokens.DeleteAllForUser(ctx, user.ID, TokenKindVerifyEmail); err != nil {
		return ErrEmailVerificationFailed
	}

	if err := a.users.MarkEmailVerified(ctx, user.ID); err != nil {
		return ErrEmailVerificationFailed
	}

	recordActivity(ctx, a.sink, a.logger, ActivityEvent{
		EventType: ActivityEventEmailVerified,
		UserID:    user.ID,
	})

	return nil
}
