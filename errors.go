package accounts

import (
	"github.com/goliatone/go-errors"
)

// Text codes surfaced to API clients alongside rich errors.
const (
	TextCodeUnauthenticated   = "UNAUTHENTICATED"
	TextCodeForbidden         = "FORBIDDEN"
	TextCodeBadCredentials    = "BAD_CREDENTIALS"
	TextCodeTokenExpired      = "TOKEN_EXPIRED"
	TextCodeTokenMalformed    = "TOKEN_MALFORMED"
	TextCodeTokenNotFound     = "TOKEN_NOT_FOUND"
	TextCodeEmailTaken        = "EMAIL_TAKEN"
	TextCodeUserNotFound      = "USER_NOT_FOUND"
	TextCodePasswordReset     = "PASSWORD_RESET_FAILED"
	TextCodeEmailVerification = "EMAIL_VERIFICATION_FAILED"
)

// ErrIncorrectEmailOrPassword is returned for both unknown emails and wrong
// passwords. The two cases are deliberately indistinguishable.
var ErrIncorrectEmailOrPassword = errors.New("Incorrect email or password", errors.CategoryAuth).
	WithTextCode(TextCodeBadCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrPleaseAuthenticate is the uniform rejection for every token
// verification failure (missing, garbled, expired, revoked, unknown user).
var ErrPleaseAuthenticate = errors.New("Please authenticate", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrForbidden is returned when an authenticated user lacks a required role.
var ErrForbidden = errors.New("Forbidden", errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// ErrPasswordResetFailed masks every failure mode of the reset flow.
var ErrPasswordResetFailed = errors.New("Password reset failed", errors.CategoryAuth).
	WithTextCode(TextCodePasswordReset).
	WithCode(errors.CodeUnauthorized)

// ErrEmailVerificationFailed masks every failure mode of the verify flow.
var ErrEmailVerificationFailed = errors.New("Email verification failed", errors.CategoryAuth).
	WithTextCode(TextCodeEmailVerification).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a JWT is past its embedded expiry.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for signature or payload failures.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenNotFound is returned when a persisted-kind token has no matching,
// non-revoked stored record.
var ErrTokenNotFound = errors.New("Not found", errors.CategoryNotFound).
	WithTextCode(TextCodeTokenNotFound).
	WithCode(errors.CodeNotFound)

// ErrEmailTaken is returned when creating or updating a user with an email
// that belongs to another account.
var ErrEmailTaken = errors.New("Email already taken", errors.CategoryValidation).
	WithTextCode(TextCodeEmailTaken).
	WithCode(errors.CodeBadRequest)

// ErrUserNotFound is returned from directory lookups by id.
var ErrUserNotFound = errors.New("User not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrNoEmptyString rejects empty passwords before they reach bcrypt.
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the normalized bcrypt mismatch error.
var ErrMismatchedHashAndPassword = errors.New("hashed password does not match", errors.CategoryAuth).
	WithTextCode(TextCodeBadCredentials).
	WithCode(errors.CodeUnauthorized)
