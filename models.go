package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TokenKind enumerates the token types the service issues.
type TokenKind = string

const (
	// TokenKindAccess is a short lived, stateless credential. Never persisted.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh is a long lived, persisted, single-use-per-rotation credential.
	TokenKindRefresh TokenKind = "refresh"
	// TokenKindResetPassword is a persisted, single-use password reset credential.
	TokenKindResetPassword TokenKind = "reset_password"
	// TokenKindVerifyEmail is a persisted, single-use email verification credential.
	TokenKindVerifyEmail TokenKind = "verify_email"
)

// IsPersistedKind reports whether tokens of the given kind are stored.
// Access tokens are verified by signature and expiry alone.
func IsPersistedKind(kind TokenKind) bool {
	switch kind {
	case TokenKindRefresh, TokenKindResetPassword, TokenKindVerifyEmail:
		return true
	default:
		return false
	}
}

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	EmailVerified bool       `bun:"is_email_verified" json:"is_email_verified"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Token models a persisted credential row. Access tokens never produce
// one of these rows; refresh, reset password, and verify email tokens do.
type Token struct {
	bun.BaseModel `bun:"table:tokens,alias:tkn"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Value         string     `bun:"value,notnull,unique" json:"value,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	Kind          TokenKind  `bun:"kind,notnull" json:"kind,omitempty"`
	ExpiresAt     time.Time  `bun:"expires_at,notnull" json:"expires_at,omitempty"`
	Revoked       bool       `bun:"revoked,notnull,default:false" json:"revoked"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// Expired reports whether the stored expiry has passed.
func (t *Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// TokenDetail is the wire representation of one issued token.
type TokenDetail struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expires"`
}

// TokenPair bundles the access and refresh tokens issued together at
// login, registration, and refresh time.
type TokenPair struct {
	Access  TokenDetail `json:"access"`
	Refresh TokenDetail `json:"refresh"`
}
