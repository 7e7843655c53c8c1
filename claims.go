package accounts

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the signed payload carried by every token the service
// issues: registered sub/iat/exp plus the token kind and, for access
// tokens, the user's role at issuance time.
type TokenClaims struct {
	jwt.RegisteredClaims
	UID      string    `json:"uid,omitempty"`
	UserRole string    `json:"role,omitempty"`
	Kind     TokenKind `json:"kind"`
}

// Subject returns the subject claim
func (c *TokenClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the subject parsed as a user id.
func (c *TokenClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject())
}

// Role returns the role claim embedded at issuance time.
func (c *TokenClaims) Role() string {
	return c.UserRole
}

// TokenKind returns the kind claim.
func (c *TokenClaims) TokenKind() TokenKind {
	return c.Kind
}

// Expires returns the expiration time
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *TokenClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
