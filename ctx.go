package accounts

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type contextKey string

const userContextKey contextKey = "accounts:user"

// UserLocalsKey is the locals key under which the middleware stores the
// resolved principal.
const UserLocalsKey = "auth_user"

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the authenticated user, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok && user != nil
}

// UserFromFiber retrieves the principal the middleware attached to the
// request, if any.
func UserFromFiber(c *fiber.Ctx) (*User, bool) {
	user, ok := c.Locals(UserLocalsKey).(*User)
	return user, ok && user != nil
}
