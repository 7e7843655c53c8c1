package accounts

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const bearerScheme = "Bearer"

// RouteGuard builds the authentication middleware. Each request must carry
// a valid access token; the principal is resolved from the directory on
// every request so revoked accounts and stale role claims lose access
// immediately.
type RouteGuard struct {
	verifier TokenVerifier
	users    UserDirectory
	logger   Logger
}

// NewRouteGuard creates a new RouteGuard instance
func NewRouteGuard(verifier TokenVerifier, users UserDirectory, logger Logger) *RouteGuard {
	if logger == nil {
		logger = defLogger{}
	}
	return &RouteGuard{
		verifier: verifier,
		users:    users,
		logger:   logger,
	}
}

// RequireAuth returns a handler that authenticates the request and, when
// roles are given, authorizes the principal against them. A principal
// passes when its role is in the list or outranks one of them.
//
// Failures are uniform: any authentication problem yields "Please
// authenticate", any authorization problem yields "Forbidden".
func (g *RouteGuard) RequireAuth(roles ...UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := tokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return ErrPleaseAuthenticate
		}

		record, err := g.verifier.Verify(c.UserContext(), raw, TokenKindAccess)
		if err != nil {
			g.logger.Debug("request rejected", "reason", err, "path", c.Path())
			return ErrPleaseAuthenticate
		}

		user, err := g.users.GetByID(c.UserContext(), record.UserID)
		if err != nil {
			g.logger.Debug("request rejected", "reason", "unknown principal", "user", record.UserID)
			return ErrPleaseAuthenticate
		}

		if len(roles) > 0 && !roleSatisfies(user.Role, roles) {
			g.logger.Debug("request forbidden", "user", user.ID, "role", user.Role, "path", c.Path())
			return ErrForbidden
		}

		c.Locals(UserLocalsKey, user)
		c.SetUserContext(WithUser(c.UserContext(), user))

		return c.Next()
	}
}

func roleSatisfies(role UserRole, required []UserRole) bool {
	for _, want := range required {
		if role == want || RoleIsAtLeast(role, want) {
			return true
		}
	}
	return false
}

func tokenFromHeader(header string) (string, error) {
	l := len(bearerScheme)
	if len(header) > l+1 && strings.EqualFold(header[:l], bearerScheme) {
		return strings.TrimSpace(header[l:]), nil
	}
	return "", ErrPleaseAuthenticate
}
