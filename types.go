package accounts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Logger is the minimal structured logger the package depends on. The
// variadic args are key-value pairs appended to the message.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// TokenVerifier verifies a raw token string as a given kind and returns
// the matched record. Access tokens yield a synthetic, unpersisted record.
type TokenVerifier interface {
	Verify(ctx context.Context, value string, kind TokenKind) (*Token, error)
}

// UserDirectory is the subset of the users repository the auth pipeline
// needs: resolve principals and mutate credentials.
type UserDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
}

type defLogger struct{}

func (d defLogger) Debug(msg string, args ...any) { d.print("DBG", msg, args...) }
func (d defLogger) Info(msg string, args ...any)  { d.print("INF", msg, args...) }
func (d defLogger) Warn(msg string, args ...any)  { d.print("WRN", msg, args...) }
func (d defLogger) Error(msg string, args ...any) { d.print("ERR", msg, args...) }

func (d defLogger) print(level, msg string, args ...any) {
	if len(args) > 0 {
		msg = fmt.Sprintf("%s %v", msg, args)
	}
	fmt.Printf("[%s] ACCOUNTS %s\n", level, msg)
}
