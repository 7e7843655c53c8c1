package accounts

import (
	"context"
	"database/sql"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Tokens persists issued credentials. Only refresh, reset password, and
// verify email tokens ever reach this store.
type Tokens interface {
	Create(ctx context.Context, record *Token) (*Token, error)
	// FindActive matches on the exact value, kind, and owner with
	// revoked = false. A missing or revoked row is ErrTokenNotFound.
	FindActive(ctx context.Context, value string, kind TokenKind, userID uuid.UUID) (*Token, error)
	// FindActiveByValue matches on value and kind alone, used by logout
	// where the subject is not known up front.
	FindActiveByValue(ctx context.Context, value string, kind TokenKind) (*Token, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteAllForUser removes every token of the given kind owned by the
	// user, consumed and outstanding alike.
	DeleteAllForUser(ctx context.Context, userID uuid.UUID, kind TokenKind) error
}

type tokens struct {
	db *bun.DB
}

// NewTokensRepository creates a bun backed token store.
func NewTokensRepository(db *bun.DB) Tokens {
	return &tokens{db: db}
}

func (r *tokens) Create(ctx context.Context, record *Token) (*Token, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt == nil {
		now := time.Now().UTC()
		record.CreatedAt = &now
	}

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist token")
	}

	return record, nil
}

func (r *tokens) FindActive(ctx context.Context, value string, kind TokenKind, userID uuid.UUID) (*Token, error) {
	record := &Token{}
	err := r.db.NewSelect().
		Model(record).
		Where("value = ?", value).
		Where("kind = ?", kind).
		Where("user_id = ?", userID).
		Where("revoked = ?", false).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up token")
	}

	return record, nil
}

func (r *tokens) FindActiveByValue(ctx context.Context, value string, kind TokenKind) (*Token, error) {
	record := &Token{}
	err := r.db.NewSelect().
		Model(record).
		Where("value = ?", value).
		Where("kind = ?", kind).
		Where("revoked = ?", false).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up token")
	}

	return record, nil
}

func (r *tokens) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*Token)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete token")
	}
	return nil
}

func (r *tokens) DeleteAllForUser(ctx context.Context, userID uuid.UUID, kind TokenKind) error {
	_, err := r.db.NewDelete().
		Model((*Token)(nil)).
		Where("user_id = ?", userID).
		Where("kind = ?", kind).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete tokens")
	}
	return nil
}
