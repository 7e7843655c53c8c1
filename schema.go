package accounts

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// CreateSchema creates the tables and indexes the service needs. Safe to
// run on every boot.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*Token)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to create table")
		}
	}

	indexes := []struct {
		name    string
		model   any
		columns []string
	}{
		{"idx_users_email", (*User)(nil), []string{"email"}},
		{"idx_tokens_value", (*Token)(nil), []string{"value"}},
		{"idx_tokens_user_kind", (*Token)(nil), []string{"user_id", "kind"}},
	}

	for _, idx := range indexes {
		if _, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			IfNotExists().
			Column(idx.columns...).
			Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to create index").
				WithMetadata(map[string]any{"index": idx.name})
		}
	}

	return nil
}
