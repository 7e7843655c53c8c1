package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserFilterDefaults(t *testing.T) {
	t.Run("Zero values get defaults", func(t *testing.T) {
		f := UserFilter{}
		f.applyDefaults()
		assert.Equal(t, defaultPageLimit, f.Limit)
		assert.Equal(t, 1, f.Page)
	})

	t.Run("Limit is capped", func(t *testing.T) {
		f := UserFilter{Limit: 5000, Page: 3}
		f.applyDefaults()
		assert.Equal(t, maxPageLimit, f.Limit)
		assert.Equal(t, 3, f.Page)
	})
}

func TestUserFilterOrderExpressions(t *testing.T) {
	t.Run("Parses field and direction", func(t *testing.T) {
		f := UserFilter{SortBy: "name:asc,created_at:desc"}
		assert.Equal(t, []string{"name ASC", "created_at DESC"}, f.orderExpressions())
	})

	t.Run("Defaults to ascending", func(t *testing.T) {
		f := UserFilter{SortBy: "email"}
		assert.Equal(t, []string{"email ASC"}, f.orderExpressions())
	})

	t.Run("Maps role to its column", func(t *testing.T) {
		f := UserFilter{SortBy: "role:desc"}
		assert.Equal(t, []string{"user_role DESC"}, f.orderExpressions())
	})

	t.Run("Drops unknown fields", func(t *testing.T) {
		f := UserFilter{SortBy: "password_hash:asc,name:desc"}
		assert.Equal(t, []string{"name DESC"}, f.orderExpressions())
	})

	t.Run("Empty sort yields nil", func(t *testing.T) {
		f := UserFilter{}
		assert.Nil(t, f.orderExpressions())
	})
}

func TestNewUserPage(t *testing.T) {
	t.Run("Computes total pages", func(t *testing.T) {
		page := newUserPage([]*User{{}, {}}, 1, 10, 11)
		assert.Equal(t, 2, page.TotalPages)
		assert.Equal(t, 11, page.TotalResults)
	})

	t.Run("Nil results become an empty slice", func(t *testing.T) {
		page := newUserPage(nil, 1, 10, 0)
		assert.NotNil(t, page.Results)
		assert.Empty(t, page.Results)
		assert.Equal(t, 0, page.TotalPages)
	})
}
