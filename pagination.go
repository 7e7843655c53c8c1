package accounts

import (
	"strings"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// UserFilter narrows and pages a directory query. SortBy takes a comma
// separated list of "field:asc|desc" pairs, e.g. "name:asc,created_at:desc".
type UserFilter struct {
	Name   string
	Role   UserRole
	SortBy string
	Limit  int
	Page   int
}

func (f *UserFilter) applyDefaults() {
	if f.Limit <= 0 {
		f.Limit = defaultPageLimit
	}
	if f.Limit > maxPageLimit {
		f.Limit = maxPageLimit
	}
	if f.Page <= 0 {
		f.Page = 1
	}
}

var sortableUserColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"role":       "user_role",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// orderExpressions translates SortBy into SQL order clauses, dropping
// unknown fields rather than erroring.
func (f *UserFilter) orderExpressions() []string {
	if f.SortBy == "" {
		return nil
	}

	var orders []string
	for _, part := range strings.Split(f.SortBy, ",") {
		field, dir, _ := strings.Cut(strings.TrimSpace(part), ":")
		column, ok := sortableUserColumns[field]
		if !ok {
			continue
		}

		if strings.EqualFold(dir, "desc") {
			orders = append(orders, column+" DESC")
		} else {
			orders = append(orders, column+" ASC")
		}
	}
	return orders
}

// UserPage is one page of directory results.
type UserPage struct {
	Results      []*User `json:"results"`
	Page         int     `json:"page"`
	Limit        int     `json:"limit"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

func newUserPage(results []*User, page, limit, total int) *UserPage {
	if results == nil {
		results = []*User{}
	}

	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &UserPage{
		Results:      results,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
		TotalResults: total,
	}
}
