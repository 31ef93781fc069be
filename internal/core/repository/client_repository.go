package repository

import (
	"context"
	"strings"

	"github.com/mwarren/crmapi/internal/core/domain"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Recognized sort fields. Anything else falls back to the compound
// (last_name, first_name) ordering.
const (
	SortFirstName = "firstname"
	SortLastName  = "lastname"
	SortEmail     = "email"
	SortCompany   = "company"
	SortCreatedAt = "createdat"
)

// ClientFilter carries the listing parameters: free-text search, active-flag
// filter, sort field/direction and offset pagination.
type ClientFilter struct {
	Query    string
	IsActive *bool
	Sort     string
	Dir      string
	Page     int
	PageSize int
}

// Normalize applies the silent-correction paging policy and canonicalizes the
// search term and sort parameters. Out-of-range paging values are clamped,
// never rejected.
func (f *ClientFilter) Normalize() {
	f.Query = strings.TrimSpace(f.Query)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > MaxPageSize {
		f.PageSize = DefaultPageSize
	}
}

// SortKey returns the lower-cased sort field name.
func (f *ClientFilter) SortKey() string {
	return strings.ToLower(f.Sort)
}

// Descending reports whether the sort direction is "desc" (case-insensitive).
// Any other value means ascending.
func (f *ClientFilter) Descending() bool {
	return strings.EqualFold(f.Dir, "desc")
}

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error

	// List returns one page of clients matching the filter together with the
	// total count over the filtered set before pagination.
	List(ctx context.Context, filter ClientFilter) ([]*domain.Client, int, error)

	// EmailExists reports whether another client (excluding excludeID, which
	// may be empty) already uses the email.
	EmailExists(ctx context.Context, email string, excludeID string) (bool, error)
}
