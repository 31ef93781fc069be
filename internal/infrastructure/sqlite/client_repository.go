package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mwarren/crmapi/internal/core/domain"
	"github.com/mwarren/crmapi/internal/core/repository"
)

const clientColumns = `id, first_name, last_name, email, phone, company,
	address_line1, address_line2, city, state, postal_code, country,
	is_active, created_at, updated_at`

type clientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

// isUniqueEmailViolation detects the UNIQUE index backstop firing on
// concurrent creates that both passed the pre-check.
func isUniqueEmailViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: client.email")
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO client (` + clientColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		client.ID,
		client.FirstName,
		client.LastName,
		client.Email,
		NullString(client.Phone),
		NullString(client.Company),
		NullString(client.AddressLine1),
		NullString(client.AddressLine2),
		NullString(client.City),
		NullString(client.State),
		NullString(client.PostalCode),
		NullString(client.Country),
		client.IsActive,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if isUniqueEmailViolation(err) {
		return domain.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *clientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client WHERE id = ?`

	var client domain.Client
	err := r.db.GetContext(ctx, &client, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return &client, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `
		UPDATE client
		SET first_name = ?, last_name = ?, email = ?, phone = ?, company = ?,
			address_line1 = ?, address_line2 = ?, city = ?, state = ?,
			postal_code = ?, country = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		client.FirstName,
		client.LastName,
		client.Email,
		NullString(client.Phone),
		NullString(client.Company),
		NullString(client.AddressLine1),
		NullString(client.AddressLine2),
		NullString(client.City),
		NullString(client.State),
		NullString(client.PostalCode),
		NullString(client.Country),
		client.IsActive,
		client.UpdatedAt,
		client.ID,
	)
	if isUniqueEmailViolation(err) {
		return domain.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM client WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context, filter repository.ClientFilter) ([]*domain.Client, int, error) {
	filter.Normalize()

	where, args := buildClientWhere(filter)

	// Total is counted over the filtered set before pagination.
	var total int
	countQuery := `SELECT COUNT(*) FROM client` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	query := `SELECT ` + clientColumns + ` FROM client` + where +
		buildClientOrder(filter) + ` LIMIT ? OFFSET ?`
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	var clients []*domain.Client
	if err := r.db.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, total, nil
}

func (r *clientRepository) EmailExists(ctx context.Context, email string, excludeID string) (bool, error) {
	query := `SELECT COUNT(*) FROM client WHERE email = ?`
	args := []interface{}{email}
	if excludeID != "" {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// buildClientWhere builds the WHERE clause for the listing pipeline: the
// active-flag restriction first, then the free-text search. instr() is used
// instead of LIKE so the term never acts as a wildcard pattern. The phone
// match is intentionally not case-folded.
func buildClientWhere(filter repository.ClientFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.IsActive != nil {
		conditions = append(conditions, "is_active = ?")
		args = append(args, *filter.IsActive)
	}

	if filter.Query != "" {
		term := strings.ToLower(filter.Query)
		conditions = append(conditions, `(
			instr(lower(first_name), ?) > 0
			OR instr(lower(last_name), ?) > 0
			OR instr(lower(email), ?) > 0
			OR (phone IS NOT NULL AND instr(phone, ?) > 0)
			OR (company IS NOT NULL AND instr(lower(company), ?) > 0)
		)`)
		args = append(args, term, term, term, filter.Query, term)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// buildClientOrder resolves the sort field through a closed switch. An
// unrecognized field falls back to the compound (last_name, first_name) key.
// The id column is appended as a deterministic tie-break for equal sort keys.
func buildClientOrder(filter repository.ClientFilter) string {
	dir := "ASC"
	if filter.Descending() {
		dir = "DESC"
	}

	switch filter.SortKey() {
	case repository.SortFirstName:
		return fmt.Sprintf(" ORDER BY first_name %s, id %s", dir, dir)
	case repository.SortLastName:
		return fmt.Sprintf(" ORDER BY last_name %s, id %s", dir, dir)
	case repository.SortEmail:
		return fmt.Sprintf(" ORDER BY email %s, id %s", dir, dir)
	case repository.SortCompany:
		return fmt.Sprintf(" ORDER BY company %s, id %s", dir, dir)
	case repository.SortCreatedAt:
		return fmt.Sprintf(" ORDER BY created_at %s, id %s", dir, dir)
	default:
		return fmt.Sprintf(" ORDER BY last_name %s, first_name %s, id %s", dir, dir, dir)
	}
}
