package domain

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID           string    `db:"id"` // UUID
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Email        string    `db:"email"` // unique across all clients
	Phone        *string   `db:"phone"`
	Company      *string   `db:"company"`
	AddressLine1 *string   `db:"address_line1"`
	AddressLine2 *string   `db:"address_line2"`
	City         *string   `db:"city"`
	State        *string   `db:"state"`
	PostalCode   *string   `db:"postal_code"`
	Country      *string   `db:"country"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// NewClient assigns the server-side identity and both timestamps.
func NewClient() *Client {
	now := time.Now().UTC()
	return &Client{
		ID:        uuid.New().String(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch refreshes the update timestamp. ID and CreatedAt are never changed
// after creation.
func (c *Client) Touch() {
	c.UpdatedAt = time.Now().UTC()
}
