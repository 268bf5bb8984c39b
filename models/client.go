package models

import (
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"
)

type Clients []Client

// Client is an insured organization whose affiliates submit claims
type Client struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name" validate:"required"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Validate gets run every time you call a "pop.Validate*" method.
func (c *Client) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(c), nil
}

func (c *Client) Create(tx *pop.Connection) error {
	return create(tx, c)
}

func (c *Client) GetID() uuid.UUID {
	return c.ID
}

func (c *Client) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, c, id)
}
