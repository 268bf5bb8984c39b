package models

import (
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"
)

type Policies []Policy

// Policy is an insurance policy under a client; claims may reference one
type Policy struct {
	ID           uuid.UUID `db:"id"`
	ClientID     uuid.UUID `db:"client_id" validate:"required"`
	PolicyNumber string    `db:"policy_number" validate:"required"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Validate gets run every time you call a "pop.Validate*" method.
func (p *Policy) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(p), nil
}

func (p *Policy) Create(tx *pop.Connection) error {
	return create(tx, p)
}

func (p *Policy) GetID() uuid.UUID {
	return p.ID
}

func (p *Policy) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, p, id)
}
