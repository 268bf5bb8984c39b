package api

import (
	"time"

	"github.com/gofrs/uuid"
)

// ScopeType is the breadth of claims a caller may act on
type ScopeType string

const (
	// ScopeTypeUnlimited grants access to all clients' claims
	ScopeTypeUnlimited = ScopeType("UNLIMITED")

	// ScopeTypeClient grants access to claims under assigned clients
	ScopeTypeClient = ScopeType("CLIENT")

	// ScopeTypeSelf grants access only to the caller's own affiliate's claims
	ScopeTypeSelf = ScopeType("SELF")
)

type Users []User

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	ScopeType ScopeType `json:"scope_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
