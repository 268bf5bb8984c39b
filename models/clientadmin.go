package models

import (
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/claimwell/claims-api/api"
)

type ClientAdmins []ClientAdmin

// ClientAdmin is an administrator profile with client assignments
type ClientAdmin struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id" validate:"required"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (ca *ClientAdmin) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(ca), nil
}

func (ca *ClientAdmin) Create(tx *pop.Connection) error {
	return create(tx, ca)
}

// ClientAdminClient assigns a client admin to a client
type ClientAdminClient struct {
	ID            uuid.UUID `db:"id"`
	ClientAdminID uuid.UUID `db:"client_admin_id" validate:"required"`
	ClientID      uuid.UUID `db:"client_id" validate:"required"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (cac *ClientAdminClient) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(cac), nil
}

func (cac *ClientAdminClient) Create(tx *pop.Connection) error {
	return create(tx, cac)
}

// ClientAdminUsers returns the active users whose client-admin profile is
// assigned to the given client. These are the recipients for claim
// notifications in that client.
func ClientAdminUsers(tx *pop.Connection, clientID uuid.UUID) (Users, error) {
	var users Users
	err := tx.RawQuery(
		`SELECT users.* FROM users
		 JOIN client_admins ON client_admins.user_id = users.id
		 JOIN client_admin_clients ON client_admin_clients.client_admin_id = client_admins.id
		 WHERE client_admin_clients.client_id = ? AND users.is_active = true`, clientID).All(&users)
	if err != nil {
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return users, nil
}

// clientAdminClientIDs returns the client IDs assigned to the user's
// client-admin profile, empty when the user has none.
func clientAdminClientIDs(tx *pop.Connection, userID uuid.UUID) ([]uuid.UUID, error) {
	var assignments []ClientAdminClient
	err := tx.RawQuery(
		`SELECT client_admin_clients.* FROM client_admin_clients
		 JOIN client_admins ON client_admins.id = client_admin_clients.client_admin_id
		 WHERE client_admins.user_id = ?`, userID).All(&assignments)
	if err != nil {
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	ids := make([]uuid.UUID, len(assignments))
	for i, a := range assignments {
		ids[i] = a.ClientID
	}
	return ids, nil
}
