package models

import (
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/claimwell/claims-api/api"
)

type Agents []Agent

// Agent is a broker-style profile with client assignments
type Agent struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id" validate:"required"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (a *Agent) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(a), nil
}

func (a *Agent) Create(tx *pop.Connection) error {
	return create(tx, a)
}

// AgentClient assigns an agent to a client
type AgentClient struct {
	ID        uuid.UUID `db:"id"`
	AgentID   uuid.UUID `db:"agent_id" validate:"required"`
	ClientID  uuid.UUID `db:"client_id" validate:"required"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (ac *AgentClient) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(ac), nil
}

func (ac *AgentClient) Create(tx *pop.Connection) error {
	return create(tx, ac)
}

// agentClientIDs returns the client IDs assigned to the user's agent profile,
// empty when the user has none.
func agentClientIDs(tx *pop.Connection, userID uuid.UUID) ([]uuid.UUID, error) {
	var assignments []AgentClient
	err := tx.RawQuery(
		`SELECT agent_clients.* FROM agent_clients
		 JOIN agents ON agents.id = agent_clients.agent_id
		 WHERE agents.user_id = ?`, userID).All(&assignments)
	if err != nil {
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	ids := make([]uuid.UUID, len(assignments))
	for i, a := range assignments {
		ids[i] = a.ClientID
	}
	return ids, nil
}
