package models

import (
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gofrs/uuid"

	"github.com/claimwell/claims-api/api"
)

// ClaimHistory records one status change or field edit on a claim. A row is
// written in the same transaction as the change it describes, so the history
// table is a complete ledger of everything that ever happened to a claim.
type ClaimHistory struct {
	ID         uuid.UUID    `db:"id"`
	ClaimID    uuid.UUID    `db:"claim_id"`
	UserID     uuid.UUID    `db:"user_id"`
	FromStatus nulls.String `db:"from_status"`
	ToStatus   string       `db:"to_status"`
	Reason     nulls.String `db:"reason"`
	Notes      nulls.String `db:"notes"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
}

type ClaimHistories []ClaimHistory

// Create stores the ClaimHistory data as a new record in the database.
func (c *ClaimHistory) Create(tx *pop.Connection) error {
	return create(tx, c)
}

// LoadForClaim loads the history rows for a claim, oldest first.
func (c *ClaimHistories) LoadForClaim(tx *pop.Connection, claimID uuid.UUID) error {
	err := tx.Where("claim_id = ?", claimID).Order("created_at asc").All(c)
	if err != nil {
		return appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return nil
}

func (c *ClaimHistory) ConvertToAPI() api.ClaimHistory {
	out := api.ClaimHistory{
		ID:          c.ID,
		ClaimID:     c.ClaimID,
		CreatedByID: c.UserID,
		ToStatus:    api.ClaimStatus(c.ToStatus),
		Reason:      c.Reason.String,
		Notes:       c.Notes.String,
		CreatedAt:   c.CreatedAt,
	}
	if c.FromStatus.Valid {
		from := api.ClaimStatus(c.FromStatus.String)
		out.FromStatus = &from
	}
	return out
}

func (c *ClaimHistories) ConvertToAPI() api.ClaimHistories {
	histories := make(api.ClaimHistories, len(*c))
	for i, cc := range *c {
		histories[i] = cc.ConvertToAPI()
	}
	return histories
}
