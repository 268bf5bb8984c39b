package api

import (
	"time"

	"github.com/gofrs/uuid"
)

type ClaimHistories []ClaimHistory

// ClaimHistory is one row of a claim's append-only status/edit log
type ClaimHistory struct {
	ID          uuid.UUID    `json:"id"`
	ClaimID     uuid.UUID    `json:"claim_id"`
	FromStatus  *ClaimStatus `json:"from_status"` // null on creation
	ToStatus    ClaimStatus  `json:"to_status"`
	Reason      string       `json:"reason,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	CreatedByID uuid.UUID    `json:"created_by_id"`
	CreatedAt   time.Time    `json:"created_at"`
}
