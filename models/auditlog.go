package models

import (
	"encoding/json"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gofrs/uuid"

	"github.com/claimwell/claims-api/log"
)

// Audit actions recorded against claims.
const (
	AuditActionClaimCreated        = "claim.created"
	AuditActionClaimUpdated        = "claim.updated"
	AuditActionClaimTransitioned   = "claim.transitioned"
	AuditActionClaimFileDeleted    = "claim.file_deleted"
	AuditActionClaimInvoiceCreated = "claim.invoice_created"
	AuditActionClaimInvoiceUpdated = "claim.invoice_updated"
	AuditActionClaimInvoiceDeleted = "claim.invoice_deleted"
)

// AuditLog is a best-effort record of who did what. Rows are written after the
// transaction that made the change has committed, never inside it.
type AuditLog struct {
	ID         uuid.UUID    `db:"id"`
	UserID     uuid.UUID    `db:"user_id"`
	Action     string       `db:"action"`
	EntityType string       `db:"entity_type"`
	EntityID   uuid.UUID    `db:"entity_id"`
	Payload    nulls.String `db:"payload"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
}

type AuditLogs []AuditLog

// RecordAudit writes an audit row on the ambient connection. Failures are
// logged and swallowed; auditing must never fail the operation it describes.
func RecordAudit(userID uuid.UUID, action, entityType string, entityID uuid.UUID, payload any) {
	a := AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}

	if payload != nil {
		j, err := json.Marshal(payload)
		if err != nil {
			log.Errorf("error marshaling audit payload for %s ... %v", action, err)
		} else {
			a.Payload = nulls.NewString(string(j))
		}
	}

	if err := create(DB, &a); err != nil {
		log.Errorf("error recording audit %s on %s %s ... %v", action, entityType, entityID, err)
	}
}
