package models

import (
	"fmt"
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/claimwell/claims-api/api"
	"github.com/claimwell/claims-api/domain"
)

// PendingClaimFile is a file staged before its claim exists. Staged files are
// grouped by the uploader's session key and adopted into the claim when it is
// created; leftovers past their lifetime are purged by a scheduled job.
type PendingClaimFile struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	SessionKey  string    `db:"session_key" validate:"required"`
	FileType    string    `db:"file_type" validate:"claimFileType"`
	FileName    string    `db:"file_name" validate:"required"`
	FileSize    int       `db:"file_size"`
	ContentType string    `db:"content_type" validate:"required"`
	ObjectKey   string    `db:"object_key" validate:"required"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type PendingClaimFiles []PendingClaimFile

// Validate gets run every time you call a "pop.Validate*" method.
func (p *PendingClaimFile) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(p), nil
}

func (p *PendingClaimFile) Create(tx *pop.Connection) error {
	return create(tx, p)
}

func (p *PendingClaimFile) Destroy(tx *pop.Connection) error {
	return destroy(tx, p)
}

// FindForSession loads the staged files for one user's session key.
func (p *PendingClaimFiles) FindForSession(tx *pop.Connection, userID uuid.UUID, sessionKey string) error {
	err := tx.Where("user_id = ? AND session_key = ?", userID, sessionKey).
		Order("created_at asc").All(p)
	if err != nil {
		return appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return nil
}

// FindExpired loads staged files older than the pending file lifetime.
func (p *PendingClaimFiles) FindExpired(tx *pop.Connection) error {
	cutoff := time.Now().UTC().Add(-domain.PendingFileLifetime)
	err := tx.Where("created_at < ?", cutoff).All(p)
	if err != nil {
		return appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return nil
}

// PendingClaimFileObjectKey builds the S3 key for a staged file.
func PendingClaimFileObjectKey(userID uuid.UUID, sessionKey string, fileID uuid.UUID, ext string) string {
	return fmt.Sprintf("temp/claims/%s/%s/%s%s", userID, sessionKey, fileID, ext)
}
