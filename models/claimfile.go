package models

import (
	"context"
	"fmt"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/claimwell/claims-api/api"
	"github.com/claimwell/claims-api/domain"
)

var ValidClaimFileTypes = map[api.ClaimFileType]struct{}{
	api.ClaimFileTypeInvoice:       {},
	api.ClaimFileTypeReceipt:       {},
	api.ClaimFileTypeMedicalReport: {},
	api.ClaimFileTypePrescription:  {},
	api.ClaimFileTypeOther:         {},
}

var ValidClaimFileStatus = map[api.ClaimFileStatus]struct{}{
	api.ClaimFileStatusPending: {},
	api.ClaimFileStatusReady:   {},
	api.ClaimFileStatusFailed:  {},
}

// ClaimFile is a document attached to a claim. The object itself lives in S3
// under ObjectKey; rows start out PENDING and move to READY once the upload
// has been verified, or FAILED if verification gives up. Rows are
// soft-deleted so the attachment history survives removal.
type ClaimFile struct {
	ID          uuid.UUID  `db:"id"`
	ClaimID     uuid.UUID  `db:"claim_id"`
	FileType    string     `db:"file_type" validate:"claimFileType"`
	FileName    string     `db:"file_name" validate:"required"`
	FileSize    int        `db:"file_size"`
	ContentType string     `db:"content_type" validate:"required"`
	Status      string     `db:"status" validate:"claimFileStatus"`
	ObjectKey   string     `db:"object_key" validate:"required"`
	CreatedByID uuid.UUID  `db:"created_by_id"`
	DeletedAt   nulls.Time `db:"deleted_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

type ClaimFiles []ClaimFile

// Validate gets run every time you call a "pop.Validate*" method.
func (c *ClaimFile) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(c), nil
}

func (c *ClaimFile) Create(tx *pop.Connection) error {
	if c.Status == "" {
		c.Status = string(api.ClaimFileStatusPending)
	}
	return create(tx, c)
}

func (c *ClaimFile) Update(tx *pop.Connection) error {
	return update(tx, c)
}

func (c *ClaimFile) GetID() uuid.UUID {
	return c.ID
}

func (c *ClaimFile) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, c, id)
}

// FindOnClaim loads a live file, requiring that it belongs to the given claim.
func (c *ClaimFile) FindOnClaim(tx *pop.Connection, claimID, fileID uuid.UUID) error {
	err := tx.Where("claim_id = ? AND id = ? AND deleted_at IS NULL", claimID, fileID).First(c)
	if err != nil {
		return appErrorFromDB(err, api.ErrorResourceNotFound)
	}
	return nil
}

func (c *ClaimFiles) LoadForClaim(tx *pop.Connection, claimID uuid.UUID) error {
	err := tx.Where("claim_id = ? AND deleted_at IS NULL", claimID).Order("created_at asc").All(c)
	if err != nil {
		return appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return nil
}

// Destroy soft-deletes the row. Removal of the S3 object is left to the
// claim-file-deleted listener.
func (c *ClaimFile) Destroy(tx *pop.Connection) error {
	c.DeletedAt = nulls.NewTime(time.Now().UTC())
	return update(tx, c)
}

// Delete soft-deletes the file and emits an event so the stored object gets
// cleaned up once the enclosing transaction commits.
func (c *ClaimFile) Delete(ctx context.Context) error {
	if err := c.Destroy(Tx(ctx)); err != nil {
		return err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiClaimFileDeleted,
		Message: "ClaimFile deleted",
		Payload: events.Payload{domain.EventPayloadID: c.ID, "objectKey": c.ObjectKey},
	})
	return nil
}

// SetStatus marks the outcome of upload verification.
func (c *ClaimFile) SetStatus(tx *pop.Connection, status api.ClaimFileStatus) error {
	c.Status = string(status)
	return update(tx, c)
}

// ClaimFileObjectKey builds the permanent S3 key for a claim's file.
func ClaimFileObjectKey(clientID, claimID, fileID uuid.UUID, ext string) string {
	return fmt.Sprintf("clients/%s/claims/%s/%s%s", clientID, claimID, fileID, ext)
}

func (c *ClaimFile) ConvertToAPI() api.ClaimFile {
	return api.ClaimFile{
		ID:          c.ID,
		ClaimID:     c.ClaimID,
		FileType:    api.ClaimFileType(c.FileType),
		FileName:    c.FileName,
		FileSize:    c.FileSize,
		ContentType: c.ContentType,
		Status:      api.ClaimFileStatus(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (c *ClaimFiles) ConvertToAPI() api.ClaimFiles {
	files := make(api.ClaimFiles, len(*c))
	for i, cc := range *c {
		files[i] = cc.ConvertToAPI()
	}
	return files
}
