package api

import (
	"time"

	"github.com/gofrs/uuid"
)

type (
	ClaimFileType   string
	ClaimFileStatus string
)

const (
	ClaimFileTypeInvoice       = ClaimFileType("INVOICE")
	ClaimFileTypeReceipt       = ClaimFileType("RECEIPT")
	ClaimFileTypeMedicalReport = ClaimFileType("MEDICAL_REPORT")
	ClaimFileTypePrescription  = ClaimFileType("PRESCRIPTION")
	ClaimFileTypeOther         = ClaimFileType("OTHER")

	ClaimFileStatusPending = ClaimFileStatus("PENDING")
	ClaimFileStatusReady   = ClaimFileStatus("READY")
	ClaimFileStatusFailed  = ClaimFileStatus("FAILED")
)

type ClaimFiles []ClaimFile

type ClaimFile struct {
	ID          uuid.UUID       `json:"id"`
	ClaimID     uuid.UUID       `json:"claim_id"`
	FileType    ClaimFileType   `json:"file_type"`
	FileName    string          `json:"file_name"`
	FileSize    int             `json:"file_size"`
	ContentType string          `json:"content_type"`
	Status      ClaimFileStatus `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ClaimFileUploadInput requests a presigned upload URL, either for a file
// staged before its claim exists (no claim in the path) or directly on a claim.
type ClaimFileUploadInput struct {
	FileType    ClaimFileType `json:"file_type"`
	FileName    string        `json:"file_name"`
	FileSize    int           `json:"file_size"`
	ContentType string        `json:"content_type"`

	// SessionKey groups staged files; omitted on the first staged upload
	SessionKey string `json:"session_key,omitempty"`
}

type ClaimFileUploadOutput struct {
	FileID     uuid.UUID         `json:"file_id"`
	SessionKey string            `json:"session_key,omitempty"`
	Key        string            `json:"key"`
	URL        string            `json:"url"`
	Headers    map[string]string `json:"headers"`
}

type ClaimFileDownloadOutput struct {
	URL         string `json:"url"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	FileSize    int    `json:"file_size"`
}
