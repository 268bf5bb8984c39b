package actions

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gobuffalo/buffalo"
	"github.com/gofrs/uuid"

	"github.com/claimwell/claims-api/api"
	"github.com/claimwell/claims-api/domain"
	"github.com/claimwell/claims-api/job"
	"github.com/claimwell/claims-api/models"
	"github.com/claimwell/claims-api/storage"
)

// claimFilesStage issues a presigned upload URL for a file staged before its
// claim exists. Staged files share a session key and get adopted by the claim
// created with that key.
func claimFilesStage(c buffalo.Context) error {
	var input api.ClaimFileUploadInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if err := validateUploadInput(input); err != nil {
		return reportError(c, err)
	}

	user := models.CurrentUser(c)

	sessionKey := input.SessionKey
	if sessionKey == "" {
		sessionKey = domain.RandomString(20, "")
	}

	fileID := domain.GetUUID()
	key := models.PendingClaimFileObjectKey(user.ID, sessionKey, fileID, filepath.Ext(input.FileName))

	pending := models.PendingClaimFile{
		ID:          fileID,
		UserID:      user.ID,
		SessionKey:  sessionKey,
		FileType:    string(input.FileType),
		FileName:    input.FileName,
		FileSize:    input.FileSize,
		ContentType: input.ContentType,
		ObjectKey:   key,
	}
	if err := pending.Create(models.Tx(c)); err != nil {
		return reportError(c, err)
	}

	target, err := storage.SignUpload(key, input.ContentType)
	if err != nil {
		return reportError(c, api.NewAppError(err, api.ErrorUnableToSignURL, api.CategoryInternal))
	}

	return renderOk(c, api.ClaimFileUploadOutput{
		FileID:     fileID,
		SessionKey: sessionKey,
		Key:        key,
		URL:        target.Url,
		Headers:    target.Headers,
	})
}

// claimFilesAttach issues a presigned upload URL for a file going directly
// onto an existing claim, and schedules verification of the upload.
func claimFilesAttach(c buffalo.Context) error {
	claim, err := claimFromParam(c)
	if err != nil {
		return reportError(c, err)
	}

	if models.IsTerminalClaimStatus(claim.Status) {
		err := fmt.Errorf("files cannot be added to a claim in status %s", claim.Status)
		return reportError(c, api.NewAppError(err, api.ErrorClaimFileNotEditable, api.CategoryUser))
	}

	var input api.ClaimFileUploadInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if err := validateUploadInput(input); err != nil {
		return reportError(c, err)
	}

	user := models.CurrentUser(c)
	fileID := domain.GetUUID()
	key := models.ClaimFileObjectKey(claim.ClientID, claim.ID, fileID, filepath.Ext(input.FileName))

	file := models.ClaimFile{
		ID:          fileID,
		ClaimID:     claim.ID,
		FileType:    string(input.FileType),
		FileName:    input.FileName,
		FileSize:    input.FileSize,
		ContentType: input.ContentType,
		ObjectKey:   key,
		CreatedByID: user.ID,
	}
	if err := file.Create(models.Tx(c)); err != nil {
		return reportError(c, err)
	}

	target, err := storage.SignUpload(key, input.ContentType)
	if err != nil {
		return reportError(c, api.NewAppError(err, api.ErrorUnableToSignURL, api.CategoryInternal))
	}

	// verify the upload once the presigned URL has expired
	delay := time.Duration(domain.Env.AwsS3URLLifeMinutes) * time.Minute
	if err := job.SubmitDelayed(job.ClaimFilesMigrate, delay, map[string]any{
		job.ArgClaimID: claim.ID.String(),
	}); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, api.ClaimFileUploadOutput{
		FileID:  fileID,
		Key:     key,
		URL:     target.Url,
		Headers: target.Headers,
	})
}

// claimFilesDownload issues a presigned download URL for a READY file.
func claimFilesDownload(c buffalo.Context) error {
	_, file, err := claimFileFromParams(c)
	if err != nil {
		return reportError(c, err)
	}

	if file.Status != string(api.ClaimFileStatusReady) {
		err := fmt.Errorf("file %s is not ready for download, status is %s", file.ID, file.Status)
		return reportError(c, api.NewAppError(err, api.ErrorClaimFileNotReady, api.CategoryUser))
	}

	fileURL, err := storage.GetFileURL(file.ObjectKey)
	if err != nil {
		return reportError(c, api.NewAppError(err, api.ErrorUnableToSignURL, api.CategoryInternal))
	}

	return renderOk(c, api.ClaimFileDownloadOutput{
		URL:         fileURL.Url,
		FileName:    file.FileName,
		ContentType: file.ContentType,
		FileSize:    file.FileSize,
	})
}

func claimFilesDelete(c buffalo.Context) error {
	claim, file, err := claimFileFromParams(c)
	if err != nil {
		return reportError(c, err)
	}

	if models.IsTerminalClaimStatus(claim.Status) {
		err := fmt.Errorf("files cannot be removed from a claim in status %s", claim.Status)
		return reportError(c, api.NewAppError(err, api.ErrorClaimFileNotEditable, api.CategoryUser))
	}

	if err := file.Delete(c); err != nil {
		return reportError(c, err)
	}

	user := models.CurrentUser(c)
	models.RecordAudit(user.ID, models.AuditActionClaimFileDeleted, "ClaimFile", file.ID,
		map[string]any{"claim_id": claim.ID, "file_name": file.FileName})

	return c.Render(http.StatusNoContent, nil)
}

func claimFileFromParams(c buffalo.Context) (models.Claim, models.ClaimFile, error) {
	claim, err := claimFromParam(c)
	if err != nil {
		return models.Claim{}, models.ClaimFile{}, err
	}

	fileID, err := uuid.FromString(c.Param("file_id"))
	if err != nil {
		err = fmt.Errorf("invalid claim file ID, not a UUID")
		return models.Claim{}, models.ClaimFile{}, api.NewAppError(err, api.ErrorMustBeAValidUUID, api.CategoryUser)
	}

	var file models.ClaimFile
	if err := file.FindOnClaim(models.Tx(c), claim.ID, fileID); err != nil {
		return models.Claim{}, models.ClaimFile{}, err
	}

	return claim, file, nil
}

func validateUploadInput(input api.ClaimFileUploadInput) error {
	if input.FileName == "" {
		err := fmt.Errorf("file name is required")
		return api.NewAppError(err, api.ErrorValidation, api.CategoryUser)
	}

	if input.FileSize > domain.MaxFileSize {
		err := fmt.Errorf("file size (%d) greater than max (%d)", input.FileSize, domain.MaxFileSize)
		return api.NewAppError(err, api.ErrorClaimFileTooLarge, api.CategoryUser)
	}

	if !domain.IsStringInSlice(input.ContentType, domain.AllowedFileUploadTypes) {
		err := fmt.Errorf("content type %s is not allowed", input.ContentType)
		return api.NewAppError(err, api.ErrorClaimFileContentTypeNotAllowed, api.CategoryUser)
	}

	return nil
}
