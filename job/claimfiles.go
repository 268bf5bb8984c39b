package job

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobuffalo/buffalo/worker"
	"github.com/gobuffalo/pop/v6"
	"github.com/gofrs/uuid"

	"github.com/claimwell/claims-api/api"
	"github.com/claimwell/claims-api/log"
	"github.com/claimwell/claims-api/models"
	"github.com/claimwell/claims-api/storage"
)

// claimFilesMigrateHandler moves a claim's staged uploads from their temp
// location to the permanent claim location and marks each file READY, or
// FAILED when the object never arrived in the bucket.
func claimFilesMigrateHandler(args worker.Args) error {
	claimID, err := claimIDFromArgs(args)
	if err != nil {
		return err
	}

	var claim models.Claim
	if err := claim.FindByID(models.DB, claimID); err != nil {
		return fmt.Errorf("claim %s not found for file migration: %w", claimID, err)
	}

	var files models.ClaimFiles
	if err := files.LoadForClaim(models.DB, claim.ID); err != nil {
		return err
	}

	for i := range files {
		if files[i].Status != string(api.ClaimFileStatusPending) {
			continue
		}
		if err := migrateClaimFile(models.DB, claim, &files[i]); err != nil {
			log.Errorf("error migrating claim file %s: %s", files[i].ID, err)
		}
	}

	return nil
}

func migrateClaimFile(tx *pop.Connection, claim models.Claim, file *models.ClaimFile) error {
	if strings.HasPrefix(file.ObjectKey, "temp/") {
		targetKey := models.ClaimFileObjectKey(claim.ClientID, claim.ID, file.ID, filepath.Ext(file.FileName))
		if err := storage.MoveFile(file.ObjectKey, targetKey); err != nil {
			return file.SetStatus(tx, api.ClaimFileStatusFailed)
		}
		file.ObjectKey = targetKey
	}

	exists, err := storage.ObjectExists(file.ObjectKey)
	if err != nil {
		return err
	}
	if !exists {
		return file.SetStatus(tx, api.ClaimFileStatusFailed)
	}

	return file.SetStatus(tx, api.ClaimFileStatusReady)
}

// pendingFilesPurgeHandler removes staged uploads that were never attached to
// a claim within their lifetime, deleting both the object and the row.
func pendingFilesPurgeHandler(_ worker.Args) error {
	defer resubmitPurgeJob()

	var expired models.PendingClaimFiles
	if err := expired.FindExpired(models.DB); err != nil {
		return err
	}

	for _, p := range expired {
		if err := storage.RemoveFile(p.ObjectKey); err != nil {
			log.Errorf("error removing expired staged object %s: %s", p.ObjectKey, err)
			continue
		}
		staged := p
		if err := staged.Destroy(models.DB); err != nil {
			log.Errorf("error destroying expired staged file %s: %s", p.ID, err)
		}
	}

	return nil
}

func resubmitPurgeJob() {
	// Run twice a day, in case it errors out
	if err := SubmitDelayed(PendingFilesPurge, time.Hour*12, map[string]any{}); err != nil {
		log.Errorf("error resubmitting %s job: %s", PendingFilesPurge, err)
	}
}

func claimIDFromArgs(args worker.Args) (uuid.UUID, error) {
	raw, ok := args[ArgClaimID]
	if !ok {
		return uuid.UUID{}, fmt.Errorf("job args missing %s", ArgClaimID)
	}

	switch v := raw.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		return uuid.FromString(v)
	}
	return uuid.UUID{}, fmt.Errorf("unrecognized %s type %T", ArgClaimID, raw)
}
