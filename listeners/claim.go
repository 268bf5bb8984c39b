package listeners

import (
	"github.com/gobuffalo/events"

	"github.com/claimwell/claims-api/domain"
	"github.com/claimwell/claims-api/job"
	"github.com/claimwell/claims-api/log"
	"github.com/claimwell/claims-api/models"
	"github.com/claimwell/claims-api/storage"
)

func claimCreated(e events.Event) {
	if e.Kind != domain.EventApiClaimCreated {
		return
	}

	defer panicRecover(e.Kind)

	var claim models.Claim
	if err := findObject(e.Payload, &claim, e.Kind); err != nil {
		return
	}

	args := map[string]any{job.ArgClaimID: claim.ID.String()}
	if err := job.Submit(job.ClaimFilesMigrate, args); err != nil {
		log.Errorf("error submitting %s job for claim %s: %s", job.ClaimFilesMigrate, claim.ID, err)
	}
	if err := job.Submit(job.ClaimCreatedNotify, args); err != nil {
		log.Errorf("error submitting %s job for claim %s: %s", job.ClaimCreatedNotify, claim.ID, err)
	}
}

func claimTransitioned(e events.Event) {
	if e.Kind != domain.EventApiClaimTransitioned {
		return
	}

	defer panicRecover(e.Kind)

	var claim models.Claim
	if err := findObject(e.Payload, &claim, e.Kind); err != nil {
		return
	}

	args := map[string]any{job.ArgClaimID: claim.ID.String()}
	if err := job.Submit(job.ClaimTransitionedNotify, args); err != nil {
		log.Errorf("error submitting %s job for claim %s: %s", job.ClaimTransitionedNotify, claim.ID, err)
	}
}

// claimFileDeleted removes the stored object after its file row is gone. The
// payload carries the object key since the row no longer exists to look up.
func claimFileDeleted(e events.Event) {
	if e.Kind != domain.EventApiClaimFileDeleted {
		return
	}

	defer panicRecover(e.Kind)

	key, ok := e.Payload["objectKey"].(string)
	if !ok || key == "" {
		log.Errorf("claim file deleted event has no object key")
		return
	}

	if err := storage.RemoveFile(key); err != nil {
		log.Errorf("error removing deleted claim file object %s: %s", key, err)
	}
}
