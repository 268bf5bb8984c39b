package job

import (
	"fmt"

	"github.com/gobuffalo/buffalo/worker"

	"github.com/claimwell/claims-api/messages"
	"github.com/claimwell/claims-api/models"
)

func claimCreatedNotifyHandler(args worker.Args) error {
	claimID, err := claimIDFromArgs(args)
	if err != nil {
		return err
	}

	var claim models.Claim
	if err := claim.FindByID(models.DB, claimID); err != nil {
		return fmt.Errorf("claim %s not found for created notification: %w", claimID, err)
	}

	messages.ClaimCreatedSend(models.DB, claim)
	return nil
}

func claimTransitionedNotifyHandler(args worker.Args) error {
	claimID, err := claimIDFromArgs(args)
	if err != nil {
		return err
	}

	var claim models.Claim
	if err := claim.FindByID(models.DB, claimID); err != nil {
		return fmt.Errorf("claim %s not found for transition notification: %w", claimID, err)
	}

	var histories models.ClaimHistories
	if err := histories.LoadForClaim(models.DB, claim.ID); err != nil {
		return err
	}
	if len(histories) == 0 {
		return fmt.Errorf("claim %s has no history to notify about", claimID)
	}

	messages.ClaimTransitionedSend(models.DB, claim, histories[len(histories)-1])
	return nil
}
