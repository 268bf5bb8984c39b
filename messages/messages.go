// Package messages builds and sends the claim lifecycle emails. Bodies are
// plain HTML assembled here; delivery goes through the notifications package.
package messages

import (
	"fmt"

	"github.com/claimwell/claims-api/domain"
	"github.com/claimwell/claims-api/models"
)

func claimURL(claim models.Claim) string {
	return fmt.Sprintf("%s/claims/%s", domain.Env.UIURL, claim.ID)
}

func claimLabel(claim models.Claim) string {
	return fmt.Sprintf("CLM-%d", claim.ClaimNumber)
}
