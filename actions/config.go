package actions

import (
	"github.com/gobuffalo/buffalo"

	"github.com/claimwell/claims-api/api"
	"github.com/claimwell/claims-api/models"
)

// claimStatuses lists all valid claim statuses
func claimStatuses(c buffalo.Context) error {
	return renderOk(c, models.AllClaimStatuses)
}

// careTypes lists all valid care types
func careTypes(c buffalo.Context) error {
	return renderOk(c, api.AllCareTypes)
}
