package actions

import (
	"github.com/gobuffalo/buffalo"

	"github.com/claimwell/claims-api/models"
)

// usersMe returns the profile of the authenticated user
func usersMe(c buffalo.Context) error {
	user := models.CurrentUser(c)
	return renderOk(c, user.ConvertToAPI())
}
