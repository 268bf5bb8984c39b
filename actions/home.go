package actions

import (
	"fmt"
	"net/http"

	"github.com/gobuffalo/buffalo"

	"github.com/claimwell/claims-api/domain"
)

// homeHandler is a default handler to serve up a home page.
func homeHandler(c buffalo.Context) error {
	return renderOk(c, map[string]string{"message": fmt.Sprintf("Welcome to the %s API", domain.Env.AppName)})
}

// statusHandler reports whether the app is up.
func statusHandler(c buffalo.Context) error {
	return c.Render(http.StatusNoContent, nil)
}
