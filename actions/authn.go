package actions

import (
	"errors"
	"fmt"

	"github.com/gobuffalo/buffalo"

	"github.com/claimwell/claims-api/api"
	"github.com/claimwell/claims-api/domain"
	"github.com/claimwell/claims-api/models"
)

// AuthN authenticates the request via its bearer token and puts the
// corresponding User on the context.
func AuthN(next buffalo.Handler) buffalo.Handler {
	return func(c buffalo.Context) error {
		bearerToken := domain.GetBearerTokenFromRequest(c.Request())
		if bearerToken == "" {
			err := errors.New("no bearer token provided")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		tx := models.Tx(c)

		var userAccessToken models.UserAccessToken
		if err := userAccessToken.FindByBearerToken(tx, bearerToken); err != nil {
			var appErr *api.AppError
			if errors.As(err, &appErr) && appErr.Category == api.CategoryDatabase {
				return reportError(c, err)
			}
			err = errors.New("invalid bearer token")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		isExpired, err := userAccessToken.DestroyIfExpired(tx)
		if err != nil {
			return reportError(c, err)
		}

		if isExpired {
			err = errors.New("expired bearer token")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		var user models.User
		if err := user.FindByID(tx, userAccessToken.UserID); err != nil {
			err = fmt.Errorf("error finding user by access token, %s", err)
			return reportError(c, err)
		}

		if !user.IsActive {
			err = errors.New("user is inactive")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		c.Set(domain.ContextKeyCurrentUser, user)

		newExtra(c, "user_id", user.ID)
		newExtra(c, "email", user.Email)

		return next(c)
	}
}
