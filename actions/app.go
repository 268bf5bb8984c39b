package actions

import (
	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/buffalo-pop/v3/pop/popmw"
	contenttype "github.com/gobuffalo/mw-contenttype"
	paramlogger "github.com/gobuffalo/mw-paramlogger"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"

	"github.com/claimwell/claims-api/domain"
	"github.com/claimwell/claims-api/job"
	"github.com/claimwell/claims-api/listeners"
	"github.com/claimwell/claims-api/models"
)

var app *buffalo.App

// App is where all routes and middleware for buffalo should be defined.
//
// Routing, middleware, groups, etc... are declared TOP -> DOWN.
// This means if you add a middleware to `app` *after* declaring a
// group, that group will NOT have that new middleware. The same
// is true of resource declarations as well.
func App() *buffalo.App {
	if app == nil {
		app = buffalo.New(buffalo.Options{
			Env: domain.Env.GoEnv,
			PreWares: []buffalo.PreWare{
				cors.New(cors.Options{
					AllowCredentials: true,
					AllowedOrigins:   []string{domain.Env.UIURL},
					AllowedMethods:   []string{"HEAD", "GET", "POST", "PUT", "PATCH", "DELETE"},
					AllowedHeaders:   []string{"*"},
				}).Handler,
			},
			SessionName:  "_claimwell_api_session",
			SessionStore: sessions.NewCookieStore([]byte(domain.Env.SessionSecret)),
		})

		registerCustomErrorHandler(app)

		// Log request parameters (filters apply).
		app.Use(paramlogger.ParameterLogger)

		// Set the request content type to JSON
		app.Use(contenttype.Set("application/json"))

		// Wraps each request in a transaction. Claim mutations open their own
		// transactions on models.DB so the request-level one stays read-only.
		app.Use(popmw.Transaction(models.DB))

		app.GET("/", homeHandler)
		app.GET("/status", statusHandler)

		configGroup := app.Group("/config")
		configGroup.GET("/claim-statuses", claimStatuses)
		configGroup.GET("/care-types", careTypes)

		usersGroup := app.Group("/users")
		usersGroup.Use(AuthN)
		usersGroup.GET("/me", usersMe)

		claimsGroup := app.Group("/claims")
		claimsGroup.Use(AuthN)
		claimsGroup.GET("/", claimsList)
		claimsGroup.POST("/", claimsCreate)
		claimsGroup.POST("/files", claimFilesStage)
		claimsGroup.GET("/{id}", claimsView)
		claimsGroup.PATCH("/{id}", claimsUpdate)
		claimsGroup.POST("/{id}/transition", claimsTransition)
		claimsGroup.GET("/{id}/history", claimsHistory)
		claimsGroup.POST("/{id}/files", claimFilesAttach)
		claimsGroup.GET("/{id}/files/{file_id}/url", claimFilesDownload)
		claimsGroup.DELETE("/{id}/files/{file_id}", claimFilesDelete)
		claimsGroup.GET("/{id}/invoices", claimInvoicesList)
		claimsGroup.POST("/{id}/invoices", claimInvoicesCreate)
		claimsGroup.PUT("/{id}/invoices/{invoice_id}", claimInvoicesUpdate)
		claimsGroup.DELETE("/{id}/invoices/{invoice_id}", claimInvoicesDelete)

		listeners.RegisterListeners()

		appWorker := app.Worker
		job.Init(&appWorker)
	}

	return app
}
