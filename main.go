package main

import (
	"os"

	"github.com/claimwell/claims-api/actions"
	"github.com/claimwell/claims-api/log"
)

// main is the starting point for the Buffalo application.
func main() {
	app := actions.App()
	if err := app.Serve(); err != nil {
		if err.Error() != "context canceled" {
			log.Fatalf("error serving app, %s", err)
		}
		os.Exit(0)
	}
}
