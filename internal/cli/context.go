// Package cli provides the command-line interface for the scraper.
package cli

import (
	"github.com/propwatch/baliscrape/internal/app"
)

// Global reference shared by the commands; set once in PersistentPreRunE.
var globalApp *app.Application

// SetApp stores the Application for commands to use.
func SetApp(a *app.Application) {
	globalApp = a
}

// GetApp retrieves the Application.
func GetApp() *app.Application {
	return globalApp
}
