// Package main provides the entry point for the Microalgae Counter application.
package main

import (
	"log"
	"os"

	"microalgae-counter/internal/app"
	"microalgae-counter/internal/export"
	"microalgae-counter/internal/settings"
	"microalgae-counter/internal/version"
	"microalgae-counter/ui/mainwindow"

	fyneapp "fyne.io/fyne/v2/app"
)

const (
	appID    = "org.microalgae.counter"
	appTitle = "Microalgae Counter"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	store := settings.NewDefaultStore()
	session := app.NewSession(store, export.New(export.DefaultDir))
	log.Printf("Settings: %s", store.Path())

	a := fyneapp.NewWithID(appID)
	a.Settings().SetTheme(&app.CounterTheme{})

	win := mainwindow.New(a, session)

	// Handle command line arguments
	if len(os.Args) > 1 {
		win.OpenImage(os.Args[1])
	}

	win.ShowAndRun()
}
