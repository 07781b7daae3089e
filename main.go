// Package main provides the entry point for the X-Ray Insight application.
package main

import (
	"log"

	fyneapp "fyne.io/fyne/v2/app"

	"xray-insight/internal/app"
	"xray-insight/internal/classifier"
	"xray-insight/internal/config"
	"xray-insight/internal/filmlabel"
	"xray-insight/internal/version"
	"xray-insight/ui/mainwindow"
	"xray-insight/ui/prefs"
)

const appTitle = "X-Ray Insight"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.String())

	cfg := config.Load()

	var model classifier.Classifier
	if cfg.ModelPath != "" && cfg.MetadataPath != "" {
		onnx, err := classifier.NewONNXModel(cfg.ModelPath, cfg.MetadataPath)
		if err != nil {
			log.Printf("Failed to load classifier: %v", err)
		} else {
			defer onnx.Close()
			model = onnx
			log.Printf("Loaded classifier with %d classes", len(onnx.Classes()))
		}
	} else {
		log.Println("XRAY_MODEL_PATH / XRAY_MODEL_METADATA not set; analysis disabled")
	}

	labels, err := filmlabel.NewEngine()
	if err != nil {
		log.Printf("Film label OCR unavailable: %v", err)
		labels = nil
	} else {
		defer labels.Close()
	}

	fyneApp := fyneapp.New()
	fyneApp.Settings().SetTheme(&app.InsightTheme{})

	state := app.NewState()
	analyzer := app.NewAnalyzer(model, labels, cfg)
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, state, analyzer, appPrefs)
	win.ShowAndRun()
}
