// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"gocv.io/x/gocv"

	"xray-insight/internal/app"
	"xray-insight/internal/session"
	"xray-insight/internal/xray"
	"xray-insight/ui/panels"
	"xray-insight/ui/prefs"
)

const prefKeyLastDir = "lastDirectory"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app      fyne.App
	state    *app.State
	analyzer *app.Analyzer
	prefs    *prefs.Prefs

	imageView  *fynecanvas.Image
	results    *panels.ResultsPanel
	analyzeBtn *widget.Button
	saveBtn    *widget.Button
	statusBar  *widget.Label
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, analyzer *app.Analyzer, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("X-Ray Insight")
	win.Resize(fyne.NewSize(1200, 800))

	mw := &MainWindow{
		Window:   win,
		app:      fyneApp,
		state:    state,
		analyzer: analyzer,
		prefs:    appPrefs,
	}

	mw.setupUI()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.imageView = &fynecanvas.Image{FillMode: fynecanvas.ImageFillContain}

	mw.results = panels.NewResultsPanel()
	mw.results.OnViewSelected = mw.showView

	mw.statusBar = widget.NewLabel("Ready")

	openBtn := widget.NewButton("Open Image", mw.onOpen)
	sessionBtn := widget.NewButton("Open Session", mw.onOpenSession)
	mw.analyzeBtn = widget.NewButton("Analyze", mw.onAnalyze)
	mw.analyzeBtn.Disable()
	mw.saveBtn = widget.NewButton("Save Session", mw.onSaveSession)
	mw.saveBtn.Disable()

	toolbar := container.NewHBox(openBtn, sessionBtn, mw.analyzeBtn, mw.saveBtn)

	imageArea := container.NewBorder(toolbar, nil, nil, nil, mw.imageView)

	split := container.NewHSplit(mw.results.Container(), imageArea)
	split.SetOffset(0.3)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	)

	mw.SetContent(content)
}

// setupEventHandlers wires state events to UI updates.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		r, ok := data.(*xray.Radiograph)
		if !ok || r == nil {
			return
		}
		mw.imageView.Image = r.Image
		mw.imageView.Refresh()
		mw.results.Clear()
		mw.analyzeBtn.Enable()
		mw.saveBtn.Disable()
		mw.statusBar.SetText(fmt.Sprintf("Loaded %s (%dx%d)",
			filepath.Base(r.Path), r.Width(), r.Height()))
	})

	mw.state.On(app.EventAnalysisStarted, func(interface{}) {
		mw.analyzeBtn.Disable()
		mw.statusBar.SetText("Analyzing...")
	})

	mw.state.On(app.EventAnalysisComplete, func(data interface{}) {
		res, ok := data.(*app.AnalysisResult)
		if !ok || res == nil {
			return
		}
		mw.results.ShowResult(res)
		mw.analyzeBtn.Enable()
		mw.saveBtn.Enable()
		mw.statusBar.SetText("Analysis complete")
	})

	mw.state.On(app.EventAnalysisFailed, func(data interface{}) {
		mw.analyzeBtn.Enable()
		mw.statusBar.SetText("Analysis failed")
		if err, ok := data.(error); ok {
			dialog.ShowError(err, mw.Window)
		}
	})
}

// onOpen shows the file dialog and loads the chosen radiograph.
func (mw *MainWindow) onOpen() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		_ = rc.Close()

		r, err := xray.Load(path)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}

		mw.prefs.SetString(prefKeyLastDir, filepath.Dir(path))
		if err := mw.prefs.Save(); err != nil {
			log.Printf("failed to save preferences: %v", err)
		}

		mw.state.SetRadiograph(r)
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter(xray.SupportedFormats()))
	if last := mw.prefs.String(prefKeyLastDir); last != "" {
		if uri, err := storage.ListerForURI(storage.NewFileURI(last)); err == nil {
			fd.SetLocation(uri)
		}
	}
	fd.Show()
}

// onAnalyze runs the pipeline on a worker goroutine so the UI stays
// responsive. Only one analysis runs at a time.
func (mw *MainWindow) onAnalyze() {
	if !mw.state.BeginAnalysis() {
		return
	}

	radiograph := mw.state.Radiograph

	go func() {
		res, err := mw.analyzer.Analyze(radiograph)
		if err != nil {
			log.Printf("analysis failed: %v", err)
			mw.state.FailAnalysis(err)
			return
		}
		mw.state.SetResult(res)
	}()
}

// onSaveSession writes the current reading to a session file.
func (mw *MainWindow) onSaveSession() {
	res := mw.state.Result
	radiograph := mw.state.Radiograph
	if res == nil || radiograph == nil {
		return
	}

	fd := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		path := wc.URI().Path()
		_ = wc.Close()

		sess := session.New()
		sess.SetImage(path, radiograph.Path)
		for _, p := range res.Predictions.Ranked() {
			sess.Findings = append(sess.Findings, session.Finding{
				Class:      p.Class,
				Confidence: p.Confidence,
			})
		}
		for _, m := range res.Markers {
			sess.Markers = append(sess.Markers, m.Token)
		}
		sess.Summary = res.Summary
		sess.Report = res.Detailed
		sess.Settings = session.Settings{
			OverlayAlpha: mw.analyzer.Alpha,
			MaxRegions:   mw.analyzer.Regions.MaxRegions,
		}

		if err := sess.Save(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.statusBar.SetText(fmt.Sprintf("Session saved to %s", filepath.Base(path)))
	}, mw.Window)

	fd.SetFileName("reading.xrsession")
	fd.Show()
}

// onOpenSession restores a saved reading: loads its image and reapplies the
// overlay settings it was saved with.
func (mw *MainWindow) onOpenSession() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		_ = rc.Close()

		sess, err := session.Load(path)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}

		if sess.Settings.OverlayAlpha > 0 {
			mw.analyzer.Alpha = sess.Settings.OverlayAlpha
		}
		if sess.Settings.MaxRegions > 0 {
			mw.analyzer.Regions.MaxRegions = sess.Settings.MaxRegions
		}

		imagePath := sess.GetImagePath(path)
		if imagePath == "" {
			mw.statusBar.SetText("Session has no image")
			return
		}
		r, err := xray.Load(imagePath)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.state.SetRadiograph(r)
		mw.statusBar.SetText(fmt.Sprintf("Session %s restored; re-run Analyze to view overlays",
			filepath.Base(path)))
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter([]string{".xrsession"}))
	fd.Show()
}

// showView renders the selected overlay into the image view.
func (mw *MainWindow) showView(name string) {
	res := mw.state.Result
	if res == nil {
		return
	}

	rendered := renderView(res, name)
	defer rendered.Close()

	img, err := rendered.ToImage()
	if err != nil {
		log.Printf("failed to convert overlay: %v", err)
		return
	}

	mw.imageView.Image = img
	mw.imageView.Refresh()
}

// renderView produces the Mat for a named overlay view. The caller owns the
// returned Mat.
func renderView(res *app.AnalysisResult, name string) gocv.Mat {
	switch name {
	case "Combined":
		return res.CombinedOverlay()
	case "Regions":
		return res.RegionOverlay()
	default:
		return res.OverlayFor(name)
	}
}
