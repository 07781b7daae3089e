// Package panels provides the side panel widgets for the main window.
package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"xray-insight/internal/app"
	"xray-insight/internal/filmlabel"
)

// ResultsPanel shows ranked predictions, the overlay view selector, and the
// report summary for the latest analysis.
type ResultsPanel struct {
	root *fyne.Container

	viewSelect  *widget.Select
	findings    *fyne.Container
	markersRow  *widget.Label
	summaryText *widget.Label

	// OnViewSelected is called when the user picks an overlay view.
	OnViewSelected func(name string)
}

// NewResultsPanel creates an empty results panel.
func NewResultsPanel() *ResultsPanel {
	rp := &ResultsPanel{
		findings:    container.NewVBox(),
		markersRow:  widget.NewLabel(""),
		summaryText: widget.NewLabel("Load an image and run analysis."),
	}
	rp.summaryText.Wrapping = fyne.TextWrapWord

	rp.viewSelect = widget.NewSelect(nil, func(name string) {
		if rp.OnViewSelected != nil {
			rp.OnViewSelected(name)
		}
	})
	rp.viewSelect.PlaceHolder = "Overlay view"
	rp.viewSelect.Disable()

	rp.root = container.NewVBox(
		widget.NewLabelWithStyle("Findings", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		rp.findings,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Heatmap View", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		rp.viewSelect,
		widget.NewSeparator(),
		rp.markersRow,
		rp.summaryText,
	)

	return rp
}

// Container returns the panel's root container.
func (rp *ResultsPanel) Container() fyne.CanvasObject {
	return container.NewVScroll(rp.root)
}

// ShowResult fills the panel from a completed analysis.
func (rp *ResultsPanel) ShowResult(res *app.AnalysisResult) {
	rp.findings.Objects = nil
	for _, p := range res.Predictions.Ranked() {
		_, hasMap := res.Maps[p.Class]
		text := fmt.Sprintf("%s: %.1f%%", p.Class, p.Confidence*100)
		if !hasMap {
			text += " (no visualization available)"
		}
		rp.findings.Add(widget.NewLabel(text))
	}
	rp.findings.Refresh()

	rp.markersRow.SetText(filmlabel.DescribeMarkers(res.Markers))
	rp.summaryText.SetText(res.Summary)

	views := res.ViewNames()
	rp.viewSelect.Options = views
	rp.viewSelect.Enable()
	if len(views) > 0 {
		rp.viewSelect.SetSelected(views[0])
	}
}

// Clear resets the panel to its idle state.
func (rp *ResultsPanel) Clear() {
	rp.findings.Objects = nil
	rp.findings.Refresh()
	rp.markersRow.SetText("")
	rp.summaryText.SetText("Load an image and run analysis.")
	rp.viewSelect.Options = nil
	rp.viewSelect.Disable()
}
