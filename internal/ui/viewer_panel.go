package ui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PackView/internal/export"
	"github.com/piwi3910/PackView/internal/importer"
	"github.com/piwi3910/PackView/internal/model"
	"github.com/piwi3910/PackView/internal/project"
	"github.com/piwi3910/PackView/internal/viewer"
)

// ─── Viewer Panel ──────────────────────────────────────────

func (a *App) buildViewerPanel() fyne.CanvasObject {
	a.speedLabel = widget.NewLabel("")
	a.speedSlider = widget.NewSlider(model.MinAnimationMs, model.MaxAnimationMs)
	a.speedSlider.Step = 10
	a.speedSlider.SetValue(a.engine.SpeedMs())
	a.speedSlider.OnChanged = func(ms float64) {
		a.canvas.Dispatch(viewer.SetSpeed{Millis: ms})
		a.refreshStats()
	}

	a.revealLabel = widget.NewLabel("")
	a.zoomLabel = widget.NewLabel("")
	a.hoverLabel = widget.NewLabel("")
	a.heightLabel = widget.NewLabel("")
	a.status = widget.NewLabel("Import a layout to begin.")
	a.status.Truncation = fyne.TextTruncateEllipsis

	toolbar := container.NewHBox(
		newIconButtonWithTooltip(theme.FolderOpenIcon(), "Import layout (JSON or DXF)", a.importLayout),
		newIconButtonWithTooltip(theme.ZoomInIcon(), "Zoom in", func() {
			a.canvas.Dispatch(viewer.Wheel{Delta: 1})
		}),
		newIconButtonWithTooltip(theme.ZoomOutIcon(), "Zoom out", func() {
			a.canvas.Dispatch(viewer.Wheel{Delta: -1})
		}),
		newIconButtonWithTooltip(theme.ZoomFitIcon(), "Reset view", func() {
			a.canvas.Dispatch(viewer.ResetView{})
		}),
		newIconButtonWithTooltip(theme.MediaFastForwardIcon(), "Skip reveal", a.skipReveal),
		newIconButtonWithTooltip(theme.MediaReplayIcon(), "Replay reveal", a.replayReveal),
		newIconButtonWithTooltip(theme.DocumentPrintIcon(), "Export layout PDF", a.exportPDF),
		widget.NewSeparator(),
		widget.NewLabel("Speed"),
		container.NewGridWrap(fyne.NewSize(160, a.speedSlider.MinSize().Height), a.speedSlider),
		a.speedLabel,
	)

	stats := container.NewHBox(a.revealLabel, a.zoomLabel, a.heightLabel, a.hoverLabel)
	a.refreshStats()

	return container.NewBorder(
		container.NewVBox(toolbar, stats),
		a.status,
		nil, nil,
		a.canvas,
	)
}

// handleOutputs reacts to engine changes that need more than a redraw.
func (a *App) handleOutputs(out []viewer.Output) {
	for _, o := range out {
		switch o := o.(type) {
		case viewer.DragEnded:
			a.reportDrop(o)
		case viewer.RevealFinished:
			a.setStatus(fmt.Sprintf("Revealed %d rectangles.", o.Total))
		case viewer.LayoutUnloaded:
			a.setStatus("No layout loaded.")
		}
	}
	a.refreshStats()
}

func (a *App) reportDrop(ev viewer.DragEnded) {
	r := ev.Result
	a.logger.Info("drop evaluated",
		slog.Int("index", ev.Index),
		slog.Bool("inside", r.Inside),
		slog.Bool("intersects", r.Intersects),
		slog.Float64("new_x", r.NewX),
		slog.Float64("new_y", r.NewY),
	)
	switch {
	case r.Valid():
		a.setStatus(fmt.Sprintf("Rectangle #%d would fit at (%.1f, %.1f).", ev.Index+1, r.NewX, r.NewY))
	case !r.Inside:
		a.setStatus(fmt.Sprintf("Rectangle #%d would leave the bin.", ev.Index+1))
	default:
		a.setStatus(fmt.Sprintf("Rectangle #%d would overlap another rectangle.", ev.Index+1))
	}
}

func (a *App) refreshStats() {
	s := a.engine.Stats()
	a.revealLabel.SetText(fmt.Sprintf("Shown: %d / %d", s.Visible, s.Total))
	a.zoomLabel.SetText(fmt.Sprintf("Zoom: %.0f%%", s.ZoomPercent))
	a.speedLabel.SetText(fmt.Sprintf("%.0f ms", a.engine.SpeedMs()))
	if s.Total == 0 && a.engine.Layout() == nil {
		a.heightLabel.SetText("Height: -")
	} else {
		a.heightLabel.SetText(fmt.Sprintf("Height: %g", s.TotalHeight))
	}
	if s.Hovered != nil {
		a.hoverLabel.SetText(fmt.Sprintf("Hover: %d x %d at (%g, %g)", s.Hovered.Width, s.Hovered.Height, s.Hovered.X, s.Hovered.Y))
	} else {
		a.hoverLabel.SetText("")
	}
}

// ─── Reveal ────────────────────────────────────────────────

func (a *App) startReveal() {
	a.ticker.Start(a.engine.TickInterval(), func() (time.Duration, bool) {
		a.canvas.Dispatch(viewer.Tick{})
		return a.engine.TickInterval(), a.engine.Animating()
	})
}

func (a *App) skipReveal() {
	a.ticker.Stop()
	a.canvas.Dispatch(viewer.SkipReveal{})
}

// replayReveal reloads the current layout so the reveal starts over.
func (a *App) replayReveal() {
	layout := a.engine.Layout()
	if layout == nil {
		return
	}
	a.ticker.Stop()
	a.canvas.Dispatch(viewer.Load{Layout: layout})
	a.startReveal()
}

// ─── Layout Loading ────────────────────────────────────────

func (a *App) importLayout() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.openLayoutPath(reader.URI().Path())
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json", ".dxf"}))
	d.Show()
}

// openLayoutPath reads a layout file. A failed read leaves the current
// layout on screen.
func (a *App) openLayoutPath(path string) {
	var doc project.Document
	if strings.EqualFold(filepath.Ext(path), ".dxf") {
		result := importer.ImportLayoutDXF(path)
		if len(result.Errors) > 0 {
			dialog.ShowError(fmt.Errorf("could not import %s:\n\n%s", filepath.Base(path), strings.Join(result.Errors, "\n")), a.window)
			return
		}
		for _, w := range result.Warnings {
			a.logger.Warn("dxf import warning", slog.String("path", path), slog.String("warning", w))
		}
		doc = project.NewDocument(path, *result.Layout)
	} else {
		var err error
		doc, err = project.LoadLayout(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
	}
	a.showLayout(doc)
	a.rememberFile(path)
}

func (a *App) showLayout(doc project.Document) {
	a.ticker.Stop()
	layout := doc.Layout
	a.document = &doc
	a.session.Layout = &layout
	a.canvas.Dispatch(viewer.Load{Layout: &layout})
	a.startReveal()
	a.logger.Info("layout shown", slog.String("document", doc.ID.String()), slog.String("path", doc.Path))
	a.setStatus(fmt.Sprintf("Loaded %s: %d rectangles, bin %d x %g.",
		filepath.Base(doc.Path), len(layout.Placements), layout.BinWidth, layout.TotalHeight))
}

// ─── Sessions ──────────────────────────────────────────────

func (a *App) newSession() {
	a.ticker.Stop()
	a.canvas.Dispatch(viewer.Unload{})
	a.session = model.NewSession()
	a.document = nil
	a.setForm(importer.RequestForm{Autofill: a.config.Autofill})
	a.history.Clear()
	a.showMessages(nil)
}

// attachFormRequest stores the request form in the session when none is
// recorded yet. A blank form is skipped. A form that does not build shows its
// messages and returns false.
func (a *App) attachFormRequest() bool {
	if a.session.Request != nil {
		return true
	}
	f := a.currentForm()
	f.Autofill = false
	if strings.TrimSpace(f.Rectangles) == "" {
		f.Rectangles = ""
	}
	if (f == importer.RequestForm{}) {
		return true
	}
	input, ok := a.buildInput()
	if !ok {
		a.setStatus("Session not saved: fix the request form first.")
		return false
	}
	a.session.Request = &input
	return true
}

func (a *App) saveSession() {
	if !a.attachFormRequest() {
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := project.SaveSession(writer.URI().Path(), a.session); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.setStatus("Session saved.")
	}, a.window)
	d.SetFileName(a.session.Name + ".pvsession")
	d.Show()
}

func (a *App) openSession() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		session, err := project.LoadSession(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		a.newSession()
		a.session = session
		if session.Request != nil {
			a.setForm(formFromInput(*session.Request))
		}
		if session.Layout != nil {
			a.showLayout(project.NewDocument(path, *session.Layout))
		}
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pvsession", ".json"}))
	d.Show()
}

// ─── Export ────────────────────────────────────────────────

func (a *App) loadedLayout() (model.LayoutResult, bool) {
	layout := a.engine.Layout()
	if layout == nil {
		dialog.ShowInformation("No layout", "Import a layout before exporting.", a.window)
		return model.LayoutResult{}, false
	}
	return *layout, true
}

func (a *App) exportPDF() {
	layout, ok := a.loadedLayout()
	if !ok {
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := export.ExportPDF(writer.URI().Path(), layout); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Layout saved to %s", writer.URI().Path()), a.window)
	}, a.window)
	d.SetFileName("layout.pdf")
	d.Show()
}

func (a *App) exportLabels() {
	layout, ok := a.loadedLayout()
	if !ok {
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := export.ExportLabels(writer.URI().Path(), layout); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Labels saved to %s", writer.URI().Path()), a.window)
	}, a.window)
	d.SetFileName("labels.pdf")
	d.Show()
}
