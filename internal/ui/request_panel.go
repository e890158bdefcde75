package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PackView/internal/autofill"
	"github.com/piwi3910/PackView/internal/importer"
	"github.com/piwi3910/PackView/internal/model"
	"github.com/piwi3910/PackView/internal/project"
)

// ─── Request Panel ─────────────────────────────────────────

func (a *App) buildRequestPanel() fyne.CanvasObject {
	a.binWidthEntry = widget.NewEntry()
	a.binWidthEntry.SetPlaceHolder("required")
	a.quantityEntry = widget.NewEntry()
	a.quantityEntry.SetPlaceHolder("optional")
	a.typesEntry = widget.NewEntry()
	a.typesEntry.SetPlaceHolder("optional")

	a.autofillCheck = widget.NewCheck("Autofill missing rectangles", func(bool) {
		a.recordEdit("autofill")
	})
	a.autofillCheck.SetChecked(a.config.Autofill)

	a.rectEditor = widget.NewMultiLineEntry()
	a.rectEditor.SetPlaceHolder("One rectangle per line: width height quantity\n5 3 2\n4 2 1")
	a.rectEditor.Wrapping = fyne.TextWrapOff
	a.rectEditor.SetMinRowsVisible(12)

	a.binWidthEntry.OnChanged = func(string) { a.recordEdit("bin width") }
	a.quantityEntry.OnChanged = func(string) { a.recordEdit("quantity") }
	a.typesEntry.OnChanged = func(string) { a.recordEdit("types") }
	a.rectEditor.OnChanged = func(string) { a.recordEdit("rectangles") }
	a.lastForm = a.currentForm()

	a.messages = widget.NewLabel("")
	a.messages.Wrapping = fyne.TextWrapWord
	a.messages.Importance = widget.DangerImportance

	form := widget.NewForm(
		widget.NewFormItem("Bin width", a.binWidthEntry),
		widget.NewFormItem("Quantity", a.quantityEntry),
		widget.NewFormItem("Types", a.typesEntry),
	)

	importRow := container.NewHBox(
		widget.NewButtonWithIcon("Text", theme.FileTextIcon(), func() { a.importText() }),
		widget.NewButtonWithIcon("CSV", theme.FileIcon(), func() { a.importCSV() }),
		widget.NewButtonWithIcon("Excel", theme.GridIcon(), func() { a.importExcel() }),
	)
	exportBtn := widget.NewButtonWithIcon("Export Request", theme.DocumentSaveIcon(), func() {
		a.exportRequest()
	})
	exportBtn.Importance = widget.HighImportance

	header := container.NewVBox(
		widget.NewLabelWithStyle("Request", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		a.autofillCheck,
		widget.NewLabel("Rectangles"),
	)
	footer := container.NewVBox(
		container.NewHBox(widget.NewLabel("Import:"), importRow),
		exportBtn,
		container.NewVScroll(a.messages),
	)
	return container.NewBorder(header, footer, nil, nil, a.rectEditor)
}

func (a *App) currentForm() importer.RequestForm {
	return importer.RequestForm{
		BinWidth:   a.binWidthEntry.Text,
		Quantity:   a.quantityEntry.Text,
		Types:      a.typesEntry.Text,
		Autofill:   a.autofillCheck.Checked,
		Rectangles: a.rectEditor.Text,
	}
}

// setForm writes a form into the widgets without recording history.
func (a *App) setForm(f importer.RequestForm) {
	a.restoring = true
	defer func() { a.restoring = false }()

	a.binWidthEntry.SetText(f.BinWidth)
	a.quantityEntry.SetText(f.Quantity)
	a.typesEntry.SetText(f.Types)
	a.autofillCheck.SetChecked(f.Autofill)
	a.rectEditor.SetText(f.Rectangles)
	a.lastForm = f
	a.editingField = ""
}

// recordEdit pushes the form as it was before a run of edits to one field.
// Consecutive keystrokes in the same field collapse into one undo step.
func (a *App) recordEdit(field string) {
	if a.restoring || a.rectEditor == nil {
		return
	}
	if a.editingField != field {
		a.history.Push(MakeSnapshot(a.lastForm, "Edit "+field))
		a.editingField = field
	}
	a.lastForm = a.currentForm()
}

// applyFormAction replaces the form as a single undoable step.
func (a *App) applyFormAction(label string, f importer.RequestForm) {
	a.history.Push(MakeSnapshot(a.currentForm(), label))
	a.setForm(f)
	a.setStatus(label)
}

func (a *App) undo() {
	snap, ok := a.history.Undo(MakeSnapshot(a.currentForm(), "current"))
	if !ok {
		return
	}
	a.setForm(snap.Form)
	a.setStatus("Undo: " + snap.Label)
}

func (a *App) redo() {
	snap, ok := a.history.Redo(MakeSnapshot(a.currentForm(), "current"))
	if !ok {
		return
	}
	a.setForm(snap.Form)
	a.setStatus("Redo")
}

func (a *App) showMessages(msgs []string) {
	a.messages.SetText(strings.Join(msgs, "\n"))
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importText() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		text, err := project.LoadRequestText(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		f := a.currentForm()
		f.Rectangles = text
		a.applyFormAction("Import text", f)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".txt", ".in"}))
	d.Show()
}

func (a *App) importCSV() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult("Import CSV", importer.ImportCSV(reader.URI().Path()))
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".txt"}))
	d.Show()
}

func (a *App) importExcel() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult("Import Excel", importer.ImportExcel(reader.URI().Path()))
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".xlsx"}))
	d.Show()
}

// handleImportResult appends imported rectangles to the editor.
func (a *App) handleImportResult(label string, result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(errors.New(errorMsg), a.window)
	}
	for _, w := range result.Warnings {
		a.logger.Warn("import warning", slog.String("source", label), slog.String("warning", w))
	}
	if len(result.Rectangles) == 0 {
		return
	}

	f := a.currentForm()
	existing := strings.TrimRight(f.Rectangles, "\n")
	if existing != "" {
		existing += "\n"
	}
	f.Rectangles = existing + importer.FormatRectangles(result.Rectangles)
	a.applyFormAction(fmt.Sprintf("%s (%d lines)", label, len(result.Rectangles)), f)
}

// ─── Request Export ─────────────────────────────────────────

// buildInput parses the form and runs autofill. Problems are listed in the
// message area and reported as ok=false.
func (a *App) buildInput() (model.GeneratedInput, bool) {
	req, errs := importer.ParseRequest(a.currentForm())
	if len(errs) > 0 {
		a.showMessages(errs)
		return model.GeneratedInput{}, false
	}
	input, err := autofill.Generate(req, autofill.NewRand(0))
	if err != nil {
		if errors.Is(err, autofill.ErrInfeasible) {
			a.showMessages([]string{"Autofill cannot reach the requested targets: " + err.Error()})
		} else {
			a.showMessages([]string{err.Error()})
		}
		return model.GeneratedInput{}, false
	}
	a.showMessages(nil)
	return input, true
}

func (a *App) exportRequest() {
	input, ok := a.buildInput()
	if !ok {
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.SaveGeneratedInput(path, input); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.session.Request = &input
		a.setStatus(fmt.Sprintf("Request saved: %d rectangles of %d types", input.TotalQuantity, input.TotalTypes))
	}, a.window)
	d.SetFileName("input.json")
	d.Show()
}

// formFromInput fills the form from a saved request.
func formFromInput(in model.GeneratedInput) importer.RequestForm {
	return importer.RequestForm{
		BinWidth:   fmt.Sprintf("%d", in.BinWidth),
		Quantity:   fmt.Sprintf("%d", in.TotalQuantity),
		Types:      fmt.Sprintf("%d", in.TotalTypes),
		Autofill:   in.AutofillUsed,
		Rectangles: importer.FormatRectangles(in.Rectangles),
	}
}
