package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PackView/internal/importer"
	applog "github.com/piwi3910/PackView/internal/log"
	"github.com/piwi3910/PackView/internal/model"
	"github.com/piwi3910/PackView/internal/project"
	"github.com/piwi3910/PackView/internal/ui/widgets"
	"github.com/piwi3910/PackView/internal/viewer"
)

// App holds all application state and UI references.
type App struct {
	window     fyne.Window
	config     model.AppConfig
	configPath string
	session    model.Session
	document   *project.Document
	history    *History
	logger     *slog.Logger

	engine *viewer.Engine
	canvas *widgets.BinCanvas
	ticker *revealTicker

	// Request form
	binWidthEntry *widget.Entry
	quantityEntry *widget.Entry
	typesEntry    *widget.Entry
	autofillCheck *widget.Check
	rectEditor    *widget.Entry
	messages      *widget.Label
	restoring     bool
	editingField  string
	lastForm      importer.RequestForm

	// Viewer panel
	speedSlider *widget.Slider
	speedLabel  *widget.Label
	revealLabel *widget.Label
	zoomLabel   *widget.Label
	hoverLabel  *widget.Label
	heightLabel *widget.Label
	status      *widget.Label
}

// NewApp creates the application state. configPath is where preferences
// such as recent files are written back.
func NewApp(window fyne.Window, cfg model.AppConfig, configPath string) *App {
	engine := viewer.NewEngine(cfg)
	a := &App{
		window:     window,
		config:     cfg,
		configPath: configPath,
		session:    model.NewSession(),
		history:    NewHistory(),
		logger:     applog.WithComponent("ui"),
		engine:     engine,
		canvas:     widgets.NewBinCanvas(engine),
		ticker:     newRevealTicker(),
	}
	a.canvas.OnOutputs = a.handleOutputs
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	recent := fyne.NewMenuItem("Open Recent", nil)
	recent.ChildMenu = a.buildRecentMenu()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Session", func() {
			a.newSession()
		}),
		fyne.NewMenuItem("Open Session...", func() {
			a.openSession()
		}),
		fyne.NewMenuItem("Save Session...", func() {
			a.saveSession()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Layout...", func() {
			a.importLayout()
		}),
		recent,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Request...", func() {
			a.exportRequest()
		}),
		fyne.NewMenuItem("Export Layout PDF...", func() {
			a.exportPDF()
		}),
		fyne.NewMenuItem("Export Labels...", func() {
			a.exportLabels()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	undo := fyne.NewMenuItem("Undo", func() { a.undo() })
	undo.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	redo := fyne.NewMenuItem("Redo", func() { a.redo() })
	redo.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}

	editMenu := fyne.NewMenu("Edit",
		undo,
		redo,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Request", func() {
			a.applyFormAction("Clear request", importer.RequestForm{})
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Reset View", func() {
			a.canvas.Dispatch(viewer.ResetView{})
		}),
		fyne.NewMenuItem("Skip Reveal", func() {
			a.skipReveal()
		}),
		fyne.NewMenuItem("Replay Reveal", func() {
			a.replayReveal()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

func (a *App) buildRecentMenu() *fyne.Menu {
	if len(a.config.RecentFiles) == 0 {
		empty := fyne.NewMenuItem("(none)", nil)
		empty.Disabled = true
		return fyne.NewMenu("", empty)
	}
	items := make([]*fyne.MenuItem, 0, len(a.config.RecentFiles))
	for _, path := range a.config.RecentFiles {
		items = append(items, fyne.NewMenuItem(path, func() {
			a.openLayoutPath(path)
		}))
	}
	return fyne.NewMenu("", items...)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About PackView",
		"PackView: Bin Layout Viewer\n\n"+
			"Builds rectangle requests for a strip packer and replays\n"+
			"the resulting layouts one rectangle at a time.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	split := container.NewHSplit(a.buildRequestPanel(), a.buildViewerPanel())
	split.Offset = 0.3
	return split
}

// Shutdown stops background work and persists viewer preferences.
func (a *App) Shutdown() {
	a.ticker.Stop()
	a.config.AnimationMs = a.engine.SpeedMs()
	a.saveConfig()
}

func (a *App) saveConfig() {
	if a.configPath == "" {
		return
	}
	if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
		a.logger.Warn("could not save config", slog.String("path", a.configPath), slog.Any("err", err))
	}
}

// rememberFile records a successfully opened layout in the recent files list.
func (a *App) rememberFile(path string) {
	a.config.AddRecentFile(path)
	a.saveConfig()
	a.SetupMenus()
}

func (a *App) setStatus(text string) {
	if a.status != nil {
		a.status.SetText(text)
	}
}
