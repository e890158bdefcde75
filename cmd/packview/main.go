// PackView: Bin Layout Viewer
//
// A cross-platform desktop application for building rectangle requests
// for a strip packer and replaying the resulting layouts.
//
// Build:
//   go build -o packview ./cmd/packview
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o packview.exe ./cmd/packview
//   GOOS=darwin  GOARCH=amd64 go build -o packview-darwin ./cmd/packview
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	applog "github.com/piwi3910/PackView/internal/log"
	"github.com/piwi3910/PackView/internal/model"
	"github.com/piwi3910/PackView/internal/project"
	"github.com/piwi3910/PackView/internal/ui"
)

func main() {
	configPath := project.DefaultConfigPath()
	cfg, cfgErr := project.LoadAppConfig(configPath)
	if cfgErr != nil {
		cfg = model.DefaultAppConfig()
	}

	applog.Init(project.LogOptions(cfg))
	defer applog.Close()
	if cfgErr != nil {
		applog.L().Warn("using default config, changes will not be saved", slog.String("path", configPath), slog.Any("err", cfgErr))
		configPath = ""
	}

	application := app.NewWithID("com.piwi3910.packview")
	application.Settings().SetTheme(ui.ThemeFromConfig(cfg.Theme))
	window := application.NewWindow("PackView: Bin Layout Viewer")

	appUI := ui.NewApp(window, cfg, configPath)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()
	window.ShowAndRun()

	appUI.Shutdown()
}
