// FloorTrace — Floor Plan Digitizer
//
// A cross-platform desktop application for tracing rooms, windows, and
// doors over a scanned floor plan, grouping rooms into zones, and
// exporting schedules, drawings, and labels.
//
// Build:
//   go build -o floortrace ./cmd/floortrace
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o floortrace.exe ./cmd/floortrace
//   GOOS=darwin  GOARCH=amd64 go build -o floortrace-darwin ./cmd/floortrace
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/obravim/floortrace/internal/ui"
)

func main() {
	application := app.NewWithID("com.obravim.floortrace")
	application.Settings().SetTheme(ui.NewFloorTraceTheme())
	window := application.NewWindow("FloorTrace — Floor Plan Digitizer")

	appUI := ui.NewApp(window)
	appUI.SetupMenus() // Setup the native menu bar
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}
