// AtlasPack Viewer, a desktop front end for the AtlasPack shelf packer.
//
// Import items from CSV, Excel, DXF or TOML, pack them and export the
// layout as PDF, PNG, Excel, DXF or QR label sheets.
//
// Build:
//   go build -o atlaspack-view ./cmd/atlaspack-view
//
// Using fyne-cross for packaged builds:
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/AtlasPack/internal/ui"
)

func main() {
	application := app.NewWithID("com.piwi3910.atlaspack")
	window := application.NewWindow("AtlasPack Viewer")

	appUI := ui.NewApp(application, window)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}
