package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// validatePackSettings rejects settings the packer cannot use.
func validatePackSettings(s model.PackSettings) error {
	if !(s.TargetFill > 0 && s.TargetFill <= 1) {
		return fmt.Errorf("target fill must be in (0, 1], got %g", s.TargetFill)
	}
	if !(s.Tolerance >= 0) {
		return fmt.Errorf("tolerance must not be negative, got %g", s.Tolerance)
	}
	return nil
}

// showPackSettingsDialog edits the packer settings of the open project.
func (a *App) showPackSettingsDialog() {
	s := a.project.Settings

	packerSection := widget.NewCard("Packer",
		"The start width is sqrt(total area / target fill). Lower values give wider boxes.",
		container.NewGridWithColumns(2,
			widget.NewLabel("Target Fill"), floatEntry(&s.TargetFill),
			widget.NewLabel("Edge Tolerance"), floatEntry(&s.Tolerance),
		))

	resetBtn := widget.NewButton("Use Preferences Defaults", nil)

	content := container.NewVBox(packerSection, resetBtn)
	d := dialog.NewCustomConfirm("Pack Settings", "Apply", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		if err := validatePackSettings(s); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if s == a.project.Settings {
			return
		}
		a.recordChange("Pack Settings")
		a.project.Settings = s
		a.itemsChanged()
	}, a.window)

	resetBtn.OnTapped = func() {
		a.config.ApplyToSettings(&s)
		d.Hide()
		a.recordChange("Pack Settings")
		a.project.Settings = s
		a.itemsChanged()
	}

	d.Resize(fyne.NewSize(420, 260))
	d.Show()
}
