package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
)

// floatEntry creates an entry that writes valid numbers through to val.
func floatEntry(val *float64) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.FormatFloat(*val, 'g', -1, 64))
	e.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			*val = v
		}
	}
	return e
}

func intEntry(val *int) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.Itoa(*val))
	e.OnChanged = func(text string) {
		if v, err := strconv.Atoi(text); err == nil {
			*val = v
		}
	}
	return e
}

// showSettingsDialog displays the application preferences editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	var patterns []string
	for _, p := range engine.BenchPatterns() {
		patterns = append(patterns, string(p))
	}
	patternSelect := widget.NewSelect(patterns, func(selected string) {
		cfg.BenchPattern = model.BenchPattern(selected)
	})
	patternSelect.SetSelected(string(cfg.BenchPattern))

	exportDir := widget.NewEntry()
	exportDir.SetText(cfg.ExportDir)
	exportDir.SetPlaceHolder("current directory")
	exportDir.OnChanged = func(text string) { cfg.ExportDir = strings.TrimSpace(text) }

	seed := int(cfg.BenchSeed)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Export Directory", exportDir),
		widget.NewFormItem("PNG Scale (px/unit)", floatEntry(&cfg.PNGScale)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Target Fill", floatEntry(&cfg.DefaultTargetFill)),
		widget.NewFormItem("Default Tolerance", floatEntry(&cfg.DefaultTolerance)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Bench Item Count", intEntry(&cfg.BenchCount)),
		widget.NewFormItem("Bench Pattern", patternSelect),
		widget.NewFormItem("Bench Seed", intEntry(&seed)),
	}

	d := dialog.NewForm("Preferences", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			cfg.BenchSeed = int64(seed)
			if cfg.PNGScale <= 0 || cfg.DefaultTargetFill <= 0 || cfg.DefaultTolerance < 0 {
				dialog.ShowError(fmt.Errorf("PNG scale and target fill must be > 0, tolerance must not be negative"), a.window)
				return
			}
			a.config = cfg
			a.theme.SetVariantName(cfg.Theme)
			a.app.Settings().SetTheme(a.theme)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Preferences have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(450, 450))
	d.Show()
}

// showImportExportDialog displays the backup and restore dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			skipped, err := project.ExportAllData(path, a.config)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			msg := fmt.Sprintf("Settings and recent projects exported to:\n%s", path)
			if len(skipped) > 0 {
				msg += fmt.Sprintf("\n\nSkipped %d unreadable projects:\n%s", len(skipped), strings.Join(skipped, "\n"))
			}
			dialog.ShowInformation("Export Complete", msg, a.window)
		}, a.window)
		d.SetFileName("atlaspack-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your current preferences and restore\nany backed up projects that no longer exist.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					path := reader.URI().Path()
					reader.Close()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					written, err := project.RestoreProjects(backup, false)
					if err != nil {
						dialog.ShowError(fmt.Errorf("failed to restore projects: %w", err), a.window)
						return
					}
					a.config = backup.Config
					a.theme.SetVariantName(a.config.Theme)
					a.app.Settings().SetTheme(a.theme)
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					a.SetupMenus()
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Backup from %s imported, %d projects restored.", backup.CreatedAt, len(written)), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export preferences and recent projects to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
