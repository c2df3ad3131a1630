package ui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/export"
	"github.com/piwi3910/AtlasPack/internal/importer"
	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
	"github.com/piwi3910/AtlasPack/internal/ui/widgets"
)

// maxRecentProjects bounds the File > Open Recent menu.
const maxRecentProjects = 10

// App holds all application state and UI references.
type App struct {
	app     fyne.App
	window  fyne.Window
	project model.Project
	config  model.AppConfig
	theme   *AtlasPackTheme
	history *History

	showFreeSpaces bool

	// UI references for dynamic updates
	itemList        *widget.List
	summaryLabel    *widget.Label
	resultContainer *fyne.Container
}

// NewApp creates the viewer state. A missing or unreadable config falls back
// to defaults.
func NewApp(application fyne.App, window fyne.Window) *App {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		cfg = model.DefaultAppConfig()
	}

	a := &App{
		app:     application,
		window:  window,
		project: model.NewProject(),
		config:  cfg,
		theme:   NewAtlasPackTheme(cfg.Theme),
		history: NewHistory(),
	}
	a.config.ApplyToSettings(&a.project.Settings)
	application.Settings().SetTheme(a.theme)
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	recent := fyne.NewMenuItem("Open Recent", nil)
	var recentItems []*fyne.MenuItem
	for _, path := range a.config.RecentProjects {
		p := path
		recentItems = append(recentItems, fyne.NewMenuItem(p, func() { a.openProject(p) }))
	}
	if len(recentItems) == 0 {
		none := fyne.NewMenuItem("No recent projects", nil)
		none.Disabled = true
		recentItems = append(recentItems, none)
	}
	recent.ChildMenu = fyne.NewMenu("", recentItems...)

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.setProject(model.NewProject())
			a.config.ApplyToSettings(&a.project.Settings)
		}),
		fyne.NewMenuItem("Open Project...", a.showOpenDialog),
		recent,
		fyne.NewMenuItem("Save Project...", a.saveProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Items...", a.importItems),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF...", func() {
			a.exportFile("PDF Export", ".pdf", func(path string, p model.Project) error {
				return export.ExportPDF(path, p.Items, *p.Result, export.PDFOptions{Title: p.Name, ShowFreeSpaces: a.showFreeSpaces})
			})
		}),
		fyne.NewMenuItem("Export PNG...", func() {
			a.exportFile("PNG Export", ".png", func(path string, p model.Project) error {
				return export.ExportPNG(path, p.Items, *p.Result, export.PNGOptions{Scale: a.config.PNGScale, ShowFreeSpaces: a.showFreeSpaces, ShowLabels: true})
			})
		}),
		fyne.NewMenuItem("Export Excel...", func() {
			a.exportFile("Excel Export", ".xlsx", func(path string, p model.Project) error {
				return export.ExportXLSX(path, p.Items, *p.Result)
			})
		}),
		fyne.NewMenuItem("Export DXF...", func() {
			a.exportFile("DXF Export", ".dxf", func(path string, p model.Project) error {
				return export.ExportDXF(path, p.Items, *p.Result)
			})
		}),
		fyne.NewMenuItem("Export Labels...", func() {
			a.exportFile("Label Export", "-labels.pdf", func(path string, p model.Project) error {
				return export.ExportLabels(path, p.Items, *p.Result)
			})
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	undo := fyne.NewMenuItem("Undo", a.undo)
	undo.Disabled = !a.history.CanUndo()
	redo := fyne.NewMenuItem("Redo", a.redo)
	redo.Disabled = !a.history.CanRedo()
	editMenu := fyne.NewMenu("Edit",
		undo,
		redo,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Add Item...", func() { a.showItemDialog(-1) }),
		fyne.NewMenuItem("Clear All Items", func() {
			a.recordChange("Clear Items")
			a.project.Items = nil
			a.itemsChanged()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Pack", a.runPack),
		fyne.NewMenuItem("Pack Settings...", a.showPackSettingsDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences...", a.showSettingsDialog),
		fyne.NewMenuItem("Import / Export Data...", a.showImportExportDialog),
	)

	freeSpaces := fyne.NewMenuItem("Show Free Spaces", func() {
		a.toggleFreeSpaces()
	})
	freeSpaces.Checked = a.showFreeSpaces
	viewMenu := fyne.NewMenu("View", freeSpaces)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, viewMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About AtlasPack",
		"AtlasPack, a shelf packer for sprite atlases and label sheets\n\n"+
			"Places every item into a near-square box and shows\n"+
			"how well it is filled.",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.summaryLabel = widget.NewLabel("")
	a.resultContainer = container.NewStack()

	toolbar := container.NewHBox(
		newIconButtonWithTooltip(theme.FolderOpenIcon(), "Import items", a.importItems),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save project", a.saveProject),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo", a.undo),
		newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo", a.redo),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.MediaPlayIcon(), "Pack items", a.runPack),
		newIconButtonWithTooltip(theme.VisibilityIcon(), "Show or hide free spaces", a.toggleFreeSpaces),
		layout.NewSpacer(),
		a.summaryLabel,
	)

	split := container.NewHSplit(a.buildItemsPanel(), a.resultContainer)
	split.Offset = 0.3

	a.refreshItems()
	a.refreshResults()
	return container.NewBorder(toolbar, nil, nil, nil, split)
}

// ─── Items Panel ───────────────────────────────────────────

func (a *App) buildItemsPanel() fyne.CanvasObject {
	a.itemList = widget.NewList(
		func() int { return len(a.project.Items) },
		func() fyne.CanvasObject {
			return container.NewGridWithColumns(5,
				widget.NewLabel("label"),
				widget.NewLabel("0"),
				widget.NewLabel("0"),
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), nil),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
			)
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id >= len(a.project.Items) {
				return
			}
			it := a.project.Items[id]
			row := o.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(it.DisplayName())
			row.Objects[1].(*widget.Label).SetText(strconv.FormatFloat(it.W, 'g', -1, 64))
			row.Objects[2].(*widget.Label).SetText(strconv.FormatFloat(it.H, 'g', -1, 64))
			row.Objects[3].(*widget.Button).OnTapped = func() { a.showItemDialog(id) }
			row.Objects[4].(*widget.Button).OnTapped = func() { a.removeItem(id) }
		},
	)

	header := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Item", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Width", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Height", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		layout.NewSpacer(),
	)

	addBtn := widget.NewButtonWithIcon("Add Item", theme.ContentAddIcon(), func() {
		a.showItemDialog(-1)
	})

	return container.NewBorder(
		container.NewVBox(
			container.NewHBox(
				widget.NewLabelWithStyle("Items", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
				layout.NewSpacer(),
				addBtn,
			),
			header,
			widget.NewSeparator(),
		),
		nil, nil, nil,
		a.itemList,
	)
}

func (a *App) refreshItems() {
	if a.itemList != nil {
		a.itemList.Refresh()
	}
	a.refreshSummary()
}

func (a *App) refreshSummary() {
	if a.summaryLabel == nil {
		return
	}
	text := fmt.Sprintf("%s: %d items, area %g", a.project.Name, len(a.project.Items), a.project.TotalItemArea())
	if r := a.project.Result; r != nil {
		text += fmt.Sprintf(" | %g × %g, %.1f%% fill", r.Packing.W, r.Packing.H, r.Efficiency())
	}
	a.summaryLabel.SetText(text)
}

// showItemDialog edits the item at idx, or adds a new one when idx is -1.
func (a *App) showItemDialog(idx int) {
	var current model.Item
	title, confirm := "Add Item", "Add"
	if idx >= 0 {
		current = a.project.Items[idx]
		title, confirm = "Edit Item", "Save"
	}

	idEntry := widget.NewEntry()
	idEntry.SetPlaceHolder("generated if empty")
	if id, ok := current.ID.Value(); ok {
		idEntry.SetText(id)
	}
	labelEntry := widget.NewEntry()
	labelEntry.SetText(current.Label)
	widthEntry := widget.NewEntry()
	widthEntry.SetText(strconv.FormatFloat(current.W, 'g', -1, 64))
	heightEntry := widget.NewEntry()
	heightEntry.SetText(strconv.FormatFloat(current.H, 'g', -1, 64))

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("ID", idEntry),
			widget.NewFormItem("Label", labelEntry),
			widget.NewFormItem("Width", widthEntry),
			widget.NewFormItem("Height", heightEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			w, errW := strconv.ParseFloat(widthEntry.Text, 64)
			h, errH := strconv.ParseFloat(heightEntry.Text, 64)
			if errW != nil || errH != nil {
				dialog.ShowError(fmt.Errorf("width and height must be numbers"), a.window)
				return
			}

			var it model.Item
			if id := strings.TrimSpace(idEntry.Text); id != "" {
				it = model.NewItemID(id, w, h)
				it.Label = labelEntry.Text
			} else {
				it = model.NewItem(labelEntry.Text, w, h)
			}
			if err := engine.ValidateItems([]model.Item{it}); err != nil {
				dialog.ShowError(err, a.window)
				return
			}

			a.recordChange(title)
			if idx >= 0 {
				a.project.Items[idx] = it
			} else {
				a.project.Items = append(a.project.Items, it)
			}
			a.itemsChanged()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 300))
	form.Show()
}

func (a *App) removeItem(idx int) {
	if idx < 0 || idx >= len(a.project.Items) {
		return
	}
	a.recordChange("Remove Item")
	a.project.Items = append(a.project.Items[:idx], a.project.Items[idx+1:]...)
	a.itemsChanged()
}

// ─── History ───────────────────────────────────────────────

// recordChange saves the current items and settings before a modification.
func (a *App) recordChange(label string) {
	a.history.Push(MakeSnapshot(a.project.Items, a.project.Settings, label))
	a.SetupMenus()
}

func (a *App) restore(s Snapshot) {
	a.project.Items = s.Items
	a.project.Settings = s.Settings
	a.itemsChanged()
	a.SetupMenus()
}

func (a *App) undo() {
	if s, ok := a.history.Undo(MakeSnapshot(a.project.Items, a.project.Settings, "Redo")); ok {
		a.restore(s)
	}
}

func (a *App) redo() {
	if s, ok := a.history.Redo(MakeSnapshot(a.project.Items, a.project.Settings, "Undo")); ok {
		a.restore(s)
	}
}

// itemsChanged drops the packing, which no longer matches the items.
func (a *App) itemsChanged() {
	a.project.Result = nil
	a.refreshItems()
	a.refreshResults()
}

// setProject replaces the whole project and forgets the undo history.
func (a *App) setProject(p model.Project) {
	a.project = p
	a.history.Clear()
	a.SetupMenus()
	a.refreshItems()
	a.refreshResults()
}

// ─── Packing ───────────────────────────────────────────────

func (a *App) runPack() {
	if len(a.project.Items) == 0 {
		dialog.ShowInformation("Nothing to pack", "Add or import at least one item first.", a.window)
		return
	}
	if err := project.Pack(&a.project); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.refreshSummary()
	a.refreshResults()
}

func (a *App) refreshResults() {
	if a.resultContainer == nil {
		return
	}
	a.resultContainer.Objects = []fyne.CanvasObject{widgets.RenderPacking(a.project, a.showFreeSpaces)}
	a.resultContainer.Refresh()
}

func (a *App) toggleFreeSpaces() {
	a.showFreeSpaces = !a.showFreeSpaces
	a.SetupMenus()
	a.refreshResults()
}

// ─── Files ─────────────────────────────────────────────────

// setDialogLocation starts file dialogs in the configured export directory.
func (a *App) setDialogLocation(d *dialog.FileDialog) {
	if a.config.ExportDir == "" {
		return
	}
	if dir, err := storage.ListerForURI(storage.NewFileURI(a.config.ExportDir)); err == nil {
		d.SetLocation(dir)
	}
}

func (a *App) importItems() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		read, ok := importer.ForPath(path)
		if !ok {
			dialog.ShowError(fmt.Errorf("unsupported file type %q", filepath.Ext(path)), a.window)
			return
		}
		result := read(path)
		if len(result.Errors) > 0 {
			dialog.ShowError(fmt.Errorf("import failed:\n%s", strings.Join(result.Errors, "\n")), a.window)
			return
		}
		if len(result.Items) == 0 {
			dialog.ShowInformation("Import", "No items found.", a.window)
			return
		}

		a.recordChange("Import " + filepath.Base(path))
		if len(a.project.Items) == 0 {
			a.project.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		a.project.Items = append(a.project.Items, result.Items...)
		a.itemsChanged()

		msg := fmt.Sprintf("Imported %d items.", len(result.Items))
		if len(result.Warnings) > 0 {
			msg += "\n\n" + strings.Join(result.Warnings, "\n")
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(importer.Extensions()))
	a.setDialogLocation(d)
	d.Show()
}

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := project.Save(path, a.project); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.rememberProject(path)
	}, a.window)
	d.SetFileName(a.project.Name + project.FileExt)
	a.setDialogLocation(d)
	d.Show()
}

func (a *App) showOpenDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.openProject(path)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{project.FileExt, ".json"}))
	a.setDialogLocation(d)
	d.Show()
}

func (a *App) openProject(path string) {
	p, err := project.Load(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.setProject(p)
	a.rememberProject(path)
}

// rememberProject moves path to the top of the recent list and saves the config.
func (a *App) rememberProject(path string) {
	a.config.AddRecentProject(path, maxRecentProjects)
	if err := a.saveConfig(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to update recent projects: %w", err), a.window)
	}
	a.SetupMenus()
}

// exportFile asks for a destination and runs write on the packed project.
func (a *App) exportFile(title, suffix string, write func(path string, p model.Project) error) {
	if a.project.Result == nil {
		dialog.ShowInformation("No packing", "Pack the items before exporting.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path, a.project); err != nil {
			dialog.ShowError(fmt.Errorf("%s failed: %w", title, err), a.window)
			return
		}
		dialog.ShowInformation(title, fmt.Sprintf("Saved to:\n%s", path), a.window)
	}, a.window)
	d.SetFileName(a.project.Name + suffix)
	a.setDialogLocation(d)
	d.Show()
}
