package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/obravim/floortrace/internal/detect"
	"github.com/obravim/floortrace/internal/editor"
	"github.com/obravim/floortrace/internal/export"
	"github.com/obravim/floortrace/internal/project"
	"github.com/obravim/floortrace/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	window   fyne.Window
	config   project.Config
	current  *project.Project
	editor   *editor.Editor
	detector *detect.Client

	planCanvas    *widgets.PlanCanvas
	zoneContainer *fyne.Container
	statusLabel   *widget.Label
	scaleLabel    *widget.Label
	toolButtons   map[widgets.Tool]*widget.Button
}

// NewApp loads the saved configuration and creates an empty project.
func NewApp(window fyne.Window) *App {
	config, err := project.LoadConfig(project.DefaultConfigPath())
	if err != nil {
		log.Printf("config load failed, using defaults: %v", err)
		config = project.DefaultConfig()
	}

	current := project.New("Untitled Plan")
	a := &App{
		window:      window,
		config:      config,
		current:     current,
		editor:      editor.New(current.State),
		detector:    detect.NewClient(config.DetectorURL),
		toolButtons: map[widgets.Tool]*widget.Button{},
	}
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Plan", func() {
			a.replaceProject(project.New("Untitled Plan"))
		}),
		fyne.NewMenuItem("Open Plan...", func() {
			a.openProject()
		}),
		fyne.NewMenuItem("Save Plan...", func() {
			a.saveProject()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Detect Rooms...", func() {
			a.showDetectDialog()
		}),
		fyne.NewMenuItemSeparator(),
		a.exportMenuItem(),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Delete Selected", func() {
			a.deleteSelected()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Multi-Select Mode", func() {
			a.editor.EnterMultiSelect()
			a.setStatus("Multi-select: click rooms to add, Ctrl+G to group")
		}),
		fyne.NewMenuItem("Group Selection into Zone", func() {
			a.groupSelection()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Calibrate Scale", func() {
			a.setTool(widgets.ToolCalibrate)
			a.setStatus("Draw a line over an object of known length")
		}),
		fyne.NewMenuItem("Set Display Scale...", func() {
			a.showResizeDialog()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
	a.setupShortcuts()
}

func (a *App) exportMenuItem() *fyne.MenuItem {
	item := fyne.NewMenuItem("Export", nil)
	item.ChildMenu = fyne.NewMenu("",
		fyne.NewMenuItem("Floor Plan PDF...", func() {
			a.exportFile("pdf", func(path string) error {
				return export.ExportPDF(path, a.editor.State, a.current.Name)
			})
		}),
		fyne.NewMenuItem("Room Schedule (Excel)...", func() {
			a.exportFile("xlsx", func(path string) error {
				return export.ExportXLSX(path, a.editor.State)
			})
		}),
		fyne.NewMenuItem("Room Schedule (CSV)...", func() {
			a.exportFile("csv", func(path string) error {
				return export.ExportCSV(path, a.editor.State)
			})
		}),
		fyne.NewMenuItem("DXF Drawing...", func() {
			a.exportFile("dxf", func(path string) error {
				return export.ExportDXF(path, a.editor.State)
			})
		}),
		fyne.NewMenuItem("Room Labels (QR)...", func() {
			a.exportFile("pdf", func(path string) error {
				return export.ExportLabels(path, a.editor.State)
			})
		}),
	)
	return item
}

func (a *App) setupShortcuts() {
	a.window.Canvas().SetOnTypedKey(func(e *fyne.KeyEvent) {
		switch e.Name {
		case fyne.KeyEscape:
			a.planCanvas.CancelGesture()
			if a.editor.MultiSelect {
				a.editor.MultiSelect = false
			}
			a.editor.ClearSelection()
			a.setTool(widgets.ToolSelect)
			a.refresh()
		case fyne.KeyDelete, fyne.KeyBackspace:
			a.deleteSelected()
		}
	})

	groupShortcut := &desktop.CustomShortcut{KeyName: fyne.KeyG, Modifier: fyne.KeyModifierControl}
	a.window.Canvas().AddShortcut(groupShortcut, func(fyne.Shortcut) {
		a.groupSelection()
	})
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About FloorTrace",
		"FloorTrace — Floor Plan Digitizer\n\n"+
			"Trace rooms, windows, and doors over a scanned plan,\n"+
			"group rooms into zones, and export schedules and drawings.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.statusLabel = widget.NewLabel("Ready")
	a.scaleLabel = widget.NewLabel("")
	a.updateScaleLabel()

	a.planCanvas = widgets.NewPlanCanvas(a.editor)
	a.planCanvas.OnChanged = a.refresh
	a.planCanvas.OnSelect = a.refreshZonePanel
	a.planCanvas.OnEdit = func(itemID string, isRoom bool) {
		a.showEditDialog(itemID, isRoom, false)
	}
	a.planCanvas.OnError = func(err error) {
		a.setStatus(err.Error())
	}
	a.planCanvas.OnCalibrated = a.showCalibrateDialog

	a.zoneContainer = container.NewVBox()
	a.refreshZonePanel()

	zonePanel := container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Zones & Rooms", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
		),
		nil, nil, nil,
		container.NewVScroll(a.zoneContainer),
	)

	split := container.NewHSplit(
		container.NewScroll(a.planCanvas),
		zonePanel,
	)
	split.Offset = 0.75

	statusBar := container.NewHBox(
		a.statusLabel,
		layout.NewSpacer(),
		a.scaleLabel,
	)

	return container.NewBorder(a.buildToolbar(), statusBar, nil, nil, split)
}

func (a *App) buildToolbar() fyne.CanvasObject {
	tools := []struct {
		label string
		icon  fyne.Resource
		tool  widgets.Tool
	}{
		{"Select", theme.ComputerIcon(), widgets.ToolSelect},
		{"Room", theme.ContentAddIcon(), widgets.ToolDrawRoom},
		{"Window", theme.GridIcon(), widgets.ToolDrawWindow},
		{"Door", theme.MenuExpandIcon(), widgets.ToolDrawDoor},
		{"Calibrate", theme.SearchIcon(), widgets.ToolCalibrate},
	}

	row := container.NewHBox()
	for _, t := range tools {
		tool := t.tool
		btn := widget.NewButtonWithIcon(t.label, t.icon, func() {
			a.setTool(tool)
		})
		a.toolButtons[tool] = btn
		row.Add(btn)
	}

	row.Add(widget.NewSeparator())
	row.Add(widget.NewButtonWithIcon("Multi-Select", theme.CheckButtonCheckedIcon(), func() {
		if a.editor.MultiSelect {
			a.groupSelection()
		} else {
			a.editor.EnterMultiSelect()
			a.setStatus("Multi-select: click rooms to add, press again to group")
		}
	}))
	row.Add(layout.NewSpacer())
	row.Add(widget.NewButtonWithIcon("Detect", theme.ViewRefreshIcon(), func() {
		a.showDetectDialog()
	}))

	a.markActiveTool(widgets.ToolSelect)
	return row
}

func (a *App) setTool(tool widgets.Tool) {
	a.planCanvas.CancelGesture()
	a.planCanvas.Tool = tool
	a.markActiveTool(tool)
}

func (a *App) markActiveTool(active widgets.Tool) {
	for tool, btn := range a.toolButtons {
		if tool == active {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

// ─── State plumbing ────────────────────────────────────────

func (a *App) refresh() {
	a.refreshZonePanel()
	a.updateScaleLabel()
	if a.planCanvas != nil {
		a.planCanvas.Refresh()
	}
}

func (a *App) setStatus(msg string) {
	if a.statusLabel != nil {
		a.statusLabel.SetText(msg)
	}
}

func (a *App) updateScaleLabel() {
	if a.scaleLabel == nil {
		return
	}
	s := a.editor.State.Scale
	a.scaleLabel.SetText(fmt.Sprintf("scale %.4f in/px | display %.2fx", s.Factor, 1/s.Resize))
}

func (a *App) replaceProject(p *project.Project) {
	a.current = p
	a.editor.Replace(p.State)
	a.setStatus("Ready")
	a.refresh()
}

// ─── Selection actions ─────────────────────────────────────

func (a *App) deleteSelected() {
	if o := a.editor.SelectedOpening(); o != nil {
		a.editor.State.DeleteOpening(o.ID)
		a.setStatus(fmt.Sprintf("Deleted %s", o.ID))
		a.refresh()
		return
	}

	selected := a.editor.State.SelectedRooms()
	if len(selected) != 1 {
		return
	}
	room := selected[0]
	msg := fmt.Sprintf("Delete %s and its %d opening(s)?", room.Name, len(room.Children))
	dialog.ShowConfirm("Delete Room", msg, func(ok bool) {
		if !ok {
			return
		}
		a.editor.State.DeleteRoom(room.ID)
		a.setStatus(fmt.Sprintf("Deleted %s", room.ID))
		a.refresh()
	}, a.window)
}

func (a *App) groupSelection() {
	zone := a.editor.ExitMultiSelect()
	if zone == nil {
		a.setStatus("Nothing to group")
	} else {
		a.setStatus(fmt.Sprintf("Created %s with %d room(s)", zone.Name, len(zone.RoomIDs)))
	}
	a.refresh()
}

// ─── Detection ─────────────────────────────────────────────

func (a *App) showDetectDialog() {
	imageEntry := widget.NewEntry()
	imageEntry.SetPlaceHolder("plan.png")

	resizeEntry := widget.NewEntry()
	resizeEntry.SetText("1.0")

	form := dialog.NewForm("Detect Rooms", "Run", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Image", imageEntry),
			widget.NewFormItem("Display scale", resizeEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			display, err := parsePositiveFloat(resizeEntry.Text)
			if err != nil {
				dialog.ShowError(fmt.Errorf("display scale must be a positive number"), a.window)
				return
			}
			a.runDetect(imageEntry.Text, 1/display)
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 200))
	form.Show()
}

// runDetect calls the detection service off the event loop and delivers
// the imported state back through fyne.Do.
func (a *App) runDetect(image string, resize float64) {
	a.setStatus("Detecting rooms...")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		resp, err := a.detector.Detect(ctx, image, 0)
		fyne.Do(func() {
			if err != nil {
				a.setStatus("Detection failed")
				if errors.Is(err, detect.ErrUnavailable) {
					dialog.ShowConfirm("Detection Unavailable",
						"The detection service did not respond. Retry?",
						func(retry bool) {
							if retry {
								a.runDetect(image, resize)
							}
						}, a.window)
					return
				}
				dialog.ShowError(err, a.window)
				return
			}

			result := detect.Import(resp, resize)
			p := project.New(a.current.Name)
			p.SourceImage = image
			p.State = result.State
			a.replaceProject(p)

			status := fmt.Sprintf("Detected %d rooms, %d openings", len(result.State.Rooms), len(result.State.Windoors))
			if n := len(result.Unassigned); n > 0 {
				status += fmt.Sprintf("; %d opening(s) had no matching wall", n)
			}
			a.setStatus(status)
			for _, w := range result.Warnings {
				log.Printf("detect import: %s", w)
			}
		})
	}()
}

// ─── Project persistence ───────────────────────────────────

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		a.current.State = a.editor.State
		if err := project.Save(path, a.current); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.rememberRecent(path)
		a.setStatus("Saved " + path)
	}, a.window)
	d.SetFileName(a.current.Name + ".floortrace")
	d.Show()
}

func (a *App) openProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		p, err := project.Load(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.replaceProject(p)
		a.rememberRecent(path)
	}, a.window)
	d.Show()
}

func (a *App) rememberRecent(path string) {
	a.config.AddRecentProject(path)
	if err := project.SaveConfig(project.DefaultConfigPath(), a.config); err != nil {
		log.Printf("config save failed: %v", err)
	}
}

// ─── Export ────────────────────────────────────────────────

func (a *App) exportFile(ext string, write func(path string) error) {
	if len(a.editor.State.Rooms) == 0 {
		dialog.ShowInformation("Nothing to export", "Trace or detect at least one room first.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.setStatus("Exported " + path)
	}, a.window)
	d.SetFileName(a.current.Name + "." + ext)
	d.Show()
}
