package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/obravim/floortrace/internal/model"
	"github.com/obravim/floortrace/internal/ui/widgets"
)

// refreshZonePanel rebuilds the zone/room tree in the side panel from the
// current state.
func (a *App) refreshZonePanel() {
	if a.zoneContainer == nil {
		return
	}
	a.zoneContainer.RemoveAll()

	st := a.editor.State
	for _, zone := range st.Zones {
		a.zoneContainer.Add(a.zoneHeader(zone))
		for _, roomID := range zone.RoomIDs {
			if room := st.Room(roomID); room != nil {
				a.zoneContainer.Add(a.roomRow(room))
			}
		}
	}

	if len(st.OrphanRoomIDs) > 0 {
		a.zoneContainer.Add(widget.NewLabelWithStyle("Unzoned", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		for _, roomID := range st.OrphanRoomIDs {
			if room := st.Room(roomID); room != nil {
				a.zoneContainer.Add(a.roomRow(room))
			}
		}
	}

	if len(st.Rooms) == 0 {
		a.zoneContainer.Add(widget.NewLabel("No rooms yet.\nDraw one or run detection."))
	}
	a.zoneContainer.Refresh()
}

func (a *App) zoneHeader(zone *model.Zone) fyne.CanvasObject {
	swatch := canvas.NewRectangle(widgets.ParseColor(zone.Color, 255))
	swatch.SetMinSize(fyne.NewSize(12, 12))

	total := 0.0
	for _, id := range zone.RoomIDs {
		if r := a.editor.State.Room(id); r != nil {
			total += r.Area()
		}
	}
	label := widget.NewLabelWithStyle(
		fmt.Sprintf("%s  (%.0f sq ft)", zone.Name, total),
		fyne.TextAlignLeading, fyne.TextStyle{Bold: true},
	)

	edit := newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Rename zone", func() {
		a.showEditDialog(zone.ID, false, true)
	})
	dissolve := newIconButtonWithTooltip(theme.ContentClearIcon(), "Dissolve zone", func() {
		zoneID := zone.ID
		dialog.ShowConfirm("Dissolve Zone",
			fmt.Sprintf("Dissolve %s? Its rooms become unzoned.", zone.Name),
			func(ok bool) {
				if !ok {
					return
				}
				if err := a.editor.DeleteZone(zoneID); err != nil {
					dialog.ShowError(err, a.window)
					return
				}
				a.refresh()
			}, a.window)
	})

	return container.NewHBox(swatch, label, layout.NewSpacer(), edit, dissolve)
}

func (a *App) roomRow(room *model.Room) fyne.CanvasObject {
	label := widget.NewLabel(fmt.Sprintf("  %s  %.1f x %.1f ft", room.Name, room.Dimension.LengthFt, room.Dimension.BreadthFt))

	move := newIconButtonWithTooltip(theme.MailForwardIcon(), "Move to zone", func() {
		a.showMoveRoomDialog(room.ID)
	})
	edit := newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit room", func() {
		a.showEditDialog(room.ID, true, false)
	})
	del := newIconButtonWithTooltip(theme.DeleteIcon(), "Delete room", func() {
		a.editor.ClearSelection()
		a.editor.SelectRoom(room.ID)
		a.deleteSelected()
	})

	row := container.NewHBox(label, layout.NewSpacer(), move, edit, del)
	if room.Selected {
		bg := canvas.NewRectangle(widgets.ParseColor("#2A7FFF", 40))
		return container.NewStack(bg, row)
	}
	return row
}

// showMoveRoomDialog reparents a room into another zone, or out of its zone
// into the unzoned list.
func (a *App) showMoveRoomDialog(roomID string) {
	st := a.editor.State
	room := st.Room(roomID)
	if room == nil {
		return
	}

	const unzoned = "(unzoned)"
	names := []string{unzoned}
	byName := map[string]string{}
	for _, z := range st.Zones {
		display := fmt.Sprintf("%s (%s)", z.Name, z.ID)
		names = append(names, display)
		byName[display] = z.ID
	}

	sel := widget.NewSelect(names, nil)
	if room.Zone != "" {
		for display, id := range byName {
			if id == room.Zone {
				sel.SetSelected(display)
			}
		}
	} else {
		sel.SetSelected(unzoned)
	}

	form := dialog.NewForm("Move "+room.Name, "Move", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Zone", sel)},
		func(ok bool) {
			if !ok || sel.Selected == "" {
				return
			}
			target := byName[sel.Selected] // empty for unzoned
			if err := a.editor.ReparentRoom(roomID, target, ""); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.refresh()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(320, 160))
	form.Show()
}
