package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/obravim/floortrace/internal/editor"
	"github.com/obravim/floortrace/internal/model"
	"github.com/obravim/floortrace/internal/ui/widgets"
)

func parsePositiveFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("not a positive number: %q", s)
	}
	return v, nil
}

func parseNonNegativeFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("not a non-negative number: %q", s)
	}
	return v, nil
}

// showEditDialog opens the shared edit form for a room, opening, or zone.
// Dimensions are entered in feet and written back through the scale factor.
func (a *App) showEditDialog(itemID string, isRoom, isZone bool) {
	nameEntry := widget.NewEntry()
	lengthEntry := widget.NewEntry()
	breadthEntry := widget.NewEntry()
	heightEntry := widget.NewEntry()

	var title string
	items := []*widget.FormItem{widget.NewFormItem("Name", nameEntry)}

	switch {
	case isZone:
		zone := a.editor.State.Zone(itemID)
		if zone == nil {
			return
		}
		title = "Edit Zone " + zone.ID
		nameEntry.SetText(zone.Name)

	case isRoom:
		room := a.editor.State.Room(itemID)
		if room == nil {
			return
		}
		title = "Edit Room " + room.ID
		nameEntry.SetText(room.Name)
		lengthEntry.SetText(fmt.Sprintf("%.2f", room.Dimension.LengthFt))
		breadthEntry.SetText(fmt.Sprintf("%.2f", room.Dimension.BreadthFt))
		height := room.Dimension.CeilingFt
		if height == 0 {
			height = a.config.DefaultCeilingFt
		}
		heightEntry.SetText(fmt.Sprintf("%.2f", height))
		items = append(items,
			widget.NewFormItem("Length (ft)", lengthEntry),
			widget.NewFormItem("Breadth (ft)", breadthEntry),
			widget.NewFormItem("Ceiling (ft)", heightEntry),
		)

	default:
		o := a.editor.State.Opening(itemID)
		if o == nil {
			return
		}
		if o.Kind == model.KindDoor {
			title = "Edit Door " + o.ID
		} else {
			title = "Edit Window " + o.ID
		}
		nameEntry.SetText(o.Name)
		lengthEntry.SetText(fmt.Sprintf("%.2f", o.Dimension.LengthFt))
		heightEntry.SetText(fmt.Sprintf("%.2f", o.Dimension.HeightFt))
		items = append(items,
			widget.NewFormItem("Length (ft)", lengthEntry),
			widget.NewFormItem("Height (ft)", heightEntry),
		)
	}

	form := dialog.NewForm(title, "Apply", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		f := editor.EditForm{
			ItemID: itemID,
			Name:   nameEntry.Text,
			IsRoom: isRoom,
			IsZone: isZone,
		}
		if !isZone {
			f.Length, _ = strconv.ParseFloat(lengthEntry.Text, 64)
			f.Height, _ = strconv.ParseFloat(heightEntry.Text, 64)
		}
		if isRoom {
			f.Breadth, _ = strconv.ParseFloat(breadthEntry.Text, 64)
		}

		applied, err := a.editor.Apply(f)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if !applied {
			a.setStatus("Edit ignored: fill in all fields with positive numbers")
			return
		}
		a.refresh()
	}, a.window)
	form.Resize(fyne.NewSize(380, 260))
	form.Show()
}

// showCalibrateDialog asks for the real-world length of the reference line
// the user just drew and recalibrates the scale factor from it.
func (a *App) showCalibrateDialog(p1, p2 model.Point2D, pixelDist float64) {
	feetEntry := widget.NewEntry()
	feetEntry.SetPlaceHolder("10")
	inchEntry := widget.NewEntry()
	inchEntry.SetText("0")

	info := widget.NewLabel(fmt.Sprintf("Reference line: %.1f px", pixelDist))

	form := dialog.NewForm("Calibrate Scale", "Calibrate", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("", info),
			widget.NewFormItem("Feet", feetEntry),
			widget.NewFormItem("Inches", inchEntry),
		},
		func(ok bool) {
			a.setTool(widgets.ToolSelect)
			if !ok {
				a.refresh()
				return
			}
			feet, err := parseNonNegativeFloat(feetEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			inch, err := parseNonNegativeFloat(inchEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if err := a.editor.Calibrate(p1, p2, feet, inch); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.setStatus(fmt.Sprintf("Calibrated: %.4f in/px", a.editor.State.Scale.Factor))
			a.refresh()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(340, 220))
	form.Show()
}

// showResizeDialog changes the display scale, which rescales all geometry
// while keeping real-world dimensions fixed.
func (a *App) showResizeDialog() {
	entry := widget.NewEntry()
	entry.SetText(fmt.Sprintf("%.2f", 1/a.editor.State.Scale.Resize))

	form := dialog.NewForm("Set Display Scale", "Apply", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Display scale", entry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			display, err := parsePositiveFloat(entry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.editor.State.SetResize(1 / display)
			a.refresh()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(320, 160))
	form.Show()
}
