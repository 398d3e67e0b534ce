// Package widgets contains the custom Fyne widgets of the plan editor.
package widgets

import (
	"fmt"
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/obravim/floortrace/internal/editor"
	"github.com/obravim/floortrace/internal/model"
)

// Tool selects what pointer gestures on the canvas mean.
type Tool int

const (
	ToolSelect Tool = iota
	ToolDrawRoom
	ToolDrawWindow
	ToolDrawDoor
	ToolCalibrate
)

// stroke colors for entities drawn by hand.
const (
	roomStroke   = "#E13131"
	windowStroke = "#00BCD4"
	doorStroke   = "#873EFD"
)

// PlanCanvas renders the editor state and translates pointer gestures
// into editor operations. All coordinates are drawing-space pixels, so
// widget positions map 1:1 onto the state's geometry.
type PlanCanvas struct {
	widget.BaseWidget

	Editor *editor.Editor
	Tool   Tool

	// OnChanged fires after any gesture that altered the state.
	OnChanged func()
	// OnSelect fires when the active selection changes.
	OnSelect func()
	// OnEdit fires on a double tap over a room or opening.
	OnEdit func(itemID string, isRoom bool)
	// OnError surfaces rejected gestures (overlap, too small, not near a
	// wall) to the status bar.
	OnError func(error)
	// OnCalibrated fires when a calibration line has been finished and
	// the reference length should be asked for.
	OnCalibrated func(p1, p2 model.Point2D, pixelDist float64)

	background *canvas.Image
	minSize    fyne.Size

	// active gesture state, nil when idle
	roomDrag    *editor.RoomDrag
	openingDrag *editor.OpeningDrag
	roomDraft   *editor.RoomDraft
	openDraft   *editor.OpeningDraft
	lineDraft   *editor.LineDraft
	dragStart   model.Point2D
	dragTotal   model.Point2D
}

// NewPlanCanvas creates the canvas over the given editor.
func NewPlanCanvas(ed *editor.Editor) *PlanCanvas {
	pc := &PlanCanvas{
		Editor:  ed,
		minSize: fyne.NewSize(800, 600),
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetBackground sets the plan image drawn under the traced geometry.
func (pc *PlanCanvas) SetBackground(img *canvas.Image) {
	pc.background = img
	if img != nil && img.Size().Width > 0 {
		pc.minSize = img.Size()
	}
	pc.Refresh()
}

// CancelGesture aborts whatever draft or drag is in flight (Escape).
func (pc *PlanCanvas) CancelGesture() {
	if pc.roomDrag != nil {
		pc.roomDrag.Cancel()
		pc.roomDrag = nil
	}
	if pc.openingDrag != nil {
		pc.openingDrag.Cancel()
		pc.openingDrag = nil
	}
	pc.roomDraft = nil
	pc.openDraft = nil
	pc.lineDraft = nil
	pc.Refresh()
}

func (pc *PlanCanvas) pointAt(pos fyne.Position) model.Point2D {
	return model.Point2D{X: float64(pos.X), Y: float64(pos.Y)}
}

func (pc *PlanCanvas) changed() {
	if pc.OnChanged != nil {
		pc.OnChanged()
	}
	pc.Refresh()
}

func (pc *PlanCanvas) fail(err error) {
	if err == nil {
		return
	}
	if pc.OnError != nil {
		pc.OnError(err)
	}
}

// Tapped selects the topmost entity under the cursor, or starts a
// calibration line.
func (pc *PlanCanvas) Tapped(e *fyne.PointEvent) {
	p := pc.pointAt(e.Position)

	switch pc.Tool {
	case ToolCalibrate:
		if pc.lineDraft == nil {
			pc.lineDraft = editor.StartLineDraft(p)
		} else if !pc.lineDraft.Done() {
			pc.lineDraft.Finish(p)
			p1, p2 := pc.lineDraft.Points()
			dist := pc.lineDraft.PixelDist()
			pc.lineDraft = nil
			if pc.OnCalibrated != nil {
				pc.OnCalibrated(p1, p2, dist)
			}
		}
		pc.Refresh()
		return

	case ToolSelect:
		if o := pc.Editor.OpeningAt(p); o != nil {
			pc.Editor.SelectOpening(o.ID)
		} else if r := pc.Editor.RoomAt(p); r != nil {
			pc.Editor.SelectRoom(r.ID)
		} else if !pc.Editor.MultiSelect {
			pc.Editor.ClearSelection()
		}
		if pc.OnSelect != nil {
			pc.OnSelect()
		}
		pc.Refresh()
	}
}

// DoubleTapped opens the edit dialog for the entity under the cursor.
func (pc *PlanCanvas) DoubleTapped(e *fyne.PointEvent) {
	if pc.Tool != ToolSelect || pc.OnEdit == nil {
		return
	}
	p := pc.pointAt(e.Position)
	if o := pc.Editor.OpeningAt(p); o != nil {
		pc.OnEdit(o.ID, false)
		return
	}
	if r := pc.Editor.RoomAt(p); r != nil {
		pc.OnEdit(r.ID, true)
	}
}

// Dragged drives move gestures and draw drafts. The first event of a
// gesture decides what is being dragged; later events only move it.
func (pc *PlanCanvas) Dragged(e *fyne.DragEvent) {
	p := pc.pointAt(e.Position)

	if pc.roomDrag == nil && pc.openingDrag == nil &&
		pc.roomDraft == nil && pc.openDraft == nil && pc.lineDraft == nil {
		pc.beginDrag(model.Point2D{
			X: p.X - float64(e.Dragged.DX),
			Y: p.Y - float64(e.Dragged.DY),
		})
	}

	pc.dragTotal.X += float64(e.Dragged.DX)
	pc.dragTotal.Y += float64(e.Dragged.DY)

	switch {
	case pc.roomDrag != nil:
		pc.roomDrag.Update(pc.dragTotal.X, pc.dragTotal.Y)
	case pc.openingDrag != nil:
		if err := pc.openingDrag.Update(pc.dragTotal.X, pc.dragTotal.Y); err != nil {
			pc.fail(err)
		}
	case pc.roomDraft != nil:
		pc.roomDraft.Move(p)
	case pc.openDraft != nil:
		pc.openDraft.Move(p)
	case pc.lineDraft != nil:
		pc.lineDraft.Move(p)
	}
	pc.Refresh()
}

// beginDrag decides what the gesture starting at p acts on.
func (pc *PlanCanvas) beginDrag(p model.Point2D) {
	pc.dragStart = p
	pc.dragTotal = model.Point2D{}

	switch pc.Tool {
	case ToolSelect:
		if o := pc.Editor.OpeningAt(p); o != nil {
			drag, err := pc.Editor.StartOpeningDrag(o.ID)
			if err == nil {
				pc.openingDrag = drag
			}
			return
		}
		if r := pc.Editor.RoomAt(p); r != nil {
			drag, err := pc.Editor.StartRoomDrag(r.ID)
			if err == nil {
				pc.roomDrag = drag
			}
		}
	case ToolDrawRoom:
		pc.roomDraft = editor.StartRoomDraft(p)
	case ToolDrawWindow:
		draft, err := pc.Editor.StartOpeningDraft(model.KindWindow, p)
		if err != nil {
			pc.fail(err)
			return
		}
		pc.openDraft = draft
	case ToolDrawDoor:
		draft, err := pc.Editor.StartOpeningDraft(model.KindDoor, p)
		if err != nil {
			pc.fail(err)
			return
		}
		pc.openDraft = draft
	case ToolCalibrate:
		pc.lineDraft = editor.StartLineDraft(p)
	}
}

// DragEnd commits the in-flight gesture.
func (pc *PlanCanvas) DragEnd() {
	switch {
	case pc.roomDrag != nil:
		pc.roomDrag.End()
		pc.roomDrag = nil
		pc.changed()
	case pc.openingDrag != nil:
		pc.openingDrag.End()
		pc.openingDrag = nil
		pc.changed()
	case pc.roomDraft != nil:
		_, err := pc.roomDraft.Commit(pc.Editor, roomStroke)
		pc.roomDraft = nil
		pc.fail(err)
		pc.changed()
	case pc.openDraft != nil:
		stroke := windowStroke
		if pc.openDraft.Kind() == model.KindDoor {
			stroke = doorStroke
		}
		_, err := pc.openDraft.Commit(pc.Editor, stroke)
		pc.openDraft = nil
		pc.fail(err)
		pc.changed()
	case pc.lineDraft != nil:
		d := pc.lineDraft
		pc.lineDraft = nil
		p1, p2 := d.Points()
		d.Finish(p2)
		pc.Refresh()
		if pc.OnCalibrated != nil {
			pc.OnCalibrated(p1, p2, p1.Dist(p2))
		}
	}
}

func (pc *PlanCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newPlanCanvasRenderer(pc)
}

type planCanvasRenderer struct {
	pc      *PlanCanvas
	objects []fyne.CanvasObject
}

func newPlanCanvasRenderer(pc *PlanCanvas) *planCanvasRenderer {
	r := &planCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

// ParseColor turns a #RRGGBB or named stroke color into an NRGBA with the
// given alpha. Unknown strings fall back to grey.
func ParseColor(s string, alpha uint8) color.NRGBA {
	return parseHex(s, alpha)
}

// parseHex turns a #RRGGBB or named stroke color into an NRGBA.
func parseHex(s string, alpha uint8) color.NRGBA {
	named := map[string]color.NRGBA{
		"red":     {R: 225, G: 49, B: 49},
		"green":   {R: 86, G: 188, B: 73},
		"blue":    {R: 42, G: 127, B: 255},
		"orange":  {R: 255, G: 159, B: 42},
		"purple":  {R: 135, G: 62, B: 253},
		"cyan":    {R: 0, G: 188, B: 212},
		"magenta": {R: 233, G: 30, B: 140},
	}
	if c, ok := named[s]; ok {
		c.A = alpha
		return c
	}
	if len(s) == 7 && s[0] == '#' {
		if v, err := strconv.ParseUint(s[1:], 16, 32); err == nil {
			return color.NRGBA{
				R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: alpha,
			}
		}
	}
	return color.NRGBA{R: 120, G: 120, B: 120, A: alpha}
}

func (r *planCanvasRenderer) addRect(rect model.Rect, fill color.Color, strokeCol color.NRGBA, strokeWidth float32) {
	obj := canvas.NewRectangle(fill)
	obj.StrokeColor = strokeCol
	obj.StrokeWidth = strokeWidth
	obj.Resize(fyne.NewSize(float32(rect.Length), float32(rect.Breadth)))
	obj.Move(fyne.NewPos(float32(rect.X), float32(rect.Y)))
	r.objects = append(r.objects, obj)
}

func (r *planCanvasRenderer) rebuild() {
	r.objects = nil
	pc := r.pc
	st := pc.Editor.State

	if pc.background != nil {
		r.objects = append(r.objects, pc.background)
	}

	drawRoom := func(room *model.Room) {
		strokeCol := parseHex(room.DisplayColor(), 255)
		fill := parseHex(room.DisplayColor(), 40)
		width := float32(2)
		if room.Selected {
			width = 4
			fill = parseHex(room.DisplayColor(), 90)
		}
		r.addRect(room.Pos, fill, strokeCol, width)

		label := canvas.NewText(
			fmt.Sprintf("%s  %.1f x %.1f ft", room.Name, room.Dimension.LengthFt, room.Dimension.BreadthFt),
			color.NRGBA{R: 230, G: 230, B: 230, A: 255},
		)
		label.TextSize = 11
		label.Move(fyne.NewPos(float32(room.Pos.X)+4, float32(room.Pos.Y)+3))
		r.objects = append(r.objects, label)
	}

	// Zone order first, orphans after, so hit-testing and paint order agree.
	for _, z := range st.Zones {
		for _, id := range z.RoomIDs {
			if room := st.Room(id); room != nil {
				drawRoom(room)
			}
		}
	}
	for _, id := range st.OrphanRoomIDs {
		if room := st.Room(id); room != nil {
			drawRoom(room)
		}
	}

	for _, o := range st.Windoors {
		strokeCol := parseHex(o.Stroke, 255)
		fill := parseHex(o.Stroke, 70)
		width := float32(1.5)
		if o.Selected {
			width = 3.5
			fill = parseHex(o.Stroke, 130)
		}
		r.addRect(o.Pos, fill, strokeCol, width)
	}

	// In-flight drafts.
	if pc.roomDraft != nil {
		r.addRect(pc.roomDraft.Rect(), color.Transparent,
			color.NRGBA{R: 225, G: 49, B: 49, A: 255}, 2)
	}
	if pc.openDraft != nil {
		r.addRect(pc.openDraft.Rect(), color.NRGBA{R: 0, G: 188, B: 212, A: 60},
			color.NRGBA{R: 0, G: 188, B: 212, A: 255}, 2)
	}
	if pc.lineDraft != nil {
		p1, p2 := pc.lineDraft.Points()
		line := canvas.NewLine(color.NRGBA{R: 255, G: 159, B: 42, A: 255})
		line.StrokeWidth = 2
		line.Position1 = fyne.NewPos(float32(p1.X), float32(p1.Y))
		line.Position2 = fyne.NewPos(float32(p2.X), float32(p2.Y))
		r.objects = append(r.objects, line)
	}
}

func (r *planCanvasRenderer) Layout(size fyne.Size) {
	if r.pc.background != nil {
		r.pc.background.Resize(size)
	}
}

func (r *planCanvasRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.pc)
}

func (r *planCanvasRenderer) Destroy()                     {}
func (r *planCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *planCanvasRenderer) MinSize() fyne.Size           { return r.pc.minSize }
