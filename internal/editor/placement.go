package editor

import (
	"math"

	"github.com/obravim/floortrace/internal/model"
)

// NearWall returns which wall axis of the room the point is near, using the
// per-kind proximity tolerance: the point must lie within the room's span
// along the wall and within tolerance of the wall's offset coordinate.
func NearWall(room *model.Room, p model.Point2D, kind model.OpeningKind) model.WallAxis {
	prox := kind.Proximity()
	r := room.Pos

	withinX := p.X >= r.X && p.X <= r.Right()
	withinY := p.Y >= r.Y && p.Y <= r.Bottom()

	if withinX && (math.Abs(p.Y-r.Y) <= prox || math.Abs(p.Y-r.Bottom()) <= prox) {
		return model.WallHorizontal
	}
	if withinY && (math.Abs(p.X-r.X) <= prox || math.Abs(p.X-r.Right()) <= prox) {
		return model.WallVertical
	}
	return model.WallNone
}

// nearestWallOffset returns the offset coordinate of the wall closest to
// the point on the given axis: the Y of the top/bottom edge, or the X of
// the left/right edge.
func nearestWallOffset(r model.Rect, p model.Point2D, axis model.WallAxis) float64 {
	if axis == model.WallHorizontal {
		if math.Abs(p.Y-r.Y) <= math.Abs(p.Y-r.Bottom()) {
			return r.Y
		}
		return r.Bottom()
	}
	if math.Abs(p.X-r.X) <= math.Abs(p.X-r.Right()) {
		return r.X
	}
	return r.Right()
}

// RoomDraft is an in-progress room rectangle gesture. The draft never
// touches the entity model until Commit.
type RoomDraft struct {
	start model.Point2D
	end   model.Point2D
}

// StartRoomDraft begins drawing a room at the given point.
func StartRoomDraft(p model.Point2D) *RoomDraft {
	return &RoomDraft{start: p, end: p}
}

// Move updates the floating corner.
func (d *RoomDraft) Move(p model.Point2D) { d.end = p }

// Rect returns the current draft rectangle for rendering.
func (d *RoomDraft) Rect() model.Rect { return model.RectFromCorners(d.start, d.end) }

// Commit validates the draft and appends the new room to the orphan list.
// Degenerate rectangles (corners closer than the draw threshold) are
// rejected with no state change.
func (d *RoomDraft) Commit(ed *Editor, stroke string) (*model.Room, error) {
	if d.start.Dist(d.end) < model.MinRoomDraw {
		return nil, ErrDegenerateRoom
	}
	room := &model.Room{
		ID:     ed.State.NextRoomID(),
		Pos:    d.Rect(),
		Stroke: stroke,
	}
	room.Name = room.ID
	ed.State.AddRoom(room)
	return room, nil
}

// OpeningDraft is an in-progress opening gesture, constrained live to the
// wall it started on: a window keeps its fixed thickness with the long axis
// following the pointer clamped to the room's span; a door stays square and
// capped at the maximum door size.
type OpeningDraft struct {
	ed     *Editor
	kind   model.OpeningKind
	roomID string
	axis   model.WallAxis
	wall   float64 // offset coordinate of the wall being drawn on
	start  model.Point2D
	cur    model.Point2D
}

// StartOpeningDraft begins drawing an opening. It requires single-select
// mode with exactly one room selected, and the starting point must be
// within the wall-proximity tolerance of that room's boundary.
func (ed *Editor) StartOpeningDraft(kind model.OpeningKind, p model.Point2D) (*OpeningDraft, error) {
	if ed.MultiSelect {
		return nil, ErrMultiSelectActive
	}
	selected := ed.State.SelectedRooms()
	if len(selected) != 1 {
		return nil, ErrNoRoomSelected
	}
	room := selected[0]

	axis := NearWall(room, p, kind)
	if axis == model.WallNone {
		return nil, ErrNotNearWall
	}
	return &OpeningDraft{
		ed:     ed,
		kind:   kind,
		roomID: room.ID,
		axis:   axis,
		wall:   nearestWallOffset(room.Pos, p, axis),
		start:  p,
		cur:    p,
	}, nil
}

// Move updates the floating end of the draft.
func (d *OpeningDraft) Move(p model.Point2D) { d.cur = p }

// Horizontal reports whether the draft sits on a horizontal wall.
func (d *OpeningDraft) Horizontal() bool { return d.axis == model.WallHorizontal }

// Kind returns the kind of opening being drafted.
func (d *OpeningDraft) Kind() model.OpeningKind { return d.kind }

// Rect returns the constrained draft rectangle for rendering.
func (d *OpeningDraft) Rect() model.Rect {
	room := d.ed.State.Room(d.roomID)
	if room == nil {
		return model.Rect{}
	}
	if d.kind == model.KindDoor {
		return d.doorRect(room.Pos)
	}
	return d.windowRect(room.Pos)
}

// windowRect pins the short axis to the window thickness, centered on the
// wall, and clamps the long axis to the room's span.
func (d *OpeningDraft) windowRect(room model.Rect) model.Rect {
	if d.Horizontal() {
		x1 := clamp(math.Min(d.start.X, d.cur.X), room.X, room.Right())
		x2 := clamp(math.Max(d.start.X, d.cur.X), room.X, room.Right())
		return model.Rect{
			X:       x1,
			Y:       d.wall - model.WindowThickness/2,
			Length:  x2 - x1,
			Breadth: model.WindowThickness,
		}
	}
	y1 := clamp(math.Min(d.start.Y, d.cur.Y), room.Y, room.Bottom())
	y2 := clamp(math.Max(d.start.Y, d.cur.Y), room.Y, room.Bottom())
	return model.Rect{
		X:       d.wall - model.WindowThickness/2,
		Y:       y1,
		Length:  model.WindowThickness,
		Breadth: y2 - y1,
	}
}

// doorRect forces both axes equal and caps them at the maximum door size,
// growing from the gesture start toward the pointer.
func (d *OpeningDraft) doorRect(room model.Rect) model.Rect {
	size := math.Min(model.MaxDoorSize, math.Max(math.Abs(d.cur.X-d.start.X), math.Abs(d.cur.Y-d.start.Y)))

	x := d.start.X
	if d.cur.X < d.start.X {
		x = d.start.X - size
	}
	y := d.start.Y
	if d.cur.Y < d.start.Y {
		y = d.start.Y - size
	}
	x = clamp(x, room.X, math.Max(room.X, room.Right()-size))
	y = clamp(y, room.Y, math.Max(room.Y, room.Bottom()-size))
	return model.Rect{X: x, Y: y, Length: size, Breadth: size}
}

// Commit validates the constrained rectangle and attaches the opening to
// the source room. Too-small drafts and drafts overlapping a sibling are
// rejected with no state change.
func (d *OpeningDraft) Commit(ed *Editor, stroke string) (*model.Opening, error) {
	rect := d.Rect()
	if rect.Area() < model.MinOpeningArea {
		return nil, ErrOpeningTooSmall
	}

	o := &model.Opening{
		ID:         ed.State.NextOpeningID(d.kind),
		Kind:       d.kind,
		RoomID:     d.roomID,
		Pos:        rect,
		Stroke:     stroke,
		Horizontal: d.Horizontal(),
	}
	o.Name = o.ID
	if ed.overlapsSibling(o, rect) {
		return nil, ErrOpeningOverlap
	}
	if err := ed.State.AddOpening(o); err != nil {
		return nil, err
	}
	return o, nil
}

// LineDraft is the two-point reference line gesture used by manual
// calibration. Escape cancels it; nothing is committed until both points
// are placed and the real-world length entered.
type LineDraft struct {
	start model.Point2D
	cur   model.Point2D
	done  bool
}

// StartLineDraft anchors the first point of the reference line.
func StartLineDraft(p model.Point2D) *LineDraft {
	return &LineDraft{start: p, cur: p}
}

// Move updates the floating end while the line is being drawn.
func (d *LineDraft) Move(p model.Point2D) {
	if !d.done {
		d.cur = p
	}
}

// Finish fixes the second point.
func (d *LineDraft) Finish(p model.Point2D) {
	d.cur = p
	d.done = true
}

// Done reports whether both points have been placed.
func (d *LineDraft) Done() bool { return d.done }

// Points returns the current endpoints for rendering.
func (d *LineDraft) Points() (model.Point2D, model.Point2D) { return d.start, d.cur }

// PixelDist returns the drawing-space length of the line.
func (d *LineDraft) PixelDist() float64 { return d.start.Dist(d.cur) }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
