package editor

import (
	"fmt"

	"github.com/obravim/floortrace/internal/model"
)

// RoomDrag translates a room and all of its openings together. The gesture
// captures a snapshot of every rectangle at drag start and recomputes each
// position from snapshot plus total pointer delta on every event, so
// intermediate moves can never accumulate drift.
type RoomDrag struct {
	ed       *Editor
	roomID   string
	start    model.Rect
	children map[string]model.Rect
}

// StartRoomDrag begins a drag gesture on the given room.
func (ed *Editor) StartRoomDrag(roomID string) (*RoomDrag, error) {
	room := ed.State.Room(roomID)
	if room == nil {
		return nil, fmt.Errorf("no such room %s", roomID)
	}
	d := &RoomDrag{
		ed:       ed,
		roomID:   roomID,
		start:    room.Pos,
		children: make(map[string]model.Rect, len(room.Children)),
	}
	for _, id := range room.Children {
		if o := ed.State.Opening(id); o != nil {
			d.children[id] = o.Pos
		}
	}
	return d, nil
}

// Update applies the total pointer delta since drag start.
func (d *RoomDrag) Update(dx, dy float64) {
	room := d.ed.State.Room(d.roomID)
	if room == nil {
		return
	}
	room.Pos = d.start.Translate(dx, dy)
	for id, start := range d.children {
		if o := d.ed.State.Opening(id); o != nil {
			o.Pos = start.Translate(dx, dy)
		}
	}
}

// End commits the current position and discards the snapshot.
func (d *RoomDrag) End() {
	d.children = nil
}

// Cancel restores the pre-drag geometry.
func (d *RoomDrag) Cancel() {
	d.Update(0, 0)
	d.children = nil
}

// RoomTransform resizes a room via its handles. Child openings are
// repositioned proportionally about the room's center with the same scale
// ratios, preserving their relative placement on the wall; their fixed
// thickness is kept.
type RoomTransform struct {
	ed       *Editor
	roomID   string
	start    model.Rect
	children map[string]model.Rect
}

// StartRoomTransform begins a resize gesture on the given room.
func (ed *Editor) StartRoomTransform(roomID string) (*RoomTransform, error) {
	room := ed.State.Room(roomID)
	if room == nil {
		return nil, fmt.Errorf("no such room %s", roomID)
	}
	tr := &RoomTransform{
		ed:       ed,
		roomID:   roomID,
		start:    room.Pos,
		children: make(map[string]model.Rect, len(room.Children)),
	}
	for _, id := range room.Children {
		if o := ed.State.Opening(id); o != nil {
			tr.children[id] = o.Pos
		}
	}
	return tr, nil
}

// Apply replaces the room rectangle with the proposed one. Any live scale
// factor from the shape node must already be baked into the extents — the
// committed geometry is always width/height, never a visual transform.
// Proposals below the minimum size are rejected and the old geometry kept.
func (tr *RoomTransform) Apply(proposed model.Rect) error {
	room := tr.ed.State.Room(tr.roomID)
	if room == nil {
		return fmt.Errorf("no such room %s", tr.roomID)
	}
	if proposed.Length < model.MinRoomSize || proposed.Breadth < model.MinRoomSize {
		return ErrRoomTooSmall
	}

	sx := proposed.Length / tr.start.Length
	sy := proposed.Breadth / tr.start.Breadth
	startCenter := tr.start.Center()
	newCenter := proposed.Center()

	room.Pos = proposed
	room.SyncDimension(tr.ed.State.Scale)

	for id, start := range tr.children {
		o := tr.ed.State.Opening(id)
		if o == nil {
			continue
		}
		c := start.Center()
		cx := newCenter.X + (c.X-startCenter.X)*sx
		cy := newCenter.Y + (c.Y-startCenter.Y)*sy

		length, breadth := start.Length, start.Breadth
		if o.Horizontal {
			length *= sx
		} else {
			breadth *= sy
		}
		o.Pos = model.Rect{X: cx - length/2, Y: cy - breadth/2, Length: length, Breadth: breadth}
		o.SyncDimension(tr.ed.State.Scale)
	}
	return nil
}

// End commits the transform and discards the snapshot.
func (tr *RoomTransform) End() {
	tr.children = nil
}

// Cancel restores the pre-transform geometry of the room and its openings.
func (tr *RoomTransform) Cancel() {
	room := tr.ed.State.Room(tr.roomID)
	if room != nil {
		room.Pos = tr.start
		room.SyncDimension(tr.ed.State.Scale)
	}
	for id, start := range tr.children {
		if o := tr.ed.State.Opening(id); o != nil {
			o.Pos = start
			o.SyncDimension(tr.ed.State.Scale)
		}
	}
	tr.children = nil
}

// OpeningDrag moves an opening along its wall. Every proposed position is
// checked against sibling openings before any state is written, so the
// shape refuses to cross a sibling instead of snapping back on release.
type OpeningDrag struct {
	ed    *Editor
	id    string
	start model.Rect
}

// StartOpeningDrag begins a drag gesture on the given opening.
func (ed *Editor) StartOpeningDrag(id string) (*OpeningDrag, error) {
	o := ed.State.Opening(id)
	if o == nil {
		return nil, fmt.Errorf("no such opening %s", id)
	}
	return &OpeningDrag{ed: ed, id: id, start: o.Pos}, nil
}

// Update applies the total pointer delta since drag start. A move that
// would intersect a sibling is rejected outright: the opening keeps its
// last valid position and ErrOpeningOverlap is returned.
func (d *OpeningDrag) Update(dx, dy float64) error {
	o := d.ed.State.Opening(d.id)
	if o == nil {
		return fmt.Errorf("no such opening %s", d.id)
	}
	proposed := d.start.Translate(dx, dy)
	if d.ed.overlapsSibling(o, proposed) {
		return ErrOpeningOverlap
	}
	o.Pos = proposed
	return nil
}

// End commits the current position.
func (d *OpeningDrag) End() {}

// Cancel restores the pre-drag position.
func (d *OpeningDrag) Cancel() {
	if o := d.ed.State.Opening(d.id); o != nil {
		o.Pos = d.start
	}
}

// OpeningTransform resizes an opening along its long axis. The fixed
// thickness never changes; doors stay square and capped.
type OpeningTransform struct {
	ed    *Editor
	id    string
	start model.Rect
}

// StartOpeningTransform begins a resize gesture on the given opening.
func (ed *Editor) StartOpeningTransform(id string) (*OpeningTransform, error) {
	o := ed.State.Opening(id)
	if o == nil {
		return nil, fmt.Errorf("no such opening %s", id)
	}
	return &OpeningTransform{ed: ed, id: id, start: o.Pos}, nil
}

// Apply resizes the long axis to the proposed extent, anchored at the
// opening's start-state near corner. Sibling overlap rejects the proposal
// with the old geometry retained.
func (tr *OpeningTransform) Apply(longExtent float64) error {
	o := tr.ed.State.Opening(tr.id)
	if o == nil {
		return fmt.Errorf("no such opening %s", tr.id)
	}
	if longExtent <= 0 {
		return ErrOpeningTooSmall
	}
	if o.Kind == model.KindDoor && longExtent > model.MaxDoorSize {
		longExtent = model.MaxDoorSize
	}

	proposed := tr.start
	if o.Kind == model.KindDoor {
		// Doors are square cut-outs.
		proposed.Length = longExtent
		proposed.Breadth = longExtent
	} else if o.Horizontal {
		proposed.Length = longExtent
	} else {
		proposed.Breadth = longExtent
	}
	if tr.ed.overlapsSibling(o, proposed) {
		return ErrOpeningOverlap
	}
	o.Pos = proposed
	o.SyncDimension(tr.ed.State.Scale)
	return nil
}

// End commits the transform.
func (tr *OpeningTransform) End() {}

// Cancel restores the pre-transform geometry.
func (tr *OpeningTransform) Cancel() {
	if o := tr.ed.State.Opening(tr.id); o != nil {
		o.Pos = tr.start
		o.SyncDimension(tr.ed.State.Scale)
	}
}

// overlapsSibling reports whether the proposed rectangle intersects any
// sibling opening on the same room.
func (ed *Editor) overlapsSibling(o *model.Opening, proposed model.Rect) bool {
	for _, sib := range ed.State.Siblings(o) {
		if proposed.Overlaps(sib.Pos) {
			return true
		}
	}
	return false
}
