// Package editor implements the interactive editing engine over an
// EditorState: selection semantics, drag and resize gestures with start
// snapshots, placement constraints for new rooms and openings, zone
// grouping, the edit form, and manual scale calibration.
//
// All mutations happen synchronously inside pointer or keyboard callbacks;
// gestures span multiple callbacks and keep an immutable snapshot of the
// state they started from, so cancelling restores exactly the pre-gesture
// geometry and nothing partial ever leaks into the entity model.
package editor

import (
	"errors"

	"github.com/obravim/floortrace/internal/model"
)

// User-facing rejection reasons. These are surfaced as blocking inline
// messages by the UI; none of them leaves any state mutated.
var (
	ErrMultiSelectActive = errors.New("finish grouping before drawing an opening")
	ErrNoRoomSelected    = errors.New("select a room before drawing an opening")
	ErrNotNearWall       = errors.New("openings must be drawn on a room wall")
	ErrOpeningTooSmall   = errors.New("opening is too small")
	ErrOpeningOverlap    = errors.New("openings on the same wall may not overlap")
	ErrDegenerateRoom    = errors.New("room rectangle is too small")
	ErrRoomTooSmall      = errors.New("room cannot be resized below the minimum size")
	ErrInvalidName       = errors.New("only letters, digits, space, hyphen and underscore are allowed")
	ErrNoSelection       = errors.New("no object selected")
)

// Editor is the editing session over one plan. MultiSelect is the shared
// selection-mode flag: off means selecting a room deselects the previous
// one, on means selection toggles membership.
type Editor struct {
	State       *model.EditorState
	MultiSelect bool
}

// New returns an editing session over the given state.
func New(st *model.EditorState) *Editor {
	return &Editor{State: st}
}

// Replace swaps in a freshly imported state, dropping all selection and
// grouping done against the previous one (last write wins on re-detection).
func (ed *Editor) Replace(st *model.EditorState) {
	ed.State = st
	ed.MultiSelect = false
}

// SelectRoom selects the room with the given id. In single-select mode any
// previously selected room is deselected; in multi-select mode membership
// toggles without clearing others. Selecting a room always deselects any
// selected opening.
func (ed *Editor) SelectRoom(id string) {
	room := ed.State.Room(id)
	if room == nil {
		return
	}
	ed.deselectOpenings()
	if ed.MultiSelect {
		room.Selected = !room.Selected
		return
	}
	for _, r := range ed.State.Rooms {
		r.Selected = r.ID == id
	}
}

// SelectOpening makes the opening the active selection, clearing all room
// selection. At most one opening is selected at a time regardless of mode.
func (ed *Editor) SelectOpening(id string) {
	o := ed.State.Opening(id)
	if o == nil {
		return
	}
	for _, r := range ed.State.Rooms {
		r.Selected = false
	}
	for _, other := range ed.State.Windoors {
		other.Selected = other.ID == id
	}
}

// ClearSelection deselects every room and opening.
func (ed *Editor) ClearSelection() {
	for _, r := range ed.State.Rooms {
		r.Selected = false
	}
	ed.deselectOpenings()
}

func (ed *Editor) deselectOpenings() {
	for _, o := range ed.State.Windoors {
		o.Selected = false
	}
}

// SelectedOpening returns the selected opening, or nil.
func (ed *Editor) SelectedOpening() *model.Opening {
	for _, o := range ed.State.Windoors {
		if o.Selected {
			return o
		}
	}
	return nil
}

// RoomAt returns the topmost room whose rectangle contains the point.
// Later rooms in the draw order win, matching hit-testing on the canvas.
func (ed *Editor) RoomAt(p model.Point2D) *model.Room {
	var hit *model.Room
	for _, z := range ed.State.Zones {
		for _, id := range z.RoomIDs {
			if r := ed.State.Room(id); r != nil && r.Pos.ContainsPoint(p) {
				hit = r
			}
		}
	}
	for _, id := range ed.State.OrphanRoomIDs {
		if r := ed.State.Room(id); r != nil && r.Pos.ContainsPoint(p) {
			hit = r
		}
	}
	return hit
}

// OpeningAt returns the opening whose rectangle contains the point, or nil.
func (ed *Editor) OpeningAt(p model.Point2D) *model.Opening {
	for _, o := range ed.State.Windoors {
		if o.Pos.ContainsPoint(p) {
			return o
		}
	}
	return nil
}

// EnterMultiSelect switches to multi-select mode. Existing single selection
// is kept as the first member of the set.
func (ed *Editor) EnterMultiSelect() {
	ed.MultiSelect = true
}

// ExitMultiSelect leaves multi-select mode. If at least one selected room is
// unzoned this creates a new zone from the selection — the only path that
// creates a zone. Returns the created zone, or nil when nothing was grouped.
func (ed *Editor) ExitMultiSelect() *model.Zone {
	ed.MultiSelect = false
	return ed.GroupSelected()
}
