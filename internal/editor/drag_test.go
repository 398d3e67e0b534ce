package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obravim/floortrace/internal/model"
)

func TestRoomDragMovesChildrenByExactDelta(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 100, 100, 200, 100)
	w := addOpening(t, ed, r, model.KindWindow,
		model.Rect{X: 150, Y: 95, Length: 40, Breadth: model.WindowThickness}, true)
	d := addOpening(t, ed, r, model.KindDoor,
		model.Rect{X: 100, Y: 140, Length: 30, Breadth: 30}, false)

	drag, err := ed.StartRoomDrag(r.ID)
	require.NoError(t, err)

	// Many intermediate moves; final delta is what counts.
	drag.Update(3, 1)
	drag.Update(-7, 12)
	drag.Update(25, -10)
	drag.End()

	assert.Equal(t, model.Rect{X: 125, Y: 90, Length: 200, Breadth: 100}, r.Pos)
	assert.Equal(t, model.Rect{X: 175, Y: 85, Length: 40, Breadth: model.WindowThickness}, w.Pos)
	assert.Equal(t, model.Rect{X: 125, Y: 130, Length: 30, Breadth: 30}, d.Pos)
}

func TestRoomDragCancelRestores(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 100, 100, 200, 100)
	w := addOpening(t, ed, r, model.KindWindow,
		model.Rect{X: 150, Y: 95, Length: 40, Breadth: model.WindowThickness}, true)
	roomBefore, winBefore := r.Pos, w.Pos

	drag, err := ed.StartRoomDrag(r.ID)
	require.NoError(t, err)
	drag.Update(50, 50)
	drag.Cancel()

	assert.Equal(t, roomBefore, r.Pos)
	assert.Equal(t, winBefore, w.Pos)
}

func TestRoomTransformRejectsBelowMinimum(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 100, 100)
	before := r.Pos

	tr, err := ed.StartRoomTransform(r.ID)
	require.NoError(t, err)
	err = tr.Apply(model.Rect{X: 0, Y: 0, Length: 5, Breadth: 100})
	assert.ErrorIs(t, err, ErrRoomTooSmall)
	assert.Equal(t, before, r.Pos, "rejected resize keeps old geometry")
}

func TestRoomTransformScalesChildrenAboutCenter(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 100, 100)
	// Window centered on the top wall at x=50.
	w := addOpening(t, ed, r, model.KindWindow,
		model.Rect{X: 40, Y: -model.WindowThickness / 2, Length: 20, Breadth: model.WindowThickness}, true)

	tr, err := ed.StartRoomTransform(r.ID)
	require.NoError(t, err)
	require.NoError(t, tr.Apply(model.Rect{X: 0, Y: 0, Length: 200, Breadth: 100}))
	tr.End()

	// Room center moved from (50,50) to (100,50); sx=2 so the window center
	// stays on the room's horizontal midpoint, long axis doubled, thickness
	// unchanged.
	assert.InDelta(t, 100, w.Pos.Center().X, 1e-9)
	assert.InDelta(t, 40, w.Pos.Length, 1e-9)
	assert.InDelta(t, model.WindowThickness, w.Pos.Breadth, 1e-9)

	// Dimensions were re-derived from the committed pixel geometry.
	assert.InDelta(t, ed.State.Scale.PxToFt(200), r.Dimension.LengthFt, 1e-9)
	assert.InDelta(t, ed.State.Scale.PxToFt(40), w.Dimension.LengthFt, 1e-9)
}

func TestRoomTransformCancelRestores(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 100, 100)
	w := addOpening(t, ed, r, model.KindWindow,
		model.Rect{X: 40, Y: -5, Length: 20, Breadth: model.WindowThickness}, true)
	roomBefore, winBefore := r.Pos, w.Pos

	tr, err := ed.StartRoomTransform(r.ID)
	require.NoError(t, err)
	require.NoError(t, tr.Apply(model.Rect{X: 0, Y: 0, Length: 300, Breadth: 150}))
	tr.Cancel()

	assert.Equal(t, roomBefore, r.Pos)
	assert.Equal(t, winBefore, w.Pos)
}

func TestOpeningDragRejectsSiblingOverlap(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 300, 100)
	a := addOpening(t, ed, r, model.KindWindow,
		model.Rect{X: 20, Y: -5, Length: 40, Breadth: model.WindowThickness}, true)
	b := addOpening(t, ed, r, model.KindWindow,
		model.Rect{X: 100, Y: -5, Length: 40, Breadth: model.WindowThickness}, true)

	before := a.Pos
	drag, err := ed.StartOpeningDrag(a.ID)
	require.NoError(t, err)

	// Move into B: rejected outright, position unchanged.
	err = drag.Update(60, 0)
	assert.ErrorIs(t, err, ErrOpeningOverlap)
	assert.Equal(t, before, a.Pos, "rejected, not clamped to just touching")
	assert.Equal(t, model.Rect{X: 100, Y: -5, Length: 40, Breadth: model.WindowThickness}, b.Pos)

	// A legal move still works afterwards.
	require.NoError(t, drag.Update(10, 0))
	drag.End()
	assert.Equal(t, before.Translate(10, 0), a.Pos)
}

func TestOpeningDragWholeGestureRejected(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 300, 100)
	a := addOpening(t, ed, r, model.KindWindow,
		model.Rect{X: 20, Y: -5, Length: 40, Breadth: model.WindowThickness}, true)
	addOpening(t, ed, r, model.KindWindow,
		model.Rect{X: 70, Y: -5, Length: 40, Breadth: model.WindowThickness}, true)

	before := a.Pos
	drag, err := ed.StartOpeningDrag(a.ID)
	require.NoError(t, err)
	assert.Error(t, drag.Update(30, 0))
	assert.Error(t, drag.Update(45, 0))
	drag.End()
	assert.Equal(t, before, a.Pos, "position after the gesture equals position before")
}

func TestOpeningTransformKeepsThickness(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 300, 100)
	w := addOpening(t, ed, r, model.KindWindow,
		model.Rect{X: 20, Y: -5, Length: 40, Breadth: model.WindowThickness}, true)

	tr, err := ed.StartOpeningTransform(w.ID)
	require.NoError(t, err)
	require.NoError(t, tr.Apply(80))
	assert.InDelta(t, 80, w.Pos.Length, 1e-9)
	assert.InDelta(t, model.WindowThickness, w.Pos.Breadth, 1e-9)
}

func TestOpeningTransformCapsDoor(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 300, 100)
	d := addOpening(t, ed, r, model.KindDoor,
		model.Rect{X: 20, Y: 0, Length: 30, Breadth: 30}, true)

	tr, err := ed.StartOpeningTransform(d.ID)
	require.NoError(t, err)
	require.NoError(t, tr.Apply(100))
	assert.InDelta(t, model.MaxDoorSize, d.Pos.Length, 1e-9)
	assert.InDelta(t, model.MaxDoorSize, d.Pos.Breadth, 1e-9, "doors stay square")
}

func TestOpeningTransformRejectsOverlap(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 300, 100)
	a := addOpening(t, ed, r, model.KindWindow,
		model.Rect{X: 20, Y: -5, Length: 40, Breadth: model.WindowThickness}, true)
	addOpening(t, ed, r, model.KindWindow,
		model.Rect{X: 100, Y: -5, Length: 40, Breadth: model.WindowThickness}, true)

	tr, err := ed.StartOpeningTransform(a.ID)
	require.NoError(t, err)
	err = tr.Apply(120) // would reach x=140, through the sibling at 100
	assert.ErrorIs(t, err, ErrOpeningOverlap)
	assert.InDelta(t, 40, a.Pos.Length, 1e-9)
}
