package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obravim/floortrace/internal/model"
)

func TestNearWallAxes(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 100, 50)

	assert.Equal(t, model.WallHorizontal, NearWall(r, model.Point2D{X: 50, Y: 2}, model.KindWindow))
	assert.Equal(t, model.WallHorizontal, NearWall(r, model.Point2D{X: 50, Y: 48}, model.KindWindow))
	assert.Equal(t, model.WallVertical, NearWall(r, model.Point2D{X: 2, Y: 25}, model.KindWindow))
	assert.Equal(t, model.WallVertical, NearWall(r, model.Point2D{X: 98, Y: 25}, model.KindWindow))
	assert.Equal(t, model.WallNone, NearWall(r, model.Point2D{X: 500, Y: 500}, model.KindWindow))

	// Doors have the wider tolerance: 25px off the top wall is a door hit
	// but not a window hit.
	p := model.Point2D{X: 50, Y: 25}
	assert.Equal(t, model.WallNone, NearWall(r, p, model.KindWindow))
	assert.Equal(t, model.WallHorizontal, NearWall(r, p, model.KindDoor))
}

func TestDrawDoorNearTopWall(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 100, 50)
	ed.SelectRoom(r.ID)

	draft, err := ed.StartOpeningDraft(model.KindDoor, model.Point2D{X: 50, Y: 2})
	require.NoError(t, err)
	draft.Move(model.Point2D{X: 70, Y: 40})

	o, err := draft.Commit(ed, "purple")
	require.NoError(t, err)
	assert.True(t, o.Horizontal)
	assert.Equal(t, o.Pos.Length, o.Pos.Breadth, "doors are square")
	assert.LessOrEqual(t, o.Pos.Length, model.MaxDoorSize)
	assert.Equal(t, r.ID, o.RoomID)
	assert.Contains(t, r.Children, o.ID)
}

func TestDraftDoorCapped(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 300, 200)
	ed.SelectRoom(r.ID)

	draft, err := ed.StartOpeningDraft(model.KindDoor, model.Point2D{X: 100, Y: 2})
	require.NoError(t, err)
	draft.Move(model.Point2D{X: 250, Y: 150})
	rect := draft.Rect()
	assert.InDelta(t, model.MaxDoorSize, rect.Length, 1e-9)
	assert.InDelta(t, model.MaxDoorSize, rect.Breadth, 1e-9)
}

func TestDraftWindowPinnedToWall(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 100, 50)
	ed.SelectRoom(r.ID)

	draft, err := ed.StartOpeningDraft(model.KindWindow, model.Point2D{X: 30, Y: 1})
	require.NoError(t, err)
	draft.Move(model.Point2D{X: 80, Y: 20})

	rect := draft.Rect()
	assert.InDelta(t, model.WindowThickness, rect.Breadth, 1e-9, "short axis pinned")
	assert.InDelta(t, 30, rect.X, 1e-9)
	assert.InDelta(t, 50, rect.Length, 1e-9)

	// Long axis clamps to the room's span on that wall.
	draft.Move(model.Point2D{X: 500, Y: 20})
	rect = draft.Rect()
	assert.InDelta(t, 100, rect.Right(), 1e-9)
}

func TestDraftWindowVerticalWall(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 100, 80)
	ed.SelectRoom(r.ID)

	draft, err := ed.StartOpeningDraft(model.KindWindow, model.Point2D{X: 99, Y: 30})
	require.NoError(t, err)
	draft.Move(model.Point2D{X: 90, Y: 70})

	require.False(t, draft.Horizontal())
	rect := draft.Rect()
	assert.InDelta(t, model.WindowThickness, rect.Length, 1e-9)
	assert.InDelta(t, 40, rect.Breadth, 1e-9)

	o, err := draft.Commit(ed, "cyan")
	require.NoError(t, err)
	assert.False(t, o.Horizontal)
}

func TestOpeningDraftRequiresSingleSelection(t *testing.T) {
	ed := newEditor()
	r1 := addRoom(t, ed, 0, 0, 100, 50)
	addRoom(t, ed, 200, 0, 100, 50)

	_, err := ed.StartOpeningDraft(model.KindWindow, model.Point2D{X: 50, Y: 2})
	assert.ErrorIs(t, err, ErrNoRoomSelected)

	ed.EnterMultiSelect()
	ed.SelectRoom(r1.ID)
	_, err = ed.StartOpeningDraft(model.KindWindow, model.Point2D{X: 50, Y: 2})
	assert.ErrorIs(t, err, ErrMultiSelectActive)

	ed.MultiSelect = false
	ed.SelectRoom(r1.ID)
	_, err = ed.StartOpeningDraft(model.KindWindow, model.Point2D{X: 50, Y: 25})
	assert.ErrorIs(t, err, ErrNotNearWall)
}

func TestOpeningDraftCommitRejectsTooSmall(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 100, 50)
	ed.SelectRoom(r.ID)

	draft, err := ed.StartOpeningDraft(model.KindWindow, model.Point2D{X: 30, Y: 1})
	require.NoError(t, err)
	draft.Move(model.Point2D{X: 35, Y: 1}) // 5px * 10px = 50px² < 100px²

	_, err = draft.Commit(ed, "cyan")
	assert.ErrorIs(t, err, ErrOpeningTooSmall)
	assert.Empty(t, ed.State.Windoors)
	assert.Empty(t, r.Children)
}

func TestOpeningDraftCommitRejectsOverlap(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 300, 100)
	addOpening(t, ed, r, model.KindWindow,
		model.Rect{X: 40, Y: -model.WindowThickness / 2, Length: 60, Breadth: model.WindowThickness}, true)
	ed.SelectRoom(r.ID)

	draft, err := ed.StartOpeningDraft(model.KindWindow, model.Point2D{X: 60, Y: 1})
	require.NoError(t, err)
	draft.Move(model.Point2D{X: 120, Y: 1})

	_, err = draft.Commit(ed, "cyan")
	assert.ErrorIs(t, err, ErrOpeningOverlap)
	assert.Len(t, ed.State.Windoors, 1)
}

func TestRoomDraftDegenerateRejected(t *testing.T) {
	ed := newEditor()
	draft := StartRoomDraft(model.Point2D{X: 10, Y: 10})
	draft.Move(model.Point2D{X: 13, Y: 12})

	_, err := draft.Commit(ed, "blue")
	assert.ErrorIs(t, err, ErrDegenerateRoom)
	assert.Empty(t, ed.State.Rooms)
}

func TestRoomDraftCommit(t *testing.T) {
	ed := newEditor()
	draft := StartRoomDraft(model.Point2D{X: 110, Y: 80}) // reversed corners
	draft.Move(model.Point2D{X: 10, Y: 20})

	room, err := draft.Commit(ed, "blue")
	require.NoError(t, err)
	assert.Equal(t, model.Rect{X: 10, Y: 20, Length: 100, Breadth: 60}, room.Pos)
	assert.Contains(t, ed.State.OrphanRoomIDs, room.ID)
}

func TestLineDraft(t *testing.T) {
	d := StartLineDraft(model.Point2D{X: 0, Y: 0})
	d.Move(model.Point2D{X: 120, Y: 160})
	assert.InDelta(t, 200, d.PixelDist(), 1e-9)
	assert.False(t, d.Done())

	d.Finish(model.Point2D{X: 120, Y: 160})
	assert.True(t, d.Done())
	d.Move(model.Point2D{X: 0, Y: 0})
	assert.InDelta(t, 200, d.PixelDist(), 1e-9, "finished line ignores further moves")
}
