package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obravim/floortrace/internal/model"
)

func TestApplyRoomDimensionRoundTrip(t *testing.T) {
	for _, scale := range []model.Scale{
		{Factor: 1, Resize: 1},
		{Factor: 0.6, Resize: 1},
		{Factor: 0.3179235808186732, Resize: 1.3},
	} {
		ed := New(model.NewEditorState(scale))
		r := addRoom(t, ed, 0, 0, 100, 50)

		applied, err := ed.Apply(EditForm{
			ItemID: r.ID, Name: "Living Room",
			Length: 14.5, Breadth: 11.25, Height: 9,
			IsRoom: true,
		})
		require.NoError(t, err)
		require.True(t, applied)

		assert.Equal(t, "Living Room", r.Name)
		assert.InDelta(t, 14.5, r.Dimension.LengthFt, 1e-9, "scale %+v", scale)
		assert.InDelta(t, 11.25, r.Dimension.BreadthFt, 1e-9)
		assert.InDelta(t, 9, r.Dimension.CeilingFt, 1e-9)
		assert.InDelta(t, 14.5*11.25, r.Area(), 1e-9)
	}
}

func TestApplyRejectsInvalidName(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 100, 50)
	before := *r

	applied, err := ed.Apply(EditForm{
		ItemID: r.ID, Name: "Kitchen!", Length: 10, Breadth: 10, Height: 8, IsRoom: true,
	})
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.False(t, applied)
	assert.Equal(t, before.Name, r.Name)
	assert.Equal(t, before.Pos, r.Pos)
}

func TestApplyAllowedNameCharacters(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 100, 50)

	applied, err := ed.Apply(EditForm{
		ItemID: r.ID, Name: "Guest_Room-2 B", Length: 10, Breadth: 10, Height: 8, IsRoom: true,
	})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "Guest_Room-2 B", r.Name)
}

func TestApplyIncompleteFormIsNoOp(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 100, 50)
	before := r.Pos

	applied, err := ed.Apply(EditForm{
		ItemID: r.ID, Name: "Kitchen", Length: 10, Height: 8, IsRoom: true, // no breadth
	})
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, before, r.Pos)

	applied, err = ed.Apply(EditForm{ItemID: r.ID, IsRoom: true}) // no name
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestApplyZoneRenamesOnly(t *testing.T) {
	ed := newEditor()
	r := addRoom(t, ed, 0, 0, 100, 50)
	ed.EnterMultiSelect()
	ed.SelectRoom(r.ID)
	zone := ed.ExitMultiSelect()
	require.NotNil(t, zone)

	applied, err := ed.Apply(EditForm{ItemID: zone.ID, Name: "Ground Floor", IsZone: true})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "Ground Floor", zone.Name)
}

func TestApplyOpeningLengthAndDoorCap(t *testing.T) {
	ed := New(model.NewEditorState(model.Scale{Factor: 1, Resize: 1}))
	r := addRoom(t, ed, 0, 0, 300, 200)
	w := addOpening(t, ed, r, model.KindWindow,
		model.Rect{X: 20, Y: -5, Length: 40, Breadth: model.WindowThickness}, true)
	d := addOpening(t, ed, r, model.KindDoor,
		model.Rect{X: 100, Y: 0, Length: 30, Breadth: 30}, true)

	applied, err := ed.Apply(EditForm{ItemID: w.ID, Name: "Bay Window", Length: 5, Height: 4})
	require.NoError(t, err)
	require.True(t, applied)
	assert.InDelta(t, 5, w.Dimension.LengthFt, 1e-9)
	assert.InDelta(t, model.WindowThickness, w.Pos.Breadth, 1e-9)
	assert.InDelta(t, 4, w.Dimension.HeightFt, 1e-9)

	// 10ft would be 120px, beyond the door cap.
	applied, err = ed.Apply(EditForm{ItemID: d.ID, Name: "Front Door", Length: 10, Height: 7})
	require.NoError(t, err)
	require.True(t, applied)
	assert.InDelta(t, model.MaxDoorSize, d.Pos.Length, 1e-9)
	assert.InDelta(t, model.MaxDoorSize, d.Pos.Breadth, 1e-9)
}

func TestApplyRejectsSiblingOverlap(t *testing.T) {
	ed := New(model.NewEditorState(model.Scale{Factor: 1, Resize: 1}))
	r := addRoom(t, ed, 0, 0, 300, 100)
	a := addOpening(t, ed, r, model.KindWindow,
		model.Rect{X: 20, Y: -5, Length: 40, Breadth: model.WindowThickness}, true)
	b := addOpening(t, ed, r, model.KindWindow,
		model.Rect{X: 100, Y: -5, Length: 40, Breadth: model.WindowThickness}, true)

	before := *a
	// 200/12 ft is 200px, growing A from x=20 through the sibling at 100.
	applied, err := ed.Apply(EditForm{ItemID: a.ID, Name: "Bay Window", Length: 200.0 / 12, Height: 4})
	assert.ErrorIs(t, err, ErrOpeningOverlap)
	assert.False(t, applied)
	assert.Equal(t, before.Pos, a.Pos)
	assert.Equal(t, before.Name, a.Name)
	assert.Equal(t, before.Dimension, a.Dimension)
	assert.Equal(t, model.Rect{X: 100, Y: -5, Length: 40, Breadth: model.WindowThickness}, b.Pos)

	// A length that stops short of the sibling still applies.
	applied, err = ed.Apply(EditForm{ItemID: a.ID, Name: "Bay Window", Length: 70.0 / 12, Height: 4})
	require.NoError(t, err)
	require.True(t, applied)
	assert.InDelta(t, 70, a.Pos.Length, 1e-9)
}

func TestApplyUnknownTargets(t *testing.T) {
	ed := newEditor()
	_, err := ed.Apply(EditForm{ItemID: "nope", Name: "X", Length: 1, Breadth: 1, Height: 1, IsRoom: true})
	assert.Error(t, err)
	_, err = ed.Apply(EditForm{ItemID: "nope", Name: "X", IsZone: true})
	assert.Error(t, err)
	_, err = ed.Apply(EditForm{ItemID: "nope", Name: "X", Length: 1, Height: 1})
	assert.Error(t, err)
}
