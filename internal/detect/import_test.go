package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obravim/floortrace/internal/model"
)

func TestImportSingleRoom(t *testing.T) {
	resp := &Response{
		ScaleFactor: 1,
		RoomCoords: []Coord{
			{StartPoint: [2]float64{0, 0}, EndPoint: [2]float64{100, 50}, Color: "red"},
		},
	}
	result := Import(resp, 1)
	st := result.State

	require.Len(t, st.Rooms, 1)
	require.Len(t, st.OrphanRoomIDs, 1)
	assert.Empty(t, st.Zones)

	room := st.Room(st.OrphanRoomIDs[0])
	require.NotNil(t, room)
	assert.Equal(t, model.Rect{X: 0, Y: 0, Length: 100, Breadth: 50}, room.Pos)
	assert.InDelta(t, 100.0/12, room.Dimension.LengthFt, 1e-9)
	assert.InDelta(t, 50.0/12, room.Dimension.BreadthFt, 1e-9)
	assert.Equal(t, "red", room.Stroke)
}

func TestImportNormalizesCorners(t *testing.T) {
	resp := &Response{
		ScaleFactor: 1,
		RoomCoords: []Coord{
			{StartPoint: [2]float64{282.47, 514.69}, EndPoint: [2]float64{79.72, 309.92}, Color: "red"},
		},
	}
	st := Import(resp, 1).State
	room := st.Room(st.OrphanRoomIDs[0])
	require.NotNil(t, room)
	assert.InDelta(t, 79.72, room.Pos.X, 1e-9)
	assert.InDelta(t, 309.92, room.Pos.Y, 1e-9)
	assert.Greater(t, room.Pos.Length, 0.0)
	assert.Greater(t, room.Pos.Breadth, 0.0)
}

func TestImportAssignsOpeningToFirstMatchingRoom(t *testing.T) {
	resp := &Response{
		ScaleFactor: 1,
		RoomCoords: []Coord{
			{StartPoint: [2]float64{0, 0}, EndPoint: [2]float64{100, 100}, Color: "red"},
			{StartPoint: [2]float64{100, 0}, EndPoint: [2]float64{200, 100}, Color: "blue"},
		},
		WindowsCoords: []Coord{
			// Center (50, 2): on the first room's top wall.
			{StartPoint: [2]float64{20, 0}, EndPoint: [2]float64{80, 4}, Color: "cyan"},
			// Center (150, 98): on the second room's bottom wall.
			{StartPoint: [2]float64{130, 94}, EndPoint: [2]float64{170, 102}, Color: "cyan"},
		},
	}
	result := Import(resp, 1)
	st := result.State
	require.Len(t, st.Windoors, 2)
	assert.Empty(t, result.Unassigned)

	first := st.Room(st.OrphanRoomIDs[0])
	second := st.Room(st.OrphanRoomIDs[1])
	require.Len(t, first.Children, 1)
	require.Len(t, second.Children, 1)

	w1 := st.Opening(first.Children[0])
	assert.True(t, w1.Horizontal)
	assert.Equal(t, first.ID, w1.RoomID)
}

func TestImportVerticalWallOpening(t *testing.T) {
	resp := &Response{
		ScaleFactor: 1,
		RoomCoords: []Coord{
			{StartPoint: [2]float64{0, 0}, EndPoint: [2]float64{100, 100}, Color: "red"},
		},
		DoorCoords: []Coord{
			// Center (98, 50): on the right wall, taller than wide.
			{StartPoint: [2]float64{94, 30}, EndPoint: [2]float64{102, 70}, Color: "purple"},
		},
	}
	st := Import(resp, 1).State
	require.Len(t, st.Windoors, 1)
	for _, o := range st.Windoors {
		assert.False(t, o.Horizontal)
		assert.Equal(t, model.KindDoor, o.Kind)
	}
}

func TestImportUnassignedOpeningIsReported(t *testing.T) {
	resp := &Response{
		ScaleFactor: 1,
		RoomCoords: []Coord{
			{StartPoint: [2]float64{0, 0}, EndPoint: [2]float64{100, 100}, Color: "red"},
		},
		WindowsCoords: []Coord{
			// Center (500, 500): nowhere near any room.
			{StartPoint: [2]float64{480, 495}, EndPoint: [2]float64{520, 505}, Color: "cyan"},
		},
	}
	result := Import(resp, 1)
	assert.Empty(t, result.State.Windoors)
	require.Len(t, result.Unassigned, 1)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no matching wall")
}

func TestImportAppliesResizeFactor(t *testing.T) {
	resp := &Response{
		ScaleFactor: 0.6,
		RoomCoords: []Coord{
			{StartPoint: [2]float64{0, 0}, EndPoint: [2]float64{800, 400}, Color: "red"},
		},
	}
	// Native image is twice the drawing size.
	st := Import(resp, 2).State
	room := st.Room(st.OrphanRoomIDs[0])
	assert.InDelta(t, 400, room.Pos.Length, 1e-9)
	// Feet derivation goes back through factor*resize: 400 * 0.6 * 2 / 12.
	assert.InDelta(t, 40, room.Dimension.LengthFt, 1e-9)
}

func TestImportEmptyResponse(t *testing.T) {
	result := Import(&Response{ScaleFactor: 0.5}, 1)
	assert.Empty(t, result.State.Rooms)
	assert.Empty(t, result.State.Windoors)
	assert.Empty(t, result.Warnings)
}
