package detect

import (
	"fmt"

	"github.com/obravim/floortrace/internal/model"
)

// wallProximity is the pixel tolerance used when matching a detected
// opening's center against a room boundary.
const wallProximity = 20.0

// ImportResult holds the plan state built from a detection response, plus
// any openings that could not be attached to a room.
type ImportResult struct {
	State      *model.EditorState
	Unassigned []Coord
	Warnings   []string
}

// Import converts a detection response into a fresh EditorState. Every
// detected room lands in the orphan list; no zones exist yet. Each opening
// is assigned to the first room, in detector output order, whose boundary
// passes the nearest-wall test for the opening's center. Openings matching
// no room are reported as unassigned rather than attached to an arbitrary
// room.
//
// resize is the ratio of native image pixels to on-screen drawing pixels;
// detected coordinates are divided by it so stored geometry lives in
// drawing space.
func Import(resp *Response, resize float64) ImportResult {
	if resize <= 0 {
		resize = 1
	}
	st := model.NewEditorState(model.Scale{Factor: resp.ScaleFactor, Resize: resize})
	result := ImportResult{State: st}

	order := make([]string, 0, len(resp.RoomCoords))
	for _, c := range resp.RoomCoords {
		r := &model.Room{
			ID:     st.NextRoomID(),
			Pos:    coordRect(c, resize),
			Stroke: c.Color,
		}
		r.Name = r.ID
		st.AddRoom(r)
		order = append(order, r.ID)
	}

	importOpenings(&result, resp.DoorCoords, model.KindDoor, order, resize)
	importOpenings(&result, resp.WindowsCoords, model.KindWindow, order, resize)
	return result
}

// importOpenings attaches one kind of opening to its nearest room.
func importOpenings(result *ImportResult, coords []Coord, kind model.OpeningKind, order []string, resize float64) {
	st := result.State
	for _, c := range coords {
		pos := coordRect(c, resize)
		roomID, ok := assignRoom(st, order, pos.Center())
		if !ok {
			result.Unassigned = append(result.Unassigned, c)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s at (%.0f, %.0f): no matching wall found", kind, pos.Center().X, pos.Center().Y))
			continue
		}
		o := &model.Opening{
			ID:         st.NextOpeningID(kind),
			Kind:       kind,
			RoomID:     roomID,
			Pos:        pos,
			Horizontal: pos.Length >= pos.Breadth,
		}
		o.Name = o.ID
		if err := st.AddOpening(o); err != nil {
			result.Warnings = append(result.Warnings, err.Error())
		}
	}
}

// assignRoom scans rooms in detector-output order and returns the first one
// whose boundary is within wallProximity of the point along one axis while
// the point falls within the room's span on the orthogonal axis. All four
// edges are tested.
func assignRoom(st *model.EditorState, order []string, center model.Point2D) (string, bool) {
	for _, id := range order {
		room := st.Room(id)
		if room == nil {
			continue
		}
		if nearBoundary(room.Pos, center) {
			return id, true
		}
	}
	return "", false
}

// nearBoundary tests the point against the four edges of the rectangle.
func nearBoundary(r model.Rect, p model.Point2D) bool {
	withinX := p.X >= r.X && p.X <= r.Right()
	withinY := p.Y >= r.Y && p.Y <= r.Bottom()

	// Top and bottom edges
	if withinX && (abs(p.Y-r.Y) <= wallProximity || abs(p.Y-r.Bottom()) <= wallProximity) {
		return true
	}
	// Left and right edges
	if withinY && (abs(p.X-r.X) <= wallProximity || abs(p.X-r.Right()) <= wallProximity) {
		return true
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// coordRect normalizes a detected coordinate pair into drawing-space pixels.
func coordRect(c Coord, resize float64) model.Rect {
	a := model.Point2D{X: c.StartPoint[0] / resize, Y: c.StartPoint[1] / resize}
	b := model.Point2D{X: c.EndPoint[0] / resize, Y: c.EndPoint[1] / resize}
	return model.RectFromCorners(a, b)
}
