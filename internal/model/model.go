// Package model defines the geometric entities of a digitized floor plan —
// rooms, openings (windows and doors), and zones — together with the
// EditorState aggregate that owns them and keeps pixel geometry, derived
// real-world dimensions, and zone membership consistent.
package model

import "fmt"

// Pixel-space limits and tolerances used by placement and editing.
const (
	// WindowThickness is the fixed short-axis extent of a window, in pixels.
	WindowThickness = 10.0
	// MaxDoorSize caps both extents of a door, which is modeled as a
	// roughly square cut-out.
	MaxDoorSize = 36.0
	// WindowProximity and DoorProximity are the wall-proximity tolerances
	// for placing an opening on a room boundary.
	WindowProximity = 20.0
	DoorProximity   = 30.0
	// MinRoomSize is the smallest extent a room may be resized to.
	MinRoomSize = 10.0
	// MinRoomDraw rejects degenerate room rectangles whose corners are
	// closer than this.
	MinRoomDraw = 5.0
	// MinOpeningArea rejects openings drawn smaller than this area.
	MinOpeningArea = 100.0
)

// OpeningKind discriminates windows from doors.
type OpeningKind string

const (
	KindWindow OpeningKind = "window"
	KindDoor   OpeningKind = "door"
)

// Proximity returns the wall-proximity tolerance for this kind of opening.
func (k OpeningKind) Proximity() float64 {
	if k == KindDoor {
		return DoorProximity
	}
	return WindowProximity
}

// WallAxis identifies which wall orientation a point was found near.
type WallAxis int

const (
	WallNone       WallAxis = iota // not near any wall
	WallHorizontal                 // top or bottom edge
	WallVertical                   // left or right edge
)

// RoomDimension holds the derived real-world measurements of a room.
// LengthFt and BreadthFt are recomputed from the pixel geometry on every
// change; AreaFt is denormalized and must never be trusted standalone.
type RoomDimension struct {
	LengthFt  float64 `json:"length_ft"`
	BreadthFt float64 `json:"breadth_ft"`
	CeilingFt float64 `json:"ceiling_ft"`
	AreaFt    float64 `json:"area_ft"`
}

// OpeningDimension holds the derived real-world measurements of an opening.
// LengthFt is the extent along the opening's long axis.
type OpeningDimension struct {
	LengthFt float64 `json:"length_ft"`
	HeightFt float64 `json:"height_ft"`
}

// Room is an axis-aligned room rectangle. Zone is the id of the owning zone,
// or empty while the room is in the orphan list — exactly one of the two
// holds at all times. Children lists the ids of the openings on this room's
// walls, in creation order.
type Room struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Pos       Rect          `json:"pos"`
	Dimension RoomDimension `json:"dimension"`
	Stroke    string        `json:"stroke"`
	ZoneColor string        `json:"zone_color,omitempty"`
	Zone      string        `json:"zone,omitempty"`
	Selected  bool          `json:"-"`
	Children  []string      `json:"children"`
	Expanded  bool          `json:"-"`
}

// SyncDimension recomputes the derived feet measurements from the room's
// pixel geometry.
func (r *Room) SyncDimension(s Scale) {
	r.Dimension.LengthFt = s.PxToFt(r.Pos.Length)
	r.Dimension.BreadthFt = s.PxToFt(r.Pos.Breadth)
	r.Dimension.AreaFt = r.Dimension.LengthFt * r.Dimension.BreadthFt
}

// Area returns the room's floor area in square feet, always recomputed from
// the current dimensions.
func (r *Room) Area() float64 {
	return r.Dimension.LengthFt * r.Dimension.BreadthFt
}

// DisplayColor returns the zone color when the room is zoned, otherwise the
// room's own stroke.
func (r *Room) DisplayColor() string {
	if r.ZoneColor != "" {
		return r.ZoneColor
	}
	return r.Stroke
}

// Opening is a window or door owned by exactly one room. Horizontal is true
// when the opening's long axis runs along a horizontal wall, i.e. it sits on
// the room's top or bottom edge.
type Opening struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Kind       OpeningKind      `json:"type"`
	RoomID     string           `json:"room_id"`
	Pos        Rect             `json:"pos"`
	Dimension  OpeningDimension `json:"dimension"`
	Stroke     string           `json:"stroke"`
	Horizontal bool             `json:"horizontal"`
	Selected   bool             `json:"-"`
}

// LongExtent returns the pixel extent along the opening's long axis.
func (o *Opening) LongExtent() float64 {
	if o.Horizontal {
		return o.Pos.Length
	}
	return o.Pos.Breadth
}

// SyncDimension recomputes the derived feet measurement of the long axis.
func (o *Opening) SyncDimension(s Scale) {
	o.Dimension.LengthFt = s.PxToFt(o.LongExtent())
}

// Zone is a named, colored grouping of rooms. RoomIDs holds references into
// EditorState.Rooms, never copies.
type Zone struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Color    string   `json:"color"`
	RoomIDs  []string `json:"room_ids"`
	Expanded bool     `json:"-"`
}

// ZonePalette is the fixed color cycle assigned to newly created zones.
var ZonePalette = []string{
	"#873EFD", // purple
	"#56BC49", // green
	"#E13131", // red
	"#2A7FFF", // blue
	"#FF9F2A", // orange
	"#00BCD4", // cyan
	"#E91E8C", // magenta
	"#795548", // brown
}

// EditorState is the aggregate owning every room, opening, and zone of one
// plan. Rooms and Windoors are the single source of truth for entity
// records; Zones and OrphanRoomIDs hold membership by id. Every room id
// appears in exactly one zone's RoomIDs or in OrphanRoomIDs, never both.
// Id generation uses monotonic per-kind counters so that deleting an entity
// can never cause an id to be reissued.
type EditorState struct {
	Zones         []*Zone             `json:"zones"`
	OrphanRoomIDs []string            `json:"orphan_room_ids"`
	Rooms         map[string]*Room    `json:"rooms"`
	Windoors      map[string]*Opening `json:"windoors"`
	Scale         Scale               `json:"scale"`

	RoomSeq   int `json:"room_seq"`
	WindowSeq int `json:"window_seq"`
	DoorSeq   int `json:"door_seq"`
	ZoneSeq   int `json:"zone_seq"`
}

// NewEditorState returns an empty state with the given scale.
func NewEditorState(s Scale) *EditorState {
	return &EditorState{
		Rooms:    make(map[string]*Room),
		Windoors: make(map[string]*Opening),
		Scale:    s,
	}
}

// NextRoomID reserves and returns a fresh room id.
func (st *EditorState) NextRoomID() string {
	st.RoomSeq++
	return fmt.Sprintf("R%d", st.RoomSeq)
}

// NextOpeningID reserves and returns a fresh opening id for the given kind.
func (st *EditorState) NextOpeningID(kind OpeningKind) string {
	if kind == KindDoor {
		st.DoorSeq++
		return fmt.Sprintf("D%d", st.DoorSeq)
	}
	st.WindowSeq++
	return fmt.Sprintf("W%d", st.WindowSeq)
}

// NextZoneID reserves and returns a fresh zone id.
func (st *EditorState) NextZoneID() string {
	st.ZoneSeq++
	return fmt.Sprintf("Z%d", st.ZoneSeq)
}

// NextZoneColor returns the palette color for the next zone to be created.
func (st *EditorState) NextZoneColor() string {
	return ZonePalette[st.ZoneSeq%len(ZonePalette)]
}

// AddRoom stores the room and appends its id to the orphan list. The room's
// dimensions are synced to the current scale.
func (st *EditorState) AddRoom(r *Room) {
	r.SyncDimension(st.Scale)
	st.Rooms[r.ID] = r
	st.OrphanRoomIDs = append(st.OrphanRoomIDs, r.ID)
}

// AddOpening stores the opening and appends its id to the owning room's
// children. The owning room must exist.
func (st *EditorState) AddOpening(o *Opening) error {
	room, ok := st.Rooms[o.RoomID]
	if !ok {
		return fmt.Errorf("opening %s: no such room %s", o.ID, o.RoomID)
	}
	o.SyncDimension(st.Scale)
	st.Windoors[o.ID] = o
	room.Children = append(room.Children, o.ID)
	return nil
}

// Room returns the room with the given id, or nil.
func (st *EditorState) Room(id string) *Room { return st.Rooms[id] }

// Opening returns the opening with the given id, or nil.
func (st *EditorState) Opening(id string) *Opening { return st.Windoors[id] }

// Zone returns the zone with the given id, or nil.
func (st *EditorState) Zone(id string) *Zone {
	for _, z := range st.Zones {
		if z.ID == id {
			return z
		}
	}
	return nil
}

// Siblings returns the other openings on the same room as the given opening.
func (st *EditorState) Siblings(o *Opening) []*Opening {
	room := st.Rooms[o.RoomID]
	if room == nil {
		return nil
	}
	var sibs []*Opening
	for _, id := range room.Children {
		if id == o.ID {
			continue
		}
		if sib := st.Windoors[id]; sib != nil {
			sibs = append(sibs, sib)
		}
	}
	return sibs
}

// SelectedRooms returns the currently selected rooms in a stable order.
func (st *EditorState) SelectedRooms() []*Room {
	var sel []*Room
	for _, id := range st.roomOrder() {
		if r := st.Rooms[id]; r != nil && r.Selected {
			sel = append(sel, r)
		}
	}
	return sel
}

// roomOrder walks zone membership then orphans, yielding every room id once.
func (st *EditorState) roomOrder() []string {
	ids := make([]string, 0, len(st.Rooms))
	for _, z := range st.Zones {
		ids = append(ids, z.RoomIDs...)
	}
	ids = append(ids, st.OrphanRoomIDs...)
	return ids
}

// SetScale replaces the conversion factors and recomputes every derived
// dimension, so no stale feet values survive a recalibration.
func (st *EditorState) SetScale(s Scale) {
	st.Scale = s
	for _, r := range st.Rooms {
		r.SyncDimension(s)
	}
	for _, o := range st.Windoors {
		o.SyncDimension(s)
	}
}

// SetResize updates the native-to-display ratio when the on-screen image
// size changes. Stored geometry lives in drawing space, so every rectangle
// is remapped by the old/new ratio; real-world dimensions are unaffected by
// construction but are re-synced anyway.
func (st *EditorState) SetResize(resize float64) {
	if resize <= 0 || st.Scale.Resize <= 0 {
		return
	}
	ratio := st.Scale.Resize / resize
	for _, r := range st.Rooms {
		r.Pos = Rect{X: r.Pos.X * ratio, Y: r.Pos.Y * ratio, Length: r.Pos.Length * ratio, Breadth: r.Pos.Breadth * ratio}
	}
	for _, o := range st.Windoors {
		o.Pos = Rect{X: o.Pos.X * ratio, Y: o.Pos.Y * ratio, Length: o.Pos.Length * ratio, Breadth: o.Pos.Breadth * ratio}
	}
	st.SetScale(Scale{Factor: st.Scale.Factor, Resize: resize})
}

// removeRoomID deletes the id from a membership list, returning the new list
// and whether it was found.
func removeRoomID(ids []string, id string) ([]string, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}

// detachRoom removes the room's id from whichever membership list currently
// holds it and clears the room's zone fields. The room is left unlisted;
// callers must re-home it before returning.
func (st *EditorState) detachRoom(id string) {
	if ids, ok := removeRoomID(st.OrphanRoomIDs, id); ok {
		st.OrphanRoomIDs = ids
	} else {
		for _, z := range st.Zones {
			if ids, ok := removeRoomID(z.RoomIDs, id); ok {
				z.RoomIDs = ids
				break
			}
		}
	}
	if r := st.Rooms[id]; r != nil {
		r.Zone = ""
		r.ZoneColor = ""
	}
}

// MoveRoomToZone moves a room into the given zone (or back to the orphan
// list when zoneID is empty), inserting before the room with id beforeID
// when that id is present in the target list, else appending. Membership is
// updated atomically with the room's zone fields; pixel geometry is never
// touched.
func (st *EditorState) MoveRoomToZone(roomID, zoneID, beforeID string) error {
	room, ok := st.Rooms[roomID]
	if !ok {
		return fmt.Errorf("no such room %s", roomID)
	}
	var target *Zone
	if zoneID != "" {
		if target = st.Zone(zoneID); target == nil {
			return fmt.Errorf("no such zone %s", zoneID)
		}
	}

	st.detachRoom(roomID)

	if target == nil {
		st.OrphanRoomIDs = insertRoomID(st.OrphanRoomIDs, roomID, beforeID)
		return nil
	}
	target.RoomIDs = insertRoomID(target.RoomIDs, roomID, beforeID)
	room.Zone = target.ID
	room.ZoneColor = target.Color
	return nil
}

// insertRoomID inserts id before beforeID, or appends when beforeID is not
// in the list.
func insertRoomID(ids []string, id, beforeID string) []string {
	for i, v := range ids {
		if v == beforeID {
			ids = append(ids, "")
			copy(ids[i+1:], ids[i:])
			ids[i] = id
			return ids
		}
	}
	return append(ids, id)
}

// DeleteOpening destroys the opening and unlinks it from its room.
func (st *EditorState) DeleteOpening(id string) {
	o, ok := st.Windoors[id]
	if !ok {
		return
	}
	if room := st.Rooms[o.RoomID]; room != nil {
		room.Children, _ = removeRoomID(room.Children, id)
	}
	delete(st.Windoors, id)
}

// DeleteRoom destroys the room, its openings, and its membership entry.
// Delete is destroy, not unlink: no unreachable records are left behind.
func (st *EditorState) DeleteRoom(id string) {
	room, ok := st.Rooms[id]
	if !ok {
		return
	}
	for _, childID := range room.Children {
		delete(st.Windoors, childID)
	}
	st.detachRoom(id)
	delete(st.Rooms, id)
}
