package editor

import (
	"fmt"
	"sort"

	"github.com/obravim/floortrace/internal/model"
)

// GroupSelected creates a new zone from the currently selected unzoned
// rooms. Membership moves atomically: the ids leave the orphan list, the
// rooms take the zone id and color, and selection is cleared on every
// affected room. Returns nil when no selected unzoned room exists.
func (ed *Editor) GroupSelected() *model.Zone {
	st := ed.State

	var members []string
	for _, id := range st.OrphanRoomIDs {
		if r := st.Room(id); r != nil && r.Selected && r.Zone == "" {
			members = append(members, id)
		}
	}
	if len(members) == 0 {
		return nil
	}

	color := st.NextZoneColor()
	zone := &model.Zone{
		ID:      st.NextZoneID(),
		Color:   color,
		RoomIDs: members,
	}
	zone.Name = fmt.Sprintf("Zone%d", st.ZoneSeq)
	st.Zones = append(st.Zones, zone)

	remaining := st.OrphanRoomIDs[:0]
	memberSet := make(map[string]bool, len(members))
	for _, id := range members {
		memberSet[id] = true
	}
	for _, id := range st.OrphanRoomIDs {
		if !memberSet[id] {
			remaining = append(remaining, id)
		}
	}
	st.OrphanRoomIDs = remaining

	for _, id := range members {
		room := st.Room(id)
		room.Zone = zone.ID
		room.ZoneColor = color
	}
	for _, r := range st.Rooms {
		r.Selected = false
	}
	return zone
}

// DeleteZone dissolves the zone: its rooms return to the orphan list with
// their zone fields cleared, the orphan list is re-sorted by room name, and
// the zone record is dropped. Room count is unchanged.
func (ed *Editor) DeleteZone(zoneID string) error {
	st := ed.State
	zone := st.Zone(zoneID)
	if zone == nil {
		return fmt.Errorf("no such zone %s", zoneID)
	}

	for _, id := range zone.RoomIDs {
		if room := st.Room(id); room != nil {
			room.Zone = ""
			room.ZoneColor = ""
		}
		st.OrphanRoomIDs = append(st.OrphanRoomIDs, id)
	}
	sort.SliceStable(st.OrphanRoomIDs, func(i, j int) bool {
		a, b := st.Room(st.OrphanRoomIDs[i]), st.Room(st.OrphanRoomIDs[j])
		if a == nil || b == nil {
			return a != nil
		}
		return a.Name < b.Name
	})

	for i, z := range st.Zones {
		if z.ID == zoneID {
			st.Zones = append(st.Zones[:i], st.Zones[i+1:]...)
			break
		}
	}
	return nil
}

// ReparentRoom moves a room between zone lists or back to the orphan list
// via drag-and-drop. beforeID positions the room before an existing entry
// of the target list; empty appends. Pure list membership — geometry is
// never altered.
func (ed *Editor) ReparentRoom(roomID, targetZoneID, beforeID string) error {
	return ed.State.MoveRoomToZone(roomID, targetZoneID, beforeID)
}
