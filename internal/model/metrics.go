package model

// ZoneArea returns the summed floor area in square feet of every room in
// the zone. Unknown zone ids yield 0.
func (st *EditorState) ZoneArea(zoneID string) float64 {
	z := st.Zone(zoneID)
	if z == nil {
		return 0
	}
	var total float64
	for _, id := range z.RoomIDs {
		if r := st.Rooms[id]; r != nil {
			total += r.Area()
		}
	}
	return total
}

// OrphanArea returns the summed floor area of the rooms not yet grouped
// into any zone.
func (st *EditorState) OrphanArea() float64 {
	var total float64
	for _, id := range st.OrphanRoomIDs {
		if r := st.Rooms[id]; r != nil {
			total += r.Area()
		}
	}
	return total
}

// TotalArea returns the summed floor area of every room on the plan, zoned
// and orphaned alike.
func (st *EditorState) TotalArea() float64 {
	var total float64
	for _, r := range st.Rooms {
		total += r.Area()
	}
	return total
}

// OpeningCount returns the number of windows and doors across the plan.
func (st *EditorState) OpeningCount() (windows, doors int) {
	for _, o := range st.Windoors {
		if o.Kind == KindDoor {
			doors++
		} else {
			windows++
		}
	}
	return windows, doors
}
