package editor

import (
	"fmt"
	"regexp"

	"github.com/obravim/floortrace/internal/model"
)

// nameRe restricts display names to alphanumerics, space, hyphen and
// underscore.
var nameRe = regexp.MustCompile(`^[\w\- ]+$`)

// EditForm carries the values of the edit dialog for a room, a zone, or an
// opening. Dimensions are in feet. Breadth applies to rooms only.
type EditForm struct {
	ItemID  string
	Name    string
	Length  float64
	Breadth float64
	Height  float64
	IsRoom  bool
	IsZone  bool
}

// Apply writes the form back to the target entity. Dimension edits invert
// the feet derivation into pixel extents, so re-reading the derived feet
// yields the entered value. A form with required numeric fields missing is
// a silent no-op (applied=false, no error); an invalid name is a reported
// error with no state change.
func (ed *Editor) Apply(form EditForm) (applied bool, err error) {
	if form.Name == "" {
		return false, nil
	}
	if !nameRe.MatchString(form.Name) {
		return false, ErrInvalidName
	}

	if form.IsZone {
		zone := ed.State.Zone(form.ItemID)
		if zone == nil {
			return false, fmt.Errorf("no such zone %s", form.ItemID)
		}
		zone.Name = form.Name
		return true, nil
	}

	if form.IsRoom {
		room := ed.State.Room(form.ItemID)
		if room == nil {
			return false, fmt.Errorf("no such room %s", form.ItemID)
		}
		if form.Length <= 0 || form.Breadth <= 0 || form.Height <= 0 {
			return false, nil
		}
		scale := ed.State.Scale
		room.Name = form.Name
		room.Pos.Length = scale.FtToPx(form.Length)
		room.Pos.Breadth = scale.FtToPx(form.Breadth)
		room.Dimension.CeilingFt = form.Height
		room.SyncDimension(scale)
		return true, nil
	}

	o := ed.State.Opening(form.ItemID)
	if o == nil {
		return false, fmt.Errorf("no such opening %s", form.ItemID)
	}
	if form.Length <= 0 || form.Height <= 0 {
		return false, nil
	}
	scale := ed.State.Scale
	longPx := scale.FtToPx(form.Length)
	if o.Kind == model.KindDoor && longPx > model.MaxDoorSize {
		longPx = model.MaxDoorSize
	}
	proposed := o.Pos
	if o.Kind == model.KindDoor {
		proposed.Length = longPx
		proposed.Breadth = longPx
	} else if o.Horizontal {
		proposed.Length = longPx
	} else {
		proposed.Breadth = longPx
	}
	if ed.overlapsSibling(o, proposed) {
		return false, ErrOpeningOverlap
	}
	o.Name = form.Name
	o.Pos = proposed
	o.Dimension.HeightFt = form.Height
	o.SyncDimension(scale)
	return true, nil
}
