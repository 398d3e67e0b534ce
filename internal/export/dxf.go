package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/obravim/floortrace/internal/model"
)

// ExportDXF writes the plan as a DXF drawing in feet. Rooms, windows,
// and doors land on separate layers so CAD tools can toggle them
// independently. The Y axis is flipped because DXF has Y up while the
// drawing canvas has Y down.
func ExportDXF(path string, st *model.EditorState) error {
	if len(st.Rooms) == 0 {
		return fmt.Errorf("no rooms to export")
	}

	d := dxf.NewDrawing()

	toFt := st.Scale.PxToFt
	rect := func(r model.Rect) [][]float64 {
		x1, y1 := toFt(r.X), -toFt(r.Y)
		x2, y2 := toFt(r.Right()), -toFt(r.Bottom())
		return [][]float64{{x1, y1}, {x2, y1}, {x2, y2}, {x1, y2}}
	}

	if _, err := d.AddLayer("ROOMS", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("cannot add layer: %w", err)
	}
	for _, room := range orderedRooms(st) {
		v := rect(room.Pos)
		if _, err := d.LwPolyline(true, v[0], v[1], v[2], v[3]); err != nil {
			return fmt.Errorf("room %s: %w", room.ID, err)
		}
	}

	if _, err := d.AddLayer("WINDOWS", color.Cyan, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("cannot add layer: %w", err)
	}
	if err := writeOpenings(d, st, rect, model.KindWindow); err != nil {
		return err
	}

	if _, err := d.AddLayer("DOORS", color.Yellow, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("cannot add layer: %w", err)
	}
	if err := writeOpenings(d, st, rect, model.KindDoor); err != nil {
		return err
	}

	return d.SaveAs(path)
}

// writeOpenings draws every opening of one kind on the current layer.
func writeOpenings(d *drawing.Drawing, st *model.EditorState, rect func(model.Rect) [][]float64, kind model.OpeningKind) error {
	for _, room := range orderedRooms(st) {
		for _, id := range room.Children {
			o := st.Opening(id)
			if o == nil || o.Kind != kind {
				continue
			}
			v := rect(o.Pos)
			if _, err := d.LwPolyline(true, v[0], v[1], v[2], v[3]); err != nil {
				return fmt.Errorf("opening %s: %w", o.ID, err)
			}
		}
	}
	return nil
}
