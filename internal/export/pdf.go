// Package export writes a digitized floor plan to the formats the
// take-off workflow downstream expects: a printable PDF, a room
// schedule in XLSX or CSV, a DXF drawing, and QR-coded room labels.
package export

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/obravim/floortrace/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// rgb is an 8-bit color triple for fpdf fill and draw calls.
type rgb struct {
	R, G, B int
}

// hexRGB parses a #RRGGBB stroke or zone color. Unparseable values fall
// back to a neutral grey so a bad color never aborts an export.
func hexRGB(s string) rgb {
	if len(s) != 7 || s[0] != '#' {
		return rgb{R: 120, G: 120, B: 120}
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return rgb{R: 120, G: 120, B: 120}
	}
	return rgb{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}
}

// planBounds returns the bounding rectangle of every room in drawing
// space, with a small margin so wall-straddling openings stay inside.
func planBounds(st *model.EditorState) (model.Rect, bool) {
	first := true
	var minX, minY, maxX, maxY float64
	for _, r := range st.Rooms {
		if first {
			minX, minY, maxX, maxY = r.Pos.X, r.Pos.Y, r.Pos.Right(), r.Pos.Bottom()
			first = false
			continue
		}
		minX = math.Min(minX, r.Pos.X)
		minY = math.Min(minY, r.Pos.Y)
		maxX = math.Max(maxX, r.Pos.Right())
		maxY = math.Max(maxY, r.Pos.Bottom())
	}
	if first {
		return model.Rect{}, false
	}
	const pad = model.WindowThickness
	return model.Rect{
		X: minX - pad, Y: minY - pad,
		Length: maxX - minX + 2*pad, Breadth: maxY - minY + 2*pad,
	}, true
}

// ExportPDF renders the floor plan on one page and a zone summary on a
// second. Rooms are filled with their zone color, openings drawn on top,
// and each room is annotated with its name and footage.
func ExportPDF(path string, st *model.EditorState, planName string) error {
	bounds, ok := planBounds(st)
	if !ok {
		return fmt.Errorf("no rooms to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderPlanPage(pdf, st, bounds, planName)

	pdf.AddPage()
	renderSummaryPage(pdf, st, planName)

	return pdf.OutputFileAndClose(path)
}

// renderPlanPage draws every room and opening scaled to fit the page.
func renderPlanPage(pdf *fpdf.Fpdf, st *model.EditorState, bounds model.Rect, planName string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, planName+" - Floor Plan", "", 0, "L", false, 0, "")

	windows, doors := st.OpeningCount()
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Rooms: %d | Zones: %d | Windows: %d | Doors: %d | Total area: %.1f sq ft",
		len(st.Rooms), len(st.Zones), windows, doors, st.TotalArea())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom

	scale := math.Min(drawWidth/bounds.Length, drawHeight/bounds.Breadth)
	offsetX := marginLeft + (drawWidth-bounds.Length*scale)/2
	offsetY := drawAreaTop + (drawHeight-bounds.Breadth*scale)/2

	toPage := func(r model.Rect) (x, y, w, h float64) {
		return offsetX + (r.X-bounds.X)*scale,
			offsetY + (r.Y-bounds.Y)*scale,
			r.Length * scale, r.Breadth * scale
	}

	// Rooms first: zoned rooms in zone order, orphans after, matching the
	// canvas draw order.
	for _, room := range orderedRooms(st) {
		x, y, w, h := toPage(room.Pos)
		fill := hexRGB(room.DisplayColor())
		pdf.SetFillColor(fill.R, fill.G, fill.B)
		pdf.SetDrawColor(40, 40, 40)
		pdf.SetLineWidth(0.4)
		pdf.Rect(x, y, w, h, "FD")

		if w > 18 && h > 10 {
			pdf.SetFont("Helvetica", "B", roomFontSize(w, h))
			pdf.SetTextColor(255, 255, 255)
			name := room.Name
			nameW := pdf.GetStringWidth(name)
			if nameW < w-2 {
				pdf.SetXY(x+(w-nameW)/2, y+h/2-4)
				pdf.CellFormat(nameW, 4, name, "", 0, "C", false, 0, "")
			}
			dims := fmt.Sprintf("%.1f x %.1f ft", room.Dimension.LengthFt, room.Dimension.BreadthFt)
			pdf.SetFont("Helvetica", "", roomFontSize(w, h)-1)
			dimsW := pdf.GetStringWidth(dims)
			if h > 16 && dimsW < w-2 {
				pdf.SetXY(x+(w-dimsW)/2, y+h/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	// Openings on top of the walls they sit on.
	for _, room := range orderedRooms(st) {
		for _, childID := range room.Children {
			o := st.Opening(childID)
			if o == nil {
				continue
			}
			x, y, w, h := toPage(o.Pos)
			if o.Kind == model.KindDoor {
				pdf.SetFillColor(255, 255, 255)
				pdf.SetDrawColor(180, 120, 40)
			} else {
				pdf.SetFillColor(200, 230, 255)
				pdf.SetDrawColor(40, 90, 200)
			}
			pdf.SetLineWidth(0.3)
			pdf.Rect(x, y, w, h, "FD")
		}
	}

	pdf.SetTextColor(0, 0, 0)
	drawLegend(pdf, st)
}

// drawLegend renders a zone color key along the bottom margin.
func drawLegend(pdf *fpdf.Fpdf, st *model.EditorState) {
	if len(st.Zones) == 0 {
		return
	}
	y := pageHeight - marginBottom + 2
	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft
	for _, z := range st.Zones {
		col := hexRGB(z.Color)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, y, 3, 3, "F")
		label := fmt.Sprintf("%s (%.1f sq ft)", z.Name, st.ZoneArea(z.ID))
		pdf.SetXY(xPos+4, y-0.5)
		pdf.CellFormat(pdf.GetStringWidth(label), 4, label, "", 0, "L", false, 0, "")
		xPos += pdf.GetStringWidth(label) + 10
		if xPos > pageWidth-marginRight-30 {
			break
		}
	}
}

// renderSummaryPage draws the per-zone and per-room breakdown tables.
func renderSummaryPage(pdf *fpdf.Fpdf, st *model.EditorState, planName string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, planName+" - Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Zones", "", 0, "L", false, 0, "")
	y += 9

	zoneCols := []float64{50, 25, 40, 40}
	y = drawTableRow(pdf, y, zoneCols, []string{"Zone", "Rooms", "Area (sq ft)", "Share"}, true, false)

	total := st.TotalArea()
	for i, z := range st.Zones {
		area := st.ZoneArea(z.ID)
		share := "-"
		if total > 0 {
			share = fmt.Sprintf("%.1f%%", area/total*100)
		}
		y = drawTableRow(pdf, y, zoneCols, []string{
			z.Name,
			strconv.Itoa(len(z.RoomIDs)),
			fmt.Sprintf("%.1f", area),
			share,
		}, false, i%2 == 0)
	}
	if n := len(st.OrphanRoomIDs); n > 0 {
		area := st.OrphanArea()
		share := "-"
		if total > 0 {
			share = fmt.Sprintf("%.1f%%", area/total*100)
		}
		y = drawTableRow(pdf, y, zoneCols, []string{
			"(unzoned)", strconv.Itoa(n), fmt.Sprintf("%.1f", area), share,
		}, false, len(st.Zones)%2 == 0)
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Rooms", "", 0, "L", false, 0, "")
	y += 9

	roomCols := []float64{20, 50, 40, 35, 35, 25, 25}
	y = drawTableRow(pdf, y, roomCols,
		[]string{"ID", "Name", "Zone", "L x B (ft)", "Area (sq ft)", "Windows", "Doors"}, true, false)

	for i, room := range orderedRooms(st) {
		zoneName := "-"
		if z := st.Zone(room.Zone); z != nil {
			zoneName = z.Name
		}
		var wins, doors int
		for _, id := range room.Children {
			if o := st.Opening(id); o != nil {
				if o.Kind == model.KindDoor {
					doors++
				} else {
					wins++
				}
			}
		}
		y = drawTableRow(pdf, y, roomCols, []string{
			room.ID,
			room.Name,
			zoneName,
			fmt.Sprintf("%.1f x %.1f", room.Dimension.LengthFt, room.Dimension.BreadthFt),
			fmt.Sprintf("%.1f", room.Area()),
			strconv.Itoa(wins),
			strconv.Itoa(doors),
		}, false, i%2 == 0)
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
			y = drawTableRow(pdf, y, roomCols,
				[]string{"ID", "Name", "Zone", "L x B (ft)", "Area (sq ft)", "Windows", "Doors"}, true, false)
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	scaleNote := fmt.Sprintf("Scale factor: %.6f in/px | Generated by FloorTrace", st.Scale.Factor)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, scaleNote, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawTableRow renders one row of a bordered table and returns the next y.
func drawTableRow(pdf *fpdf.Fpdf, y float64, widths []float64, cells []string, header, shaded bool) float64 {
	if header {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
	} else {
		pdf.SetFont("Helvetica", "", 9)
		if shaded {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
	}
	xPos := marginLeft
	for i, cell := range cells {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(widths[i], 6, cell, "1", 0, "C", true, 0, "")
		xPos += widths[i]
	}
	return y + 6
}

// orderedRooms returns rooms in the stable zoned-then-orphans order used
// by the canvas, the exports, and the schedule.
func orderedRooms(st *model.EditorState) []*model.Room {
	rooms := make([]*model.Room, 0, len(st.Rooms))
	for _, z := range st.Zones {
		for _, id := range z.RoomIDs {
			if r := st.Room(id); r != nil {
				rooms = append(rooms, r)
			}
		}
	}
	for _, id := range st.OrphanRoomIDs {
		if r := st.Room(id); r != nil {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// roomFontSize picks a font size that fits the rendered room rectangle.
func roomFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 9
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
