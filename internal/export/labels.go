package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/obravim/floortrace/internal/model"
)

// LabelInfo holds the data encoded into each room label's QR code.
type LabelInfo struct {
	RoomID    string  `json:"id"`
	RoomName  string  `json:"name"`
	ZoneName  string  `json:"zone,omitempty"`
	LengthFt  float64 `json:"length_ft"`
	BreadthFt float64 `json:"breadth_ft"`
	AreaFt    float64 `json:"area_ft"`
	Windows   int     `json:"windows"`
	Doors     int     `json:"doors"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10
// rows per page). Each label cell is approximately 66.7mm x 25.4mm on US
// Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectLabelInfos extracts one label per room in plan order.
func CollectLabelInfos(st *model.EditorState) []LabelInfo {
	var labels []LabelInfo
	for _, room := range orderedRooms(st) {
		info := LabelInfo{
			RoomID:    room.ID,
			RoomName:  room.Name,
			LengthFt:  room.Dimension.LengthFt,
			BreadthFt: room.Dimension.BreadthFt,
			AreaFt:    room.Area(),
		}
		if z := st.Zone(room.Zone); z != nil {
			info.ZoneName = z.Name
		}
		for _, id := range room.Children {
			if o := st.Opening(id); o != nil {
				if o.Kind == model.KindDoor {
					info.Doors++
				} else {
					info.Windows++
				}
			}
		}
		labels = append(labels, info)
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded labels, one per room. Each
// label carries the room name, its footage, and a QR code encoding the
// room metadata as JSON. Labels are laid out on a standard label sheet
// format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, st *model.EditorState) error {
	labels := CollectLabelInfos(st)
	if len(labels) == 0 {
		return fmt.Errorf("no rooms to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.RoomName, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// truncateToWidth shortens the string rune by rune until it fits the given
// width with a trailing ellipsis, so multi-byte names are never cut
// mid-rune.
func truncateToWidth(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > w {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as a cutting guide.
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := "qr_" + info.RoomID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	pdf.CellFormat(textW, 4.5, truncateToWidth(pdf, info.RoomName, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.1f x %.1f ft (%.1f sq ft)", info.LengthFt, info.BreadthFt, info.AreaFt)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	detail := fmt.Sprintf("%s | %d win, %d door", info.RoomID, info.Windows, info.Doors)
	pdf.CellFormat(textW, 3, detail, "", 1, "L", false, 0, "")

	if info.ZoneName != "" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(100, 60, 160)
		pdf.CellFormat(textW, 3, info.ZoneName, "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
