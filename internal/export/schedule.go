package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/obravim/floortrace/internal/model"
)

// scheduleHeader is the column layout shared by the XLSX and CSV room
// schedules.
var scheduleHeader = []string{
	"Room ID", "Name", "Zone", "Length (ft)", "Breadth (ft)",
	"Ceiling (ft)", "Area (sq ft)", "Windows", "Doors",
}

var openingHeader = []string{
	"Opening ID", "Name", "Type", "Room", "Length (ft)", "Height (ft)",
}

// scheduleRows flattens the state into room schedule rows.
func scheduleRows(st *model.EditorState) [][]string {
	rows := make([][]string, 0, len(st.Rooms))
	for _, room := range orderedRooms(st) {
		zoneName := ""
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
		rows = append(rows, []string{
			room.ID,
			room.Name,
			zoneName,
			fmt.Sprintf("%.2f", room.Dimension.LengthFt),
			fmt.Sprintf("%.2f", room.Dimension.BreadthFt),
			fmt.Sprintf("%.2f", room.Dimension.CeilingFt),
			fmt.Sprintf("%.2f", room.Area()),
			strconv.Itoa(wins),
			strconv.Itoa(doors),
		})
	}
	return rows
}

// totalRows appends per-zone subtotals and the plan-wide total under the
// room rows.
func totalRows(st *model.EditorState) [][]string {
	var rows [][]string
	for _, z := range st.Zones {
		rows = append(rows, []string{
			"", z.Name + " total", z.Name, "", "", "",
			fmt.Sprintf("%.2f", st.ZoneArea(z.ID)), "", "",
		})
	}
	rows = append(rows, []string{
		"", "Grand total", "", "", "", "",
		fmt.Sprintf("%.2f", st.TotalArea()), "", "",
	})
	return rows
}

// openingRows flattens every opening, grouped under its parent room.
func openingRows(st *model.EditorState) [][]string {
	var rows [][]string
	for _, room := range orderedRooms(st) {
		for _, id := range room.Children {
			o := st.Opening(id)
			if o == nil {
				continue
			}
			kind := "Window"
			if o.Kind == model.KindDoor {
				kind = "Door"
			}
			rows = append(rows, []string{
				o.ID,
				o.Name,
				kind,
				room.Name,
				fmt.Sprintf("%.2f", o.Dimension.LengthFt),
				fmt.Sprintf("%.2f", o.Dimension.HeightFt),
			})
		}
	}
	return rows
}

// ExportXLSX writes the room schedule to an Excel workbook with a Rooms
// sheet and an Openings sheet.
func ExportXLSX(path string, st *model.EditorState) error {
	if len(st.Rooms) == 0 {
		return fmt.Errorf("no rooms to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const roomSheet = "Rooms"
	f.SetSheetName("Sheet1", roomSheet)
	rows := append(scheduleRows(st), totalRows(st)...)
	if err := writeSheet(f, roomSheet, scheduleHeader, rows); err != nil {
		return err
	}

	if rows := openingRows(st); len(rows) > 0 {
		const openingSheet = "Openings"
		if _, err := f.NewSheet(openingSheet); err != nil {
			return fmt.Errorf("cannot add sheet: %w", err)
		}
		if err := writeSheet(f, openingSheet, openingHeader, rows); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// writeSheet fills one worksheet with a bold header row and data rows.
func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string) error {
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("cannot create style: %w", err)
	}

	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, boldStyle); err != nil {
			return err
		}
	}

	for i, row := range rows {
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			// Numeric columns get real numbers so spreadsheet formulas work.
			if n, convErr := strconv.ParseFloat(val, 64); convErr == nil && col >= 3 {
				err = f.SetCellValue(sheet, cell, n)
			} else {
				err = f.SetCellValue(sheet, cell, val)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// ExportCSV writes the room schedule as comma-separated values, one row
// per room, with the opening rows appended after a blank line.
func ExportCSV(path string, st *model.EditorState) error {
	if len(st.Rooms) == 0 {
		return fmt.Errorf("no rooms to export")
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(scheduleHeader); err != nil {
		return err
	}
	if err := w.WriteAll(scheduleRows(st)); err != nil {
		return err
	}
	if err := w.WriteAll(totalRows(st)); err != nil {
		return err
	}

	if rows := openingRows(st); len(rows) > 0 {
		if err := w.Write([]string{}); err != nil {
			return err
		}
		if err := w.Write(openingHeader); err != nil {
			return err
		}
		if err := w.WriteAll(rows); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Close()
}
