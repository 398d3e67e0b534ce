package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/obravim/floortrace/internal/model"
)

func TestExportXLSX_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.xlsx")

	st := buildTestState(t)
	if err := ExportXLSX(path, st); err != nil {
		t.Fatalf("ExportXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Rooms")
	if err != nil {
		t.Fatalf("cannot read Rooms sheet: %v", err)
	}
	// Header + rooms + one subtotal per zone + grand total.
	want := 1 + len(st.Rooms) + len(st.Zones) + 1
	if len(rows) != want {
		t.Fatalf("Rooms sheet has %d rows, want %d", len(rows), want)
	}
	if rows[0][0] != "Room ID" || rows[0][1] != "Name" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	// First data row is the first zoned room.
	if rows[1][1] != "Living Room" || rows[1][2] != "Day" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
	if rows[len(rows)-1][1] != "Grand total" {
		t.Errorf("last row should be the grand total: %v", rows[len(rows)-1])
	}

	openings, err := f.GetRows("Openings")
	if err != nil {
		t.Fatalf("cannot read Openings sheet: %v", err)
	}
	if len(openings) != len(st.Windoors)+1 {
		t.Errorf("Openings sheet has %d rows, want %d", len(openings), len(st.Windoors)+1)
	}
}

func TestExportXLSX_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := ExportXLSX(path, model.NewEditorState(model.DefaultScale())); err == nil {
		t.Fatal("expected error for empty state, got nil")
	}
}

func TestExportCSV_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.csv")

	st := buildTestState(t)
	if err := ExportCSV(path, st); err != nil {
		t.Fatalf("ExportCSV returned error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("cannot reopen file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("cannot parse CSV: %v", err)
	}

	// Header + rooms + totals + opening header + openings; the csv reader
	// skips the blank separator line.
	totals := len(st.Zones) + 1
	want := 1 + len(st.Rooms) + totals + 1 + len(st.Windoors)
	if len(records) != want {
		t.Fatalf("CSV has %d records, want %d", len(records), want)
	}
	if records[0][0] != "Room ID" {
		t.Errorf("unexpected header: %v", records[0])
	}
	openingHeaderRow := records[1+len(st.Rooms)+totals]
	if openingHeaderRow[0] != "Opening ID" {
		t.Errorf("unexpected opening header: %v", openingHeaderRow)
	}
}

func TestTotalRowsMatchMetrics(t *testing.T) {
	st := buildTestState(t)
	rows := totalRows(st)

	if len(rows) != len(st.Zones)+1 {
		t.Fatalf("got %d total rows, want %d", len(rows), len(st.Zones)+1)
	}
	for i, z := range st.Zones {
		wantArea := st.ZoneArea(z.ID)
		if got := rows[i][6]; got != fmtArea(wantArea) {
			t.Errorf("zone %s subtotal = %s, want %s", z.Name, got, fmtArea(wantArea))
		}
	}
	grand := rows[len(rows)-1]
	if grand[6] != fmtArea(st.TotalArea()) {
		t.Errorf("grand total = %s, want %s", grand[6], fmtArea(st.TotalArea()))
	}
}

func fmtArea(v float64) string { return fmt.Sprintf("%.2f", v) }

func TestScheduleRowsCountsOpenings(t *testing.T) {
	st := buildTestState(t)
	rows := scheduleRows(st)

	var found bool
	for _, row := range rows {
		if row[1] == "Living Room" {
			found = true
			if row[7] != "1" || row[8] != "1" {
				t.Errorf("Living Room should have 1 window and 1 door, got %s/%s", row[7], row[8])
			}
		}
	}
	if !found {
		t.Fatal("Living Room row missing")
	}
}
