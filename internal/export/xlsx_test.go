package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"redheart/internal/domain"
	"redheart/internal/export"
)

func TestFilenameUsesUTCDate(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	at := time.Date(2024, 5, 2, 3, 0, 0, 0, ist)
	if got := export.Filename("P-9", at); got != "Product_Images_P-9_2024-05-01.xlsx" {
		t.Fatalf("Filename = %s", got)
	}
	if got := export.Filename(`RH/001\b`, at); got != "Product_Images_RH-001-b_2024-05-01.xlsx" {
		t.Fatalf("Filename with separators = %s", got)
	}
}

func TestWriteProductImages(t *testing.T) {
	set := domain.NewSlotSet("P1").Record("P1", domain.Slot2nd, "https://cdn.test/2.png")

	var buf bytes.Buffer
	if err := export.WriteProductImages(&buf, set); err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != export.SheetName {
		t.Fatalf("sheets = %v", sheets)
	}
	rows, err := f.GetRows(export.SheetName)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"Product ID", "1st Image", "2nd Image", "3rd Image", "4th Image"},
		{"P1", domain.NotUploaded, "https://cdn.test/2.png", domain.NotUploaded, domain.NotUploaded},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %q", rows)
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Fatalf("cell %d,%d = %q, want %q", i, j, rows[i][j], want[i][j])
			}
		}
	}
	if w, err := f.GetColWidth(export.SheetName, "C"); err != nil || w != 50 {
		t.Fatalf("width = %v %v", w, err)
	}
}
