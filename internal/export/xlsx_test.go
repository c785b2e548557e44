package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"purchases/internal/core"
	"purchases/internal/store"
)

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	records := core.Recalculate([]core.PurchaseRecord{{
		ID:            "id-1",
		Date:          core.ParseDate("2024-01-01"),
		CustomerName:  "Anna",
		CustomerPhone: "555",
		ProductName:   "Tea",
		UnitPrice:     core.Money{Cents: 1000},
		Quantity:      2,
	}}, 10)

	if err := WriteReport(path, records); err != nil {
		t.Fatalf("write report: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue(SheetName, "A1"); got != store.Columns[0] {
		t.Fatalf("A1 = %q, want %q", got, store.Columns[0])
	}
	if got, _ := f.GetCellValue(SheetName, "A2"); got != "2024-01-01" {
		t.Fatalf("A2 = %q, want date", got)
	}
	if got, _ := f.GetCellValue(SheetName, "G2"); got != "20" {
		t.Fatalf("G2 (line total) = %q, want 20", got)
	}
	if got, _ := f.GetCellValue(SheetName, "J2"); got != "id-1" {
		t.Fatalf("J2 (record id) = %q", got)
	}
}

func TestWriteReportEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := WriteReport(path, nil); err != nil {
		t.Fatalf("write report: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}
