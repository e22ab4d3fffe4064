package parser

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func createTestXLSX(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "bank.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestXLSXParser(t *testing.T) {
	path := createTestXLSX(t, [][]interface{}{
		{"1.", "Which is larger?"},
		{"A.", "2 < 3"},
		{},
		{"B.", "  ", "five"},
	})

	res, err := (&XLSXParser{}).Parse(context.Background(), path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []string{"1. Which is larger?", "A. 2 &lt; 3", "B. five"}
	if len(res.Paragraphs) != len(want) {
		t.Fatalf("got %q, want %q", res.Paragraphs, want)
	}
	for i := range want {
		if res.Paragraphs[i] != want[i] {
			t.Errorf("paragraph[%d] = %q, want %q", i, res.Paragraphs[i], want[i])
		}
	}
}

func TestXLSXParserEmptyWorkbook(t *testing.T) {
	path := createTestXLSX(t, nil)
	if _, err := (&XLSXParser{}).Parse(context.Background(), path); err == nil {
		t.Error("expected error for workbook without data")
	}
}
