package excel

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/oncograph/paperqa/internal/core/domain"
)

func TestBuildRendersResultsWorkbook(t *testing.T) {
	builder := NewBuilder()

	results := []domain.Row{
		{"model": "Random Forest", "metric": "Accuracy (%)", "accuracy": 99.99},
		{"model": "Support Vector Machine", "metric": "Accuracy (%)", "accuracy": 98.91},
	}
	best := []domain.Row{{"bestModel": "Random Forest"}}

	raw, err := builder.Build(results, best)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read sheet rows: %v", err)
	}
	if len(rows) < 2 {
		t.Fatalf("expected header and data rows, got %d rows", len(rows))
	}
	if rows[0][0] != "Model" || rows[0][2] != "Accuracy" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "Random Forest" {
		t.Fatalf("expected Random Forest first, got %v", rows[1])
	}

	bestValue, err := file.GetCellValue(sheetName, "B5")
	if err != nil {
		t.Fatalf("read best model cell: %v", err)
	}
	if bestValue != "Random Forest" {
		t.Fatalf("expected best model cell, got %q", bestValue)
	}
}

func TestBuildHandlesEmptyInputs(t *testing.T) {
	builder := NewBuilder()

	raw, err := builder.Build(nil, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer file.Close()

	if list := file.GetSheetList(); len(list) != 1 || list[0] != sheetName {
		t.Fatalf("unexpected sheet list %v", list)
	}
}
