package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/oncograph/paperqa/internal/core/domain"
)

const sheetName = "Model Results"

// Builder renders model accuracy rows into an xlsx workbook.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Build(results []domain.Row, best []domain.Row) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	index, err := file.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create results sheet: %w", err)
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	header := []any{"Model", "Metric", "Accuracy"}
	if err := file.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i, row := range results {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{
			stringField(row, "model"),
			stringField(row, "metric"),
			row["accuracy"],
		}
		if err := file.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write result row %d: %w", i, err)
		}
	}

	bestCell := fmt.Sprintf("A%d", len(results)+3)
	bestRow := []any{"Best model", bestModelName(best)}
	if err := file.SetSheetRow(sheetName, bestCell, &bestRow); err != nil {
		return nil, fmt.Errorf("write best model row: %w", err)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func bestModelName(best []domain.Row) string {
	for _, row := range best {
		if name := stringField(row, "bestModel"); name != "" {
			return name
		}
	}
	return ""
}

func stringField(row domain.Row, key string) string {
	if value, ok := row[key].(string); ok {
		return value
	}
	return ""
}
