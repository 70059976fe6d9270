package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tealeg/xlsx/v3"

	"bagsync/internal/domain/inventory"
)

// RenderXLSX produces the same two stacked sections as RenderCSV on a single
// spreadsheet tab, for recipients who want a workbook instead of plain text.
func RenderXLSX(bag inventory.Bag, items []inventory.Item) ([]byte, error) {
	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet("Bag")
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}

	addRow(sheet, bagHeader)
	addRow(sheet, bagRow(bag))
	sheet.AddRow()
	addRow(sheet, itemHeader)
	for _, it := range items {
		addRow(sheet, itemRow(it))
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSX renders the bag into an XLSX file under dir and returns its path.
func WriteXLSX(dir string, bag inventory.Bag, items []inventory.Item) (string, error) {
	data, err := RenderXLSX(bag, items)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(bag.Name, time.Now(), "xlsx"))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}
	return path, nil
}

func addRow(sheet *xlsx.Sheet, fields []string) {
	row := sheet.AddRow()
	for _, field := range fields {
		row.AddCell().SetString(field)
	}
}
