// Package export writes the shopping list to spreadsheet files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/view"
)

const sheet = "Sheet1"

var header = []string{"quantity", "unit", "description"}

// ToFile writes items to path. The format follows the extension: .xlsx or
// .csv.
func ToFile(path string, items []domain.ShoppingItem) error {
	var write func(io.Writer, []domain.ShoppingItem) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		write = XLSX
	case ".csv":
		write = CSV
	default:
		return fmt.Errorf("export: unsupported file type %q (want .xlsx or .csv)", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := write(f, items); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	return f.Close()
}

// XLSX writes items as a single-sheet workbook. Quantities are numeric
// cells; a missing quantity is left blank.
func XLSX(w io.Writer, items []domain.ShoppingItem) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	if err := sw.SetRow("A1", row); err != nil {
		return err
	}
	for i, it := range items {
		var qty interface{} = ""
		if it.Quantity != nil {
			qty = *it.Quantity
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, []interface{}{qty, it.Unit, it.Description}); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}

// CSV writes items with a header row. Quantities use the same fractions the
// page shows.
func CSV(w io.Writer, items []domain.ShoppingItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, it := range items {
		if err := cw.Write([]string{view.FormatQuantity(it.Quantity), it.Unit, it.Description}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
