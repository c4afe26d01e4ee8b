// Package export writes the product image spreadsheet.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"redheart/internal/domain"
)

const SheetName = "Product Images"

// Filename is Product_Images_{productId}_{YYYY-MM-DD}.xlsx. Path separators in
// the product id become dashes so the name survives as one download filename.
func Filename(productID string, now time.Time) string {
	safe := strings.NewReplacer("/", "-", `\`, "-").Replace(productID)
	return fmt.Sprintf("Product_Images_%s_%s.xlsx", safe, now.UTC().Format("2006-01-02"))
}

// WriteProductImages writes a single-row workbook for set to w.
func WriteProductImages(w io.Writer, set domain.SlotSet) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	header := toRow(domain.ExportHeader())
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	row := toRow(set.ExportRow())
	if err := f.SetSheetRow(SheetName, "A2", &row); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "A", "A", 15); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "B", "E", 50); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}

func toRow(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}
