package cart

import (
	"fmt"
	"io"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/models"
	"github.com/tealeg/xlsx"
)

// ExportXLSX writes the cart lines and totals as a one-sheet workbook.
func ExportXLSX(w io.Writer, cart models.Cart) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Cart")
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	// Header row
	headers := []string{"ProductID", "ProductName", "Flavor", "Size", "Quantity", "UnitPrice", "TotalPrice"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	// Data rows
	for _, item := range cart.Items {
		row := sheet.AddRow()
		row.AddCell().SetValue(item.ProductID)
		row.AddCell().SetValue(item.ProductName)
		row.AddCell().SetValue(item.Flavor)
		row.AddCell().SetValue(item.Size)
		row.AddCell().SetValue(item.Quantity)
		row.AddCell().SetValue(item.UnitPrice)
		row.AddCell().SetValue(item.TotalPrice)
	}

	totals := sheet.AddRow()
	totals.AddCell().SetValue("TOTAL")
	for i := 0; i < 3; i++ {
		totals.AddCell()
	}
	totals.AddCell().SetValue(cart.TotalItems)
	totals.AddCell()
	totals.AddCell().SetValue(cart.TotalAmount)

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
