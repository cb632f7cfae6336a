package infra

// pdf.go — purchase-order PDF generation using go-pdf/fpdf.
// The generated document is attached to the supplier notification mail.

import (
	"fmt"
	"os"
	"path/filepath"

	"briqtrack/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateOrderPDF renders a one-page A5 purchase order for a supplier.
// The order must have Supplier and RawMaterial preloaded.
// Returns the absolute path of the written file.
func GenerateOrderPDF(order *model.PurchaseOrder, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("order_%s.pdf", order.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Purchase Order", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Order %s", order.ID), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, order.OrderDate.Format("02 Jan 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(4)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW*0.35, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW*0.65, 6, value, "", 1, "L", false, 0, "")
	}

	if order.Supplier != nil {
		row("Supplier", order.Supplier.Name)
		row("Address", order.Supplier.Address)
	}
	if order.RawMaterial != nil {
		row("Material", order.RawMaterial.Name)
	}
	row("Quantity", fmt.Sprintf("%d units", order.Quantity))
	if order.Notes != "" {
		row("Notes", order.Notes)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Please confirm availability and expected delivery date.", "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
