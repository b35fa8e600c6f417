// Package invoice renders order records to fixed-layout PDF documents.
package invoice

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/bazarlab/chatshop/internal/model"
	"github.com/bazarlab/chatshop/internal/pricing"
)

// Generator writes one-page A4 invoices into a directory.
type Generator struct {
	dir string
}

// NewGenerator creates a generator writing into dir, creating it if
// needed.
func NewGenerator(dir string) (*Generator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create invoice dir: %w", err)
	}
	return &Generator{dir: dir}, nil
}

// Render produces <dir>/<order_id>.pdf and returns its path. The layout
// is deterministic for a given order record; the only failure mode is
// I/O, which propagates to the caller.
func (g *Generator) Render(o model.Order) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Order ID: %s", o.OrderID),
		fmt.Sprintf("User: %s", o.User),
		fmt.Sprintf("Product: %s  (Qty: %d)", o.Product, o.Qty),
		fmt.Sprintf("Unit Price: %s", pricing.Format(o.UnitPrice)),
		fmt.Sprintf("Discount: %d%%", int(o.Discount*100)),
		fmt.Sprintf("Tax: %d%%", int(o.Tax*100)),
		fmt.Sprintf("Total: %s", pricing.Format(o.Total)),
		fmt.Sprintf("Status: %s", o.Status),
		fmt.Sprintf("Date: %s", o.Timestamp()),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 7, tr(line), "", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	x, y := pdf.GetXY()
	pdf.Line(x, y, 190, y)
	pdf.Ln(4)
	pdf.CellFormat(0, 7, "Thank you for shopping with us!", "", 1, "L", false, 0, "")

	path := filepath.Join(g.dir, o.OrderID+".pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write invoice %s: %w", path, err)
	}
	return path, nil
}
