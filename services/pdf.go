package services

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/plateful-app/plateful-backend/database"
)

// Layout constants for the shopping-list document: landscape Letter in
// points, a header block followed by a three-column table with fixed
// vertical spacing.
const (
	pdfMarginLeft   = 50.0
	pdfColumnUnitX  = 250.0
	pdfColumnCountX = 450.0
	pdfLineHeight   = 20.0
	pdfBottomMargin = 50.0
)

// RenderShoppingListPDF renders the consolidated lines into a paginated
// fixed-layout document. When fontPath is set the TTF must load or the
// render fails; otherwise the built-in Helvetica core font is used.
func RenderShoppingListPDF(ownerName string, exportDate time.Time, lines []database.ShoppingListLine, fontPath string) ([]byte, error) {
	pdf := fpdf.New("L", "pt", "Letter", "")

	fontFamily := "Helvetica"
	if fontPath != "" {
		fontFamily = "shopping-list"
		pdf.AddUTF8Font(fontFamily, "", fontPath)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("load shopping-list font %q: %w", fontPath, err)
		}
	}

	_, pageHeight := pdf.GetPageSize()

	pdf.AddPage()
	pdf.SetFont(fontFamily, "", 16)
	pdf.Text(pdfMarginLeft, 62, fmt.Sprintf("Shopping list for: %s", ownerName))
	pdf.Text(pdfMarginLeft, 82, fmt.Sprintf("Date: %s", exportDate.Format("2006-01-02")))

	pdf.SetFont(fontFamily, "", 14)
	writeHeader := func(y float64) float64 {
		pdf.Text(pdfMarginLeft, y, "Name")
		pdf.Text(pdfColumnUnitX, y, "Measurement unit")
		pdf.Text(pdfColumnCountX, y, "Amount")
		return y + pdfLineHeight
	}

	y := writeHeader(112)
	for _, line := range lines {
		if y > pageHeight-pdfBottomMargin {
			pdf.AddPage()
			y = writeHeader(pdfBottomMargin)
		}
		pdf.Text(pdfMarginLeft, y, line.Name)
		pdf.Text(pdfColumnUnitX, y, line.MeasurementUnit)
		pdf.Text(pdfColumnCountX, y, strconv.Itoa(line.Amount))
		y += pdfLineHeight
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render shopping-list document: %w", err)
	}
	return buf.Bytes(), nil
}

// ShoppingListFilename builds the attachment filename for an export.
func ShoppingListFilename(username string) string {
	return fmt.Sprintf("%s_shopping_list.pdf", username)
}
