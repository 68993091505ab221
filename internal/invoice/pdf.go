package invoice

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageBreakAt = 250.0 // mm; start a new page before drawing past this
	lineHeight  = 7.0
)

var tableWidths = [5]float64{30, 55, 45, 20, 30}

// Render produces the paginated invoice document: header, metadata, bill-to
// block, line-items table with page breaks, totals, and payment instructions.
func Render(inv *Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 15)
	pdf.AddPage()

	drawHeader(pdf, inv)

	// Bill-to block.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(40, lineHeight, "Bill To:")
	pdf.Ln(lineHeight)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, lineHeight, inv.SchoolName)
	pdf.Ln(lineHeight)
	pdf.Cell(0, lineHeight, inv.SchoolSystem+" school system")
	pdf.Ln(lineHeight * 1.5)

	drawTableHead(pdf)

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range inv.Lines {
		if pdf.GetY() > pageBreakAt {
			pdf.AddPage()
			drawTableHead(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}
		pdf.CellFormat(tableWidths[0], lineHeight, line.Date.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(tableWidths[1], lineHeight, line.Teacher, "1", 0, "L", false, 0, "")
		pdf.CellFormat(tableWidths[2], lineHeight, line.TimeRange, "1", 0, "L", false, 0, "")
		pdf.CellFormat(tableWidths[3], lineHeight, fmt.Sprintf("%d", line.Minutes), "1", 0, "R", false, 0, "")
		pdf.CellFormat(tableWidths[4], lineHeight, FormatCents(line.CostCents), "1", 0, "R", false, 0, "")
		pdf.Ln(lineHeight)
	}

	// Totals row.
	if pdf.GetY() > pageBreakAt {
		pdf.AddPage()
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(tableWidths[0]+tableWidths[1]+tableWidths[2], lineHeight,
		fmt.Sprintf("Total (%d sessions)", inv.Count), "1", 0, "R", false, 0, "")
	pdf.CellFormat(tableWidths[3], lineHeight, fmt.Sprintf("%d", inv.TotalMinutes), "1", 0, "R", false, 0, "")
	pdf.CellFormat(tableWidths[4], lineHeight, FormatCents(inv.TotalCents), "1", 0, "R", false, 0, "")
	pdf.Ln(lineHeight * 2)

	drawPaymentInstructions(pdf, inv)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawHeader(pdf *gofpdf.Fpdf, inv *Invoice) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Prairie Sport Association")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "SPED School Session Program")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "INVOICE "+inv.Number)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Invoice Date: "+inv.IssuedAt.Format("January 2, 2006"))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s",
		inv.PeriodStart.Format("2006-01-02"), inv.PeriodEnd.Format("2006-01-02")))
	pdf.Ln(10)
}

func drawTableHead(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	headers := [5]string{"Date", "Teacher", "Time", "Minutes", "Cost"}
	for i, hdr := range headers {
		pdf.CellFormat(tableWidths[i], lineHeight, hdr, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(lineHeight)
}

func drawPaymentInstructions(pdf *gofpdf.Fpdf, inv *Invoice) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, "Payment Instructions")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5,
		"Please make cheques payable to Prairie Sport Association and quote invoice number "+
			inv.Number+" on all correspondence. Payment is due within 30 days of the invoice date. "+
			"For questions about this invoice, contact the association office.",
		"", "L", false)
}
