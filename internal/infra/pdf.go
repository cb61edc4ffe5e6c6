package infra

// pdf.go — payment receipt generation using go-pdf/fpdf.
// Produces an A5 receipt with the company header, receipt number, customer
// and booking details, the amount (figures and words) and the payment mode.
// The output file is saved to storagePath/receipt_{reference}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Aniket-89/recrm/internal/model"

	"github.com/divan/num2words"
	"github.com/go-pdf/fpdf"
)

// ReceiptData carries everything the receipt layout needs; the worker
// assembles it from the payment entry and its preloaded relations.
type ReceiptData struct {
	Entry       *model.PaymentEntry
	Customer    *model.Customer
	BookingNo   int
	PlotNumber  string
	ProjectName string
	StageName   string
	CompanyName string
	Currency    string
}

// GeneratePaymentReceiptPDF renders a receipt for one payment entry and
// returns the absolute path of the written file.
func GeneratePaymentReceiptPDF(data ReceiptData, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("receipt_%s.pdf", strings.ToLower(data.Entry.ReferenceNo))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, data.CompanyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Payment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW/2, 6, fmt.Sprintf("Receipt No: %s", data.Entry.ReferenceNo), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW/2, 6, fmt.Sprintf("Date: %s", data.Entry.PaymentDate.Format("02/01/2006")), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(4)

	labelW := contentW * 0.35
	valueW := contentW * 0.65
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(labelW, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(valueW, 6, value, "", 1, "L", false, 0, "")
	}

	customerName := ""
	if data.Customer != nil {
		customerName = data.Customer.Name
	}
	row("Received from:", customerName)
	row("Booking No:", fmt.Sprintf("%d", data.BookingNo))
	row("Project / Plot:", fmt.Sprintf("%s / %s", data.ProjectName, data.PlotNumber))
	row("Towards stage:", data.StageName)
	row("Payment mode:", data.Entry.PaymentMode)
	if data.Entry.ReferenceDetail != nil && *data.Entry.ReferenceDetail != "" {
		row("Instrument ref:", *data.Entry.ReferenceDetail)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 8, fmt.Sprintf("Amount: %s %s", data.Currency, data.Entry.Amount.StringFixed(2)), "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(contentW, 5, fmt.Sprintf("In words: %s only", amountInWords(data.Entry.Amount.InexactFloat64())), "", "C", false)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "This is a computer generated receipt and does not require a signature.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write receipt: %w", err)
	}
	return filePath, nil
}

// amountInWords converts 125000.50 to "one hundred twenty-five thousand and 50/100".
func amountInWords(amount float64) string {
	whole := int(amount)
	paise := int(amount*100+0.5) - whole*100
	words := strings.TrimSpace(num2words.Convert(whole))
	if paise > 0 {
		return fmt.Sprintf("%s and %02d/100", words, paise)
	}
	return words
}
