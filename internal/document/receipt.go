package document

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"github.com/Eursukkul/rental-backoffice/internal/format"
	"github.com/Eursukkul/rental-backoffice/internal/models"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

const (
	receiptWrapWidth    = 95
	maxReceiptNoteLines = 10
	maxReceiptPayments  = 12
)

type ReceiptData struct {
	Number        string
	IssuedAt      time.Time
	LandlordName  string
	TenantName    string
	TenantCPF     string
	PropertyName  string
	CheckIn       time.Time
	CheckOut      time.Time
	Amount        float64
	PaymentMethod string
	Payments      []models.PaymentEntry
	Note          string

	LandlordSignature []byte
	TenantSignature   []byte

	// Verification is encoded in the QR code printed on the receipt.
	Verification string
}

type ReceiptResult struct {
	PDF []byte
	// Truncated is set when the note or payment list was cut to fit the page.
	Truncated bool
}

// Receipt draws a single-page receipt. Content that would overflow the page is
// cut and reported through Truncated.
func Receipt(d ReceiptData) (*ReceiptResult, error) {
	res := &ReceiptResult{}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(false, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("RECEIPT"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("No. %s - issued %s", d.Number, format.Date(d.IssuedAt))), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	body := fmt.Sprintf(
		"I, %s, received from %s (CPF %s) the amount of %s, paid by %s, "+
			"for the stay at %s from %s to %s.",
		d.LandlordName, d.TenantName, orDash(d.TenantCPF), format.Money(d.Amount), orDash(d.PaymentMethod),
		d.PropertyName, format.Date(d.CheckIn), format.Date(d.CheckOut),
	)
	pdf.MultiCell(0, 6, tr(body), "", "L", false)
	pdf.Ln(4)

	if len(d.Payments) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, tr("Payments received"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		shown := d.Payments
		if len(shown) > maxReceiptPayments {
			shown = shown[:maxReceiptPayments]
			res.Truncated = true
		}
		for _, p := range shown {
			line := fmt.Sprintf("%s  %s  %s", format.DatePtr(p.PaidDate), format.Money(p.Amount), p.Note)
			pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
		}
		if len(d.Payments) > len(shown) {
			pdf.CellFormat(0, 5, tr(fmt.Sprintf("... and %d more", len(d.Payments)-len(shown))), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	if d.Note != "" {
		lines := wrapAll(d.Note, receiptWrapWidth)
		if len(lines) > maxReceiptNoteLines {
			lines = lines[:maxReceiptNoteLines]
			lines[len(lines)-1] += " ..."
			res.Truncated = true
		}
		pdf.SetFont("Helvetica", "I", 10)
		for _, line := range lines {
			pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
		}
	}
	if res.Truncated {
		log.Printf("[Receipt] content of receipt %s truncated to fit one page", d.Number)
	}

	drawSignature(pdf, "landlord_signature", d.LandlordSignature, 20, 215)
	drawSignature(pdf, "tenant_signature", d.TenantSignature, 115, 215)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 242)
	pdf.CellFormat(75, 5, tr(d.LandlordName), "T", 0, "C", false, 0, "")
	pdf.SetXY(115, 242)
	pdf.CellFormat(75, 5, tr(d.TenantName), "T", 0, "C", false, 0, "")

	if d.Verification != "" {
		qr, err := qrcode.Encode(d.Verification, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("encode receipt qr: %w", err)
		}
		pdf.RegisterImageOptionsReader("qr", pngOptions, bytes.NewReader(qr))
		pdf.ImageOptions("qr", 170, 255, 25, 25, false, pngOptions, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("compose receipt: %w", err)
	}
	res.PDF = buf.Bytes()
	return res, nil
}

// ReceiptVerification is the payload encoded in a receipt QR code.
func ReceiptVerification(number string, bookingID uint, amount float64, issuedAt time.Time) string {
	return fmt.Sprintf("receipt=%s&booking=%d&amount=%.2f&issued=%s", number, bookingID, amount, issuedAt.Format("2006-01-02"))
}

func drawSignature(pdf *gofpdf.Fpdf, name string, data []byte, x, y float64) {
	if len(data) == 0 {
		return
	}
	pdf.RegisterImageOptionsReader(name, pngOptions, bytes.NewReader(data))
	pdf.ImageOptions(name, x+12.5, y, 50, 25, false, pngOptions, 0, "")
}

func wrapAll(text string, width int) []string {
	var out []string
	for _, para := range Paragraphs(text) {
		out = append(out, WrapText(para, width)...)
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
