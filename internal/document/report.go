package document

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/Eursukkul/rental-backoffice/internal/format"
	"github.com/Eursukkul/rental-backoffice/internal/models"
	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"
)

const receivablesSheet = "Receivables"

type ReceivableRow struct {
	BookingID uint
	Guest     string
	DueDate   time.Time
	Amount    float64
	Note      string
	Overdue   bool
}

type ReceivablesReport struct {
	GeneratedAt  time.Time
	Rows         []ReceivableRow
	Total        float64
	OverdueTotal float64
}

// BuildReceivables collects the pending entries ordered by due date. Entries are
// expected to have Booking.Guest preloaded; missing guests print as "-".
func BuildReceivables(entries []models.PaymentEntry, today time.Time) ReceivablesReport {
	report := ReceivablesReport{GeneratedAt: today}
	for _, e := range entries {
		if e.Status != models.PaymentPending {
			continue
		}
		guest := "-"
		if e.Booking != nil && e.Booking.Guest != nil {
			guest = e.Booking.Guest.Name
		}
		row := ReceivableRow{
			BookingID: e.BookingID,
			Guest:     guest,
			DueDate:   e.DueDate,
			Amount:    e.Amount,
			Note:      e.Note,
			Overdue:   e.IsOverdue(today),
		}
		report.Rows = append(report.Rows, row)
		report.Total += e.Amount
		if row.Overdue {
			report.OverdueTotal += e.Amount
		}
	}
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].DueDate.Before(report.Rows[j].DueDate)
	})
	return report
}

var receivableColumns = []struct {
	title string
	width float64
}{
	{"Booking", 20},
	{"Guest", 55},
	{"Due date", 25},
	{"Amount", 30},
	{"Status", 20},
	{"Note", 40},
}

// ReceivablesPDF renders the report as a paginated table.
func ReceivablesPDF(r ReceivablesReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, tr("Receivables - "+format.Date(r.GeneratedAt)), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range receivableColumns {
			pdf.CellFormat(col.width, 7, tr(col.title), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range r.Rows {
		status := "pending"
		if row.Overdue {
			status = "overdue"
		}
		cells := []string{
			fmt.Sprintf("#%d", row.BookingID),
			row.Guest,
			format.Date(row.DueDate),
			format.Money(row.Amount),
			status,
			row.Note,
		}
		for i, col := range receivableColumns {
			align := "L"
			if i == 3 {
				align = "R"
			}
			pdf.CellFormat(col.width, 6, tr(truncate(cells[i], int(col.width/1.9))), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr("Total receivable: "+format.Money(r.Total)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, tr("Overdue: "+format.Money(r.OverdueTotal)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("compose receivables pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ReceivablesXLSX renders the report as a single-sheet workbook.
func ReceivablesXLSX(r ReceivablesReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", receivablesSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"Booking", "Guest", "Due date", "Amount", "Status", "Note"}
	if err := f.SetSheetRow(receivablesSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}
	if err := f.SetCellStyle(receivablesSheet, "A1", "F1", bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	rowNum := 2
	for _, row := range r.Rows {
		status := "pending"
		if row.Overdue {
			status = "overdue"
		}
		values := []any{row.BookingID, row.Guest, format.Date(row.DueDate), row.Amount, status, row.Note}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(receivablesSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", rowNum, err)
		}
		rowNum++
	}

	totals := [][]any{
		{"", "Total", "", r.Total},
		{"", "Overdue", "", r.OverdueTotal},
	}
	for _, values := range totals {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(receivablesSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write totals: %w", err)
		}
		rowNum++
	}
	if err := f.SetColWidth(receivablesSheet, "B", "B", 30); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
