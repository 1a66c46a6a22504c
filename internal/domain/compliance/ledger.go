package compliance

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"yukyu/internal/domain/leave"
)

// LedgerRow is one line of the annual paid-leave management ledger.
type LedgerRow struct {
	EmployeeNum string
	Name        string
	Haken       string
	Year        int
	Granted     float64
	Used        float64
	Balance     float64
	UsageRate   float64
	YukyuDates  []string
}

var ledgerHeader = []string{"employee_num", "name", "haken", "year", "granted", "used", "balance", "usage_rate", "yukyu_dates"}

// BuildLedger orders employees by employee number, then id.
func BuildLedger(employees []leave.Employee) []LedgerRow {
	sorted := make([]leave.Employee, len(employees))
	copy(sorted, employees)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].EmployeeNum == sorted[j].EmployeeNum {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].EmployeeNum < sorted[j].EmployeeNum
	})

	rows := make([]LedgerRow, 0, len(sorted))
	for _, e := range sorted {
		row := LedgerRow{
			EmployeeNum: e.EmployeeNum,
			Name:        e.Name,
			Year:        e.Year,
			Granted:     e.Granted,
			Used:        e.Used,
			Balance:     e.Balance,
			UsageRate:   e.UsageRate,
			YukyuDates:  e.YukyuDates,
		}
		if e.Haken != nil {
			row.Haken = *e.Haken
		}
		rows = append(rows, row)
	}
	return rows
}

func (r LedgerRow) fields() []string {
	return []string{
		r.EmployeeNum,
		r.Name,
		r.Haken,
		strconv.Itoa(r.Year),
		formatDays(r.Granted),
		formatDays(r.Used),
		formatDays(r.Balance),
		strconv.FormatFloat(r.UsageRate, 'f', 1, 64),
		strings.Join(r.YukyuDates, ";"),
	}
}

func WriteLedgerCSV(w io.Writer, rows []LedgerRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ledgerHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row.fields()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteLedgerPDF renders the ledger as an A4 landscape table. fontPath names a
// UTF-8 TrueType font; when empty the core Helvetica font is used and the
// name and haken columns are left blank because it cannot encode Japanese.
func WriteLedgerPDF(w io.Writer, rows []LedgerRow, fontPath string, generatedAt time.Time) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	family := "Helvetica"
	unicode := fontPath != ""
	if unicode {
		family = "ledger"
		pdf.AddUTF8Font(family, "", fontPath)
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("load ledger font: %w", err)
		}
	}
	pdf.SetTitle("Annual paid leave ledger", unicode)
	pdf.AddPage()

	pdf.SetFont(family, "", 14)
	pdf.Cell(0, 10, "Annual paid leave ledger")
	pdf.Ln(8)
	pdf.SetFont(family, "", 9)
	pdf.Cell(0, 6, "Generated "+generatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	widths := []float64{24, 40, 34, 14, 18, 18, 18, 20, 91}
	for i, title := range ledgerHeader {
		pdf.CellFormat(widths[i], 7, title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	for _, row := range rows {
		cells := row.fields()
		if !unicode {
			cells[1] = ""
			cells[2] = ""
		}
		for i, text := range cells {
			align := "L"
			if i >= 3 && i <= 7 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, text, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
