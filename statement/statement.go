// Package statement renders a vacation pay calculation as a one-page PDF.
package statement

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/warp/vacation-pay/vacationpay"
)

// Statement is what gets printed. Title defaults to "Vacation Pay Statement".
type Statement struct {
	Title   string
	Request vacationpay.Request
	Result  vacationpay.Result
}

// Render writes the statement as PDF to w.
func Render(w io.Writer, st Statement) error {
	title := st.Title
	if title == "" {
		title = "Vacation Pay Statement"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, title)
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range Lines(st.Request, st.Result) {
		pdf.Cell(0, 8, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Vacation pay: %s", st.Result.VacationPay.StringFixed(vacationpay.MoneyScale)))

	return pdf.Output(w)
}

// Lines returns the body of the statement, one entry per printed line.
func Lines(req vacationpay.Request, res vacationpay.Result) []string {
	lines := []string{
		fmt.Sprintf("Average monthly salary: %s", req.AverageSalary.String()),
		fmt.Sprintf("Daily rate (salary / %s): %s", vacationpay.AverageDaysPerMonth, res.DailyRate.String()),
	}

	if req.HasRange() {
		p := req.Period()
		lines = append(lines,
			fmt.Sprintf("Period: %s to %s", p.Start, p.End),
			fmt.Sprintf("Calendar days: %d", res.TotalDays),
		)
		if len(res.Holidays) > 0 {
			dates := make([]string, len(res.Holidays))
			for i, d := range res.Holidays {
				dates[i] = d.String()
			}
			lines = append(lines, fmt.Sprintf("Holidays excluded (%d): %s", len(res.Holidays), strings.Join(dates, ", ")))
		} else {
			lines = append(lines, "Holidays excluded: none")
		}
	}

	lines = append(lines, fmt.Sprintf("Paid days: %d", res.PaidDays))
	return lines
}
