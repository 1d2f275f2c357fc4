package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/warp/vacation-pay/calendar"
	"github.com/warp/vacation-pay/statement"
	"github.com/warp/vacation-pay/store"
	"github.com/warp/vacation-pay/vacationpay"
)

func calculateCmd() *cobra.Command {
	var (
		salary  string
		days    int
		from    string
		to      string
		pdfPath string
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Compute vacation pay for a day count or a date range",
		Example: `  vacationpay calculate --salary 15000 --days 14
  vacationpay calculate --salary 40000 --from 2026-02-23 --to 2026-02-27 --pdf statement.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(salary, days, cmd.Flags().Changed("days"), from, to)
			if err != nil {
				return err
			}

			cal, err := activeCalendar(cmd.Context())
			if err != nil {
				return err
			}

			res, err := vacationpay.NewCalculator(cal).Calculate(req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, line := range statement.Lines(req, res) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintf(out, "Vacation pay: %s\n", res.VacationPay.StringFixed(vacationpay.MoneyScale))

			if pdfPath == "" {
				return nil
			}
			f, err := os.Create(pdfPath)
			if err != nil {
				return fmt.Errorf("failed to create statement file: %w", err)
			}
			defer f.Close()
			if err := statement.Render(f, statement.Statement{Request: req, Result: res}); err != nil {
				return fmt.Errorf("failed to render statement: %w", err)
			}
			fmt.Fprintf(out, "Statement written to %s\n", pdfPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&salary, "salary", "", "Average monthly salary")
	cmd.Flags().IntVar(&days, "days", 0, "Number of vacation days")
	cmd.Flags().StringVar(&from, "from", "", "First vacation day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last vacation day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Also write a PDF statement to this path")
	_ = cmd.MarkFlagRequired("salary")

	return cmd
}

// buildRequest turns flag values into a calculator request. Semantic checks
// are left to vacationpay.Validate.
func buildRequest(salary string, days int, daysSet bool, from, to string) (vacationpay.Request, error) {
	var req vacationpay.Request

	amount, err := decimal.NewFromString(salary)
	if err != nil {
		return req, fmt.Errorf("--salary must be a decimal number, got %q", salary)
	}
	req.AverageSalary = amount

	if daysSet {
		req.VacationDays = &days
	}
	if from != "" {
		d, err := calendar.ParseDate(from)
		if err != nil {
			return req, fmt.Errorf("--from: %w", err)
		}
		req.StartDate = &d
	}
	if to != "" {
		d, err := calendar.ParseDate(to)
		if err != nil {
			return req, fmt.Errorf("--to: %w", err)
		}
		req.EndDate = &d
	}
	return req, nil
}

// activeCalendar builds the same calendar the server would serve.
func activeCalendar(ctx context.Context) (*calendar.Set, error) {
	s, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	base, err := baseHolidays()
	if err != nil {
		return nil, err
	}
	return store.Snapshot(ctx, s, base...)
}
