package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/warp/vacation-pay/api"
	"github.com/warp/vacation-pay/calendar"
	"github.com/warp/vacation-pay/store"
	"go.uber.org/zap"
)

func holidaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Inspect and manage the holiday calendar",
	}
	cmd.AddCommand(holidaysListCmd(), holidaysImportCmd(), holidaysDefaultsCmd())
	return cmd
}

func holidaysListCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the active calendar (built-in, overrides file and stored)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := activeCalendar(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tWEEKDAY\tNAME\tID")
			for _, h := range cal.Holidays(year) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", h.Date, h.Date.Weekday(), h.Name, h.ID)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Only this year (0 = all)")
	return cmd
}

func holidaysImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Store every holiday listed in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			holidays, err := calendar.LoadYAML(args[0])
			if err != nil {
				return err
			}
			return importHolidays(cmd, holidays, args[0])
		},
	}
}

func holidaysDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Store the built-in 2026 holidays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return importHolidays(cmd, calendar.Russia2026(), "built-in 2026 list")
		},
	}
}

func importHolidays(cmd *cobra.Command, holidays []calendar.Holiday, from string) error {
	s, err := openStore(cmd.Context(), cfg.Storage)
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := store.Import(cmd.Context(), s, holidays)
	if err != nil {
		return fmt.Errorf("failed to import holidays: %w", err)
	}

	logger.Info("Holidays imported", zap.String("from", from), zap.Int("count", n))
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d holidays from %s\n", n, from)
	return nil
}

// baseHolidays evaluates the configured unstored holiday sources once.
func baseHolidays() ([][]calendar.Holiday, error) {
	base, err := api.LoadSources(calendarSources(cfg.Calendar))
	if err != nil {
		return nil, fmt.Errorf("failed to load holiday sources: %w", err)
	}
	return base, nil
}
