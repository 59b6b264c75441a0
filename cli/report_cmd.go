package cli

import (
	"os"

	"github.com/spf13/cobra"

	"librarium/report"
)

func newReportCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate library reports",
	}

	cmd.AddCommand(newReportSummaryCmd(configPath))
	cmd.AddCommand(newReportTopCmd(configPath))
	cmd.AddCommand(newReportActiveCmd(configPath))
	cmd.AddCommand(newReportOverdueCmd(configPath))
	cmd.AddCommand(newReportExportCmd(configPath))

	return cmd
}

func newReportSummaryCmd(configPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Display the overall library summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			if asJSON {
				return a.reports.ExportSummaryJSON(cmd.Context(), os.Stdout)
			}

			summary, err := a.reports.Summary(cmd.Context())
			if err != nil {
				return err
			}

			printSummary(os.Stdout, summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the summary as JSON")

	return cmd
}

func newReportTopCmd(configPath *string) *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Display the most borrowed books",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			ranking, err := a.reports.MostBorrowed(cmd.Context(), topN)
			if err != nil {
				return err
			}

			printRanking(os.Stdout, ranking)
			return nil
		},
	}

	cmd.Flags().IntVar(&topN, "top", report.DefaultTopN, "Number of books to rank")

	return cmd
}

func newReportActiveCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "active",
		Short: "Display members with at least one borrowed book",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			active, err := a.reports.ActiveMembers(cmd.Context())
			if err != nil {
				return err
			}

			printMembers(os.Stdout, active)
			return nil
		},
	}

	return cmd
}

func newReportOverdueCmd(configPath *string) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "Display overdue transactions with member and book details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			limit := days
			if limit <= 0 {
				limit = a.cfg.Lending.OverdueDays
			}

			entries, err := a.reports.OverdueReport(cmd.Context(), limit)
			if err != nil {
				return err
			}

			printOverdueEntries(os.Stdout, entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Overdue day limit (defaults to the configured value)")

	return cmd
}

func newReportExportCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the summary report to the report_summary table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			if err := a.reports.ExportSummary(cmd.Context(), a.store); err != nil {
				return err
			}

			cmd.Println("Summary report exported successfully.")
			return nil
		},
	}

	return cmd
}
