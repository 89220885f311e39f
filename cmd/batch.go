package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/prospect-cli/internal/batch"
	"github.com/sells-group/prospect-cli/internal/export"
	"github.com/sells-group/prospect-cli/internal/model"
)

var (
	batchInput       string
	batchLimit       int
	batchConcurrency int
	batchOutput      string
	batchFormat      string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Enrich every syndic listed in a CSV or XLSX file",
	Long: `Reads rows with columns siret, name and optionally city, website, email,
and enriches them concurrently. Failed rows are logged and skipped.

Examples:
  prospect-cli batch --csv syndics.csv --limit 50
  prospect-cli batch --csv syndics.xlsx --output leads.xlsx --format xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if batchConcurrency > 0 {
			cfg.Batch.MaxConcurrent = batchConcurrency
		}
		format := strings.ToLower(batchFormat)
		if format == "xlsx" && batchOutput == "" {
			return eris.New("batch: --output is required with --format xlsx")
		}

		reqs, err := batch.ReadFile(ctx, batchInput)
		if err != nil {
			return err
		}

		env, err := initEnv(ctx, "batch")
		if err != nil {
			return err
		}
		defer env.Close()

		report := batch.Run(ctx, reqs, batchLimit, cfg.Batch.MaxConcurrent, env.Service.Run)

		if format == "xlsx" {
			results := make([]model.EnrichmentResult, 0, len(report.Results))
			for _, r := range report.Results {
				results = append(results, *r)
			}
			return export.WriteXLSX(batchOutput, results)
		}

		out := cmd.OutOrStdout()
		if batchOutput != "" {
			f, err := os.Create(batchOutput)
			if err != nil {
				return eris.Wrap(err, "batch: create output")
			}
			defer f.Close() //nolint:errcheck
			out = f
		}
		return writeOutput(out, format, report.Results)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "csv", "", "input file (.csv or .xlsx)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of rows to process (0 = all)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "concurrent enrichments (default from config)")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "output file (default stdout)")
	batchCmd.Flags().StringVar(&batchFormat, "format", "json", "output format: json, yaml or xlsx")
	_ = batchCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(batchCmd)
}
