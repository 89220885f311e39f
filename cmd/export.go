package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/export"
	"github.com/sells-group/prospect-cli/internal/store"
)

var (
	exportOutput     string
	exportLimit      int
	exportWithDomain bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the latest cached enrichment per syndic to XLSX",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("export"); err != nil {
			return err
		}
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		results, err := st.ListEnrichments(ctx, store.EnrichmentFilter{
			WithDomain: exportWithDomain,
			Limit:      exportLimit,
		})
		if err != nil {
			return err
		}
		if err := export.WriteXLSX(exportOutput, results); err != nil {
			return err
		}

		zap.L().Info("export complete", zap.String("path", exportOutput), zap.Int("syndics", len(results)))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOutput, "output", "prospects.xlsx", "output .xlsx path")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "max syndics to export (0 = all)")
	exportCmd.Flags().BoolVar(&exportWithDomain, "with-domain", false, "only syndics with a validated domain")
	rootCmd.AddCommand(exportCmd)
}
