package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	cacheSIRET  string
	cacheOutput string
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the enrichment cache",
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cached enrichment of a syndic",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("cache"); err != nil {
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

		id := strings.TrimSpace(cacheSIRET)
		result, err := st.GetEnrichment(ctx, id)
		if err != nil {
			return err
		}
		if result == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "no cached enrichment for %s\n", id)
			return nil
		}
		return writeOutput(cmd.OutOrStdout(), cacheOutput, result)
	},
}

func init() {
	cacheShowCmd.Flags().StringVar(&cacheSIRET, "siret", "", "stable id used at enrichment time")
	cacheShowCmd.Flags().StringVarP(&cacheOutput, "output", "o", "json", "output format: json or yaml")
	_ = cacheShowCmd.MarkFlagRequired("siret")
	cacheCmd.AddCommand(cacheShowCmd)
	rootCmd.AddCommand(cacheCmd)
}
