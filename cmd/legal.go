package main

import (
	"github.com/spf13/cobra"
)

var (
	legalSIRET  string
	legalOutput string
)

var legalCmd = &cobra.Command{
	Use:   "legal",
	Short: "Show the legal profile (Pappers) of a company",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "legal")
		if err != nil {
			return err
		}
		defer env.Close()

		profile, err := env.Legal.Lookup(ctx, legalSIRET)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), legalOutput, profile)
	},
}

func init() {
	legalCmd.Flags().StringVar(&legalSIRET, "siret", "", "SIREN/SIRET (spaces and punctuation ignored)")
	legalCmd.Flags().StringVarP(&legalOutput, "output", "o", "json", "output format: json or yaml")
	_ = legalCmd.MarkFlagRequired("siret")
	rootCmd.AddCommand(legalCmd)
}
