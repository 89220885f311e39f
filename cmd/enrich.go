package main

import (
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/prospect-cli/internal/enrich"
	"github.com/sells-group/prospect-cli/internal/model"
)

var (
	enrichSIRET   string
	enrichName    string
	enrichCity    string
	enrichWebsite string
	enrichEmail   string
	enrichNoLegal bool
	enrichOutput  string
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich a single syndic",
	Long: `Finds the syndic's website domain and decision-makers, using the cache when present.

The legal profile (Pappers) provides website and email hints unless --website or
--email is given, or --no-legal is set.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx, "enrich")
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Service.Run(ctx, enrich.Request{
			Identity: model.CompanyIdentity{
				StableID:    strings.TrimSpace(enrichSIRET),
				DisplayName: strings.TrimSpace(enrichName),
				CityHint:    strings.TrimSpace(enrichCity),
			},
			Website:   strings.TrimSpace(enrichWebsite),
			Email:     strings.TrimSpace(enrichEmail),
			SkipLegal: enrichNoLegal,
		})
		if err != nil {
			return eris.Wrap(err, "enrich")
		}
		return writeOutput(cmd.OutOrStdout(), enrichOutput, result)
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichSIRET, "siret", "", "SIREN/SIRET of the syndic (cache key)")
	enrichCmd.Flags().StringVar(&enrichName, "name", "", "syndic display name")
	enrichCmd.Flags().StringVar(&enrichCity, "city", "", "city hint for web search")
	enrichCmd.Flags().StringVar(&enrichWebsite, "website", "", "known website(s), comma-separated")
	enrichCmd.Flags().StringVar(&enrichEmail, "email", "", "known contact email")
	enrichCmd.Flags().BoolVar(&enrichNoLegal, "no-legal", false, "skip the Pappers legal lookup")
	enrichCmd.Flags().StringVarP(&enrichOutput, "output", "o", "json", "output format: json or yaml")
	_ = enrichCmd.MarkFlagRequired("siret")
	_ = enrichCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(enrichCmd)
}
