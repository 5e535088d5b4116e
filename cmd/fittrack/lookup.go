package fittrack

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/fittrack/internal/config"
	"github.com/saadjs/fittrack/internal/provider"
)

const (
	usdaSignupURL        = "https://api.data.gov/signup/"
	usdaRateLimitSummary = "USDA default rate limit is 1,000 requests per hour per IP."
	offRateLimitSummary  = "Open Food Facts enforces fair-use limits and requires a descriptive User-Agent."
)

var (
	lookupProvider string
	lookupAPIKey   string
	lookupJSON     bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <query>",
	Short: "Search the external nutrition provider (values per 100 g)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lc, err := resolveLookup(cfg.Lookup, lookupProvider, lookupAPIKey)
		if err != nil {
			return err
		}
		query := strings.Join(args, " ")
		results, err := buildLookup(lc).Search(cmd.Context(), query)
		if errors.Is(err, provider.ErrNoResults) || (err == nil && len(results) == 0) {
			fmt.Fprintf(cmd.OutOrStdout(), "No results for %q\n", query)
			return nil
		}
		if err != nil {
			return err
		}
		if lookupJSON {
			b, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal lookup json: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Provider: %s\n", lc.Provider)
		fmt.Fprintln(out, "NAME\tBRAND\tKCAL\tP\tC\tF\tSOURCE_ID")
		for _, r := range results {
			fmt.Fprintf(out, "%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n", r.Name, r.Brand, r.CaloriesPer100g, r.ProteinPer100g, r.CarbsPer100g, r.FatPer100g, r.SourceID)
		}
		return nil
	},
}

var lookupProvidersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show provider setup and rate-limit notes",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "usda: requires an API key (FITTRACK_LOOKUP_API_KEY or --api-key)")
		fmt.Fprintf(out, "  signup: %s\n  %s\n", usdaSignupURL, usdaRateLimitSummary)
		fmt.Fprintln(out, "openfoodfacts: no key required")
		fmt.Fprintf(out, "  %s\n", offRateLimitSummary)
		fmt.Fprintln(out, "none: external lookup disabled")
	},
}

func resolveLookup(lc config.LookupConfig, providerName, apiKey string) (config.LookupConfig, error) {
	if p := strings.ToLower(strings.TrimSpace(providerName)); p != "" {
		lc.Provider = p
	}
	if k := strings.TrimSpace(apiKey); k != "" {
		lc.APIKey = k
	}
	switch lc.Provider {
	case "usda":
		if lc.APIKey == "" {
			return lc, fmt.Errorf("usda lookup needs an API key; get one at %s", usdaSignupURL)
		}
	case "openfoodfacts":
	case "none":
		return lc, errors.New("external lookup is disabled (lookup.provider: none)")
	default:
		return lc, fmt.Errorf("unsupported provider %q (use usda or openfoodfacts)", lc.Provider)
	}
	return lc, nil
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.AddCommand(lookupProvidersCmd)
	lookupCmd.Flags().StringVar(&lookupProvider, "provider", "", "Provider: usda or openfoodfacts (default from config)")
	lookupCmd.Flags().StringVar(&lookupAPIKey, "api-key", "", "Provider API key")
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "Output JSON")
}
