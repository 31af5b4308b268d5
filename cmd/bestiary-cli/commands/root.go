package commands

import (
	"context"
	"fmt"
	"os"

	"bestiary-backend/internal/telemetry"
	"bestiary-backend/lib/scrapers/bestiary"
	libtelemetry "bestiary-backend/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	baseUrl          string
	cloudflareBypass bool
	verbose          bool
)

var rootCmd = &cobra.Command{
	Use:   "bestiary-cli",
	Short: "bestiary-cli queries the OSR bestiary from the command line.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		libtelemetry.InitSlog(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseUrl, "base-url", bestiary.DefaultBaseUrl, "The bestiary index to scrape.")
	rootCmd.PersistentFlags().BoolVar(&cloudflareBypass, "cloudflare-bypass", false, "Send requests through the cloudflare bypass transport.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
}

func newClient() (bestiary.Client, error) {
	return bestiary.NewClient(bestiary.ClientOptions{
		BaseUrl:          baseUrl,
		CloudflareBypass: cloudflareBypass,
		Telemetry:        telemetry.SlogAPI{},
	})
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
