package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karasuda/resasdl/download"
	"github.com/karasuda/resasdl/filter"
	"github.com/karasuda/resasdl/resas"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <api-key> <output-path>",
	Short: "Download all prefectures and municipalities into a Parquet file",
	Long: `Fetch the prefecture catalogue, then every prefecture's municipalities,
and write the flattened rows to the given Parquet file.

The API key and the output path are positional arguments; they are never
read from the config file or the environment.`,
	Args: cobra.ExactArgs(2),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	apiKey, outputPath := args[0], args[1]

	client, err := resas.NewClient(apiKey, cfg.RetryPolicy(), logger,
		resas.WithBaseURL(cfg.API.BaseURL),
		resas.WithTimeout(cfg.API.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	downloader := download.New(client, cfg.Fetch.CityInterval, logger)

	if cfg.Fetch.Filter != "" {
		rf, err := filter.Compile(cfg.Fetch.Filter)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		logger.Info().Str("filter", rf.String()).Msg("Row filter enabled")
		downloader.SetFilter(rf)
	}

	return downloader.Run(context.Background(), outputPath)
}
