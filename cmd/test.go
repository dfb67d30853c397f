package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karasuda/resasdl/resas"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test <api-key>",
	Short: "Test the API key against the prefectures endpoint",
	Long: `Perform a single request without retries against the prefectures endpoint
to verify the API key and connectivity.`,
	Args: cobra.ExactArgs(1),
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	client, err := resas.NewClient(args[0], cfg.RetryPolicy(), logger,
		resas.WithBaseURL(cfg.API.BaseURL),
		resas.WithTimeout(cfg.API.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	fmt.Printf("Testing connection to %s...\n", cfg.API.BaseURL)

	prefs, err := resas.Get[resas.Prefecture](context.Background(), client, resas.EndpointPrefectures, "", false)
	if err != nil {
		return err
	}

	fmt.Println("✓ Connection successful!")
	fmt.Printf("- Prefectures available: %d\n", len(prefs))

	return nil
}
