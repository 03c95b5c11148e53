// ABOUTME: Main entry point for the Mentions API
// ABOUTME: Cobra root command; serve is the default, fetch runs one retrieval

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command. Without a subcommand it serves HTTP.
var rootCmd = &cobra.Command{
	Use:   "mentions-api",
	Short: "Recent public mentions of tracked people",
	Long: `mentions-api searches for recent public mentions of a person, keeps only
results from the last 48 hours that carry real content, and caches the
filtered response per subject.

Configuration comes from environment variables (PORT, CACHE_TYPE,
TAVILY_API_KEY, ...) and, optionally, a config file.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "optional config file (yaml, json or toml)")
}

func configFile(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
