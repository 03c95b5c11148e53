// ABOUTME: fetch command running one retrieval from the command line
// ABOUTME: Prints the filtered provider payload, or normalized items, as JSON

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mentions-api/core/domain"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <name>",
	Short: "Fetch recent news for one subject and print it as JSON",
	Long: `fetch runs the same retrieval as POST /api/fetch-news: cache lookup,
provider search, freshness filter, cache store. The subject name is used
verbatim.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		a, err := newApp(ctx, configFile(cmd))
		if err != nil {
			return err
		}
		defer a.Close()

		items, _ := cmd.Flags().GetBool("items")
		return runFetch(ctx, a.news, args[0], items, cmd.OutOrStdout())
	},
}

func init() {
	fetchCmd.Flags().Bool("items", false, "print normalized feed items instead of the provider payload")
	rootCmd.AddCommand(fetchCmd)
}

// fetcher is the part of the news service the command needs
type fetcher interface {
	Fetch(ctx context.Context, name string) (*domain.NewsPayload, error)
	FetchItems(ctx context.Context, name string) ([]domain.NewsItem, error)
}

func runFetch(ctx context.Context, svc fetcher, name string, items bool, out io.Writer) error {
	var result interface{}
	if items {
		list, err := svc.FetchItems(ctx, name)
		if err != nil {
			return fmt.Errorf("fetch %q: %w", name, err)
		}
		if list == nil {
			list = []domain.NewsItem{}
		}
		result = list
	} else {
		payload, err := svc.Fetch(ctx, name)
		if err != nil {
			return fmt.Errorf("fetch %q: %w", name, err)
		}
		result = payload
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}

