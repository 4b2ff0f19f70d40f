package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/citelens/citations-bot/internal/citations"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "citectl",
		Short: "Citation extraction toolbox",
		Long: `citectl runs the brand citation extraction engine against AI
response text from the command line.

It detects brand mentions (direct, comparison, recommendation,
alternative, feature, review, question), attaches word-boundary
context windows and scores each mention for sentiment, prominence
and confidence.`,
		Version: version,
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(aliasesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func extractCmd() *cobra.Command {
	var (
		responseFile  string
		query         string
		brands        []string
		platform      string
		contextWindow int
		noContext     bool
		compact       bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract brand citations from a response",
		Long: `Extract brand citations from AI response text.

The response is read from --response-file, or from stdin when the
flag is omitted.

Example:
  citectl extract --brands Slack,Notion --query "best chat tools" --response-file answer.txt
  cat answer.txt | citectl extract --brands Slack --platform openai`,
		RunE: func(cmd *cobra.Command, args []string) error {
			response, err := readResponse(responseFile)
			if err != nil {
				return err
			}

			req := citations.NewRequest(response, query, brands)
			if platform != "" {
				req.Platform = platform
			}
			if contextWindow > 0 {
				req.ContextWindow = contextWindow
			}
			req.IncludeContext = !noContext

			extractor := citations.NewExtractor(citations.Config{})
			result, err := extractor.Extract(req)
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				encoder.SetIndent("", "  ")
			}
			return encoder.Encode(result)
		},
	}

	cmd.Flags().StringVarP(&responseFile, "response-file", "f", "", "file containing the response text (default: stdin)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "query that produced the response")
	cmd.Flags().StringSliceVarP(&brands, "brands", "b", nil, "brands to search for (comma separated)")
	cmd.Flags().StringVarP(&platform, "platform", "p", "", "platform the response came from")
	cmd.Flags().IntVarP(&contextWindow, "window", "w", 0, "context window size in bytes")
	cmd.Flags().BoolVar(&noContext, "no-context", false, "omit context excerpts from mentions")
	cmd.Flags().BoolVar(&compact, "compact", false, "print compact JSON")
	cmd.MarkFlagRequired("brands")

	return cmd
}

func aliasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aliases [brand...]",
		Short: "Show the search aliases generated for brand names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := citations.NewAliasResolver(nil)
			for _, brand := range args {
				aliases, err := resolver.Resolve(brand)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", brand, strings.Join(aliases, ", "))
			}
			return nil
		},
	}
}

func readResponse(responseFile string) (string, error) {
	if responseFile != "" {
		data, err := os.ReadFile(responseFile)
		if err != nil {
			return "", fmt.Errorf("failed to read response file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read response from stdin: %w", err)
	}
	return string(data), nil
}
