package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"clinear/internal/auth"
	"clinear/internal/linear"
	"clinear/internal/operations"
	"clinear/internal/progress"
	"clinear/internal/prompt"
	"clinear/internal/transform"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "clinear",
	Short:         "Linear terminal utilities",
	Long:          `Bulk-edit Linear issue labels from the terminal: group loose labels under a parent label, or rename many labels at once with a pattern.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var dryRun bool

var groupCmd = &cobra.Command{
	Use:   "group-labels",
	Short: "Group a set of labels under another label",
	Long:  `Pick any number of labels that are not in a group yet, pick the label to move them under, confirm, and every chosen label gets that parent.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ops, err := setupOperations(cmd.Context())
		if err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}

		_, err = ops.GroupLabels(cmd.Context(), operations.GroupOptions{DryRun: dryRun})
		return err
	},
}

var pattern string
var ignoreUnmatched bool
var caseName transform.Case
var trim bool

var renameCmd = &cobra.Command{
	Use:   "rename-labels",
	Short: "Rename a set of labels",
	Long: `Rename a set of labels

Examples:

1. Remove a common prefix and format as a 'Capital Case' with whitespace trimmed.

> clinear rename-labels --case capital --ignore-unmatched --trim --pattern '^.*/(.*)$ -> $1'
"common-prefix/this-is-a-label" -> "This Is A Label"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := transform.ParsePattern(pattern)
		if err != nil {
			return err
		}

		ops, err := setupOperations(cmd.Context())
		if err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}

		_, err = ops.RenameLabels(cmd.Context(), operations.RenameOptions{
			Transform: transform.Options{
				Pattern: p,
				Case:    caseName,
				Trim:    trim,
				Locale:  localeFromEnv(os.Getenv),
			},
			IgnoreUnmatched: ignoreUnmatched,
			DryRun:          dryRun,
		})
		return err
	},
}

var apiKey string
var oauthToken string
var configPath string
var endpoint string
var debug bool
var rateLimitDelay int
var maxRetries int

func init() {
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(renameCmd)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&apiKey, "api-key", "k", "", "Linear API key (defaults to $"+auth.APIKeyEnv+")")
	flags.StringVar(&oauthToken, "oauth-token", "", "Linear OAuth access token (defaults to $"+auth.OAuthTokenEnv+")")
	flags.StringVar(&configPath, "config", auth.DefaultConfigPath(), "Config file holding api_key or oauth_token")
	flags.StringVar(&endpoint, "endpoint", linear.DefaultEndpoint, "Linear GraphQL endpoint")
	flags.BoolVar(&debug, "debug", false, "Log every API request")
	flags.IntVar(&rateLimitDelay, "rate-limit-delay", 200, "Minimum delay between API calls in milliseconds")
	flags.IntVar(&maxRetries, "max-retries", 3, "Maximum number of retries for rate-limited updates")
	_ = flags.MarkHidden("endpoint")

	groupCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show which labels would move without changing anything")

	renameCmd.Flags().StringVarP(&pattern, "pattern", "p", transform.DefaultPattern, "The 'match -> replace' pattern to use")
	renameCmd.Flags().BoolVarP(&ignoreUnmatched, "ignore-unmatched", "i", false, "Skip labels that don't match the pattern")
	renameCmd.Flags().VarP(&caseName, "case", "c", "Transform the label to a specific casing ("+strings.Join(transform.CaseNames(), ", ")+")")
	renameCmd.Flags().BoolVarP(&trim, "trim", "t", false, "Trim whitespace from the label")
	renameCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the renames without applying them")

	_ = renameCmd.RegisterFlagCompletionFunc("case", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return transform.CaseNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

func setupOperations(ctx context.Context) (*operations.Operations, error) {
	creds, err := auth.Resolve(auth.Sources{
		APIKeyFlag:     apiKey,
		OAuthTokenFlag: oauthToken,
		ConfigPath:     configPath,
		Getenv:         os.Getenv,
	})
	if err != nil {
		return nil, err
	}

	httpClient, err := auth.HTTPClient(ctx, creds)
	if err != nil {
		return nil, err
	}

	client := linear.NewClient(httpClient,
		linear.WithEndpoint(endpoint),
		linear.WithRequestInterval(time.Duration(rateLimitDelay)*time.Millisecond),
		linear.WithDebug(debug),
	)

	config := &operations.Config{
		MaxRetries: maxRetries,
		Out:        os.Stdout,
	}

	return operations.NewOperationsWithConfig(
		client,
		prompt.NewTerminal(os.Stdin, os.Stdout),
		progress.NewTerminal(os.Stdout, os.Stderr),
		config,
	), nil
}

// localeFromEnv reads the POSIX locale variables (e.g. "tr_TR.UTF-8").
func localeFromEnv(getenv func(string) string) language.Tag {
	for _, name := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		value := getenv(name)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		value, _, _ = strings.Cut(value, ".")
		value, _, _ = strings.Cut(value, "@")
		if tag, err := language.Parse(strings.ReplaceAll(value, "_", "-")); err == nil {
			return tag
		}
	}
	return language.Und
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
