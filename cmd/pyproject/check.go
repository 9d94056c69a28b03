package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terror/pyproject/internal/analysis"
	"github.com/terror/pyproject/internal/diagfmt"
	"github.com/terror/pyproject/internal/source"
	"github.com/terror/pyproject/internal/toml"
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Check a pyproject.toml for problems",
	Long:  `Check runs every rule against a manifest and prints the diagnostics. Without a path it searches the current directory and its parents for pyproject.toml`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("no-source", false, "omit source context lines from pretty output")
	checkCmd.Flags().Int("max-diagnostics", 0, "print at most this many diagnostics (0 means all)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	noSource, err := cmd.Flags().GetBool("no-source")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	path, err := findManifest(arg)
	if err != nil {
		return err
	}
	file, err := source.Load(path)
	if err != nil {
		return err
	}

	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	result := analysis.AnalyzeDocument(toml.ParseFile(file, 0))
	shown := result.Diagnostics
	if maxDiagnostics > 0 && len(shown) > maxDiagnostics {
		shown = shown[:maxDiagnostics]
	}

	switch outputFormat {
	case "pretty":
		diagfmt.Pretty(cmd.OutOrStdout(), file, shown, diagfmt.PrettyOpts{
			Color:      useColor(cmd, os.Stdout),
			ShowSource: !noSource,
		})
		if !quiet {
			printCheckSummary(cmd, result)
		}
	case "json":
		if err := diagfmt.WriteJSON(cmd.OutOrStdout(), file, shown, diagfmt.JSONOpts{
			IncludePositions: true,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", outputFormat)
	}

	if result.HasErrors() {
		cmd.SilenceErrors = true
		os.Exit(1)
	}
	return nil
}

func printCheckSummary(cmd *cobra.Command, result *analysis.Result) {
	if len(result.Diagnostics) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no problems found")
		return
	}
	word := "problems"
	if len(result.Diagnostics) == 1 {
		word = "problem"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d %s found\n", len(result.Diagnostics), word)
}
