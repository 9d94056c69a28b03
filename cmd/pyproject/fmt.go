package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terror/pyproject/internal/format"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [path]",
	Short: "Format a pyproject.toml",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "exit non-zero if the file is not formatted, without rewriting it")
	fmtCmd.Flags().Bool("stdout", false, "print the formatted manifest to stdout instead of rewriting the file")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
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
	content, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return err
	}

	formatted := format.Source(string(content))
	changed := formatted != string(content)

	switch {
	case writeToStdout:
		fmt.Fprint(cmd.OutOrStdout(), formatted)
	case check:
		if changed {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is not formatted\n", path)
			cmd.SilenceErrors = true
			os.Exit(1)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is formatted\n", path)
		}
	case changed:
		if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil { // #nosec G306 -- manifest keeps its usual mode
			return err
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "formatted %s\n", path)
		}
	default:
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already formatted\n", path)
		}
	}
	return nil
}
