package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"dlf-generator/internal/diagnostic"
	"dlf-generator/internal/manifest"
)

func (a *app) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the manifest against its schema and tables",
		Long: `Check that every transform has a data directory, that filter names and
files carry the citation key and point count, that every value name occurs
in the file name and that every table exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, m, err := a.loadManifest()
			if err != nil {
				return err
			}

			diags := manifest.Validate(m, cfg.Layout())
			printDiagnostics(cmd.OutOrStdout(), diags)

			if diags.HasErrors() {
				return &ExitError{Code: exitInvalid, Err: errors.New("manifest validation failed")}
			}

			return nil
		},
	}
}

// printDiagnostics writes a styled report, errors first.
func printDiagnostics(w io.Writer, d *diagnostic.Diagnostics) {
	for _, group := range [][]diagnostic.Diagnostic{d.Errors, d.Warnings} {
		for _, diag := range group {
			label := subtitleStyle.Render(diag.Severity.String())

			switch diag.Severity {
			case diagnostic.DiagnosticError:
				label = errorStyle.Render("error")
			case diagnostic.DiagnosticWarning:
				label = warningStyle.Render("warning")
			}

			loc := diag.Location()
			if loc != "" {
				loc = nameStyle.Render(loc) + ": "
			}

			fmt.Fprintf(w, "%s %s%s %s\n", label, loc, diag.Message, subtitleStyle.Render("["+diag.Code+"]"))
		}
	}

	if d.IsValid() {
		fmt.Fprintf(w, "%s manifest is valid (%d warnings)\n", successStyle.Render("✓"), len(d.Warnings))
		return
	}

	fmt.Fprintf(w, "%s %d errors, %d warnings\n", errorStyle.Render("✗"), len(d.Errors), len(d.Warnings))
}
