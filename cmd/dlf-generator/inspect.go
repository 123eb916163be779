package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"dlf-generator/internal/header"
	"dlf-generator/internal/manifest"
)

func (a *app) inspectCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "inspect <transform> <name>",
		Short: "Show the documentation extracted from a filter table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, m, err := a.loadManifest()
			if err != nil {
				return err
			}

			f, err := lookupFilter(m, args[0], args[1])
			if err != nil {
				return err
			}

			fh, err := os.Open(cfg.Layout().Path(*f))
			if err != nil {
				return err
			}
			defer fh.Close()

			doc, err := header.Extract(fh, *f, header.Options{Marker: cfg.Marker, Sentinel: cfg.Sentinel})
			if err != nil {
				return err
			}

			md := doc.Markdown() + descriptorMarkdown(args[0], *f)
			if raw {
				_, err = fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}

			out, err := renderMarkdown(md)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without rendering")

	return cmd
}

func descriptorMarkdown(transform string, f manifest.Filter) string {
	var sb strings.Builder

	sb.WriteString("\n## Descriptor\n\n")
	sb.WriteString("| field | value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| transform | %s |\n", transform)
	fmt.Fprintf(&sb, "| name | %s |\n", f.Name)
	fmt.Fprintf(&sb, "| citation | %s %s |\n", f.Author, f.CitationKey())
	fmt.Fprintf(&sb, "| points | %d |\n", f.Points)
	fmt.Fprintf(&sb, "| values | %s |\n", f.Values)
	fmt.Fprintf(&sb, "| file | %s |\n", f.File)

	return sb.String()
}

// renderMarkdown renders markdown for the terminal using glamour.
func renderMarkdown(md string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}

	return renderer.Render(md)
}
