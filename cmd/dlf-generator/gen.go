package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dlf-generator/internal/config"
	"dlf-generator/internal/gen"
	"dlf-generator/internal/manifest"
)

func (a *app) genCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate the accessor package",
		Long: `Load and validate the manifest, extract every table header, materialize
the tables and write the generated package. Nothing is written when any
filter fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGen(cmd)
		},
	}

	d := config.DefaultConfig()

	f := cmd.Flags()
	f.String("out", d.Out, "output directory")
	f.String("import-path", d.ImportPath, "import path of the output directory (default derived from go.mod)")
	f.String("package", d.PackageName, "name of the generated index package")
	f.String("policy", d.Policy, "table format: text or binary")
	f.String("compression", d.Compression, "binary container compression: none, lz4 or zstd")
	f.Bool("embed", d.Embed, "embed the tables into the generated package")
	f.Bool("keep-text", d.KeepText, "also ship text tables with the binary policy")
	f.String("version", d.Version, "library version (default unknown-YYYYMMDD)")
	f.Bool("validate", d.Validate, "validate the manifest before generating")
	a.bind(f,
		config.KeyOut, config.KeyImportPath, config.KeyPackageName, config.KeyPolicy,
		config.KeyCompression, config.KeyEmbed, config.KeyKeepText, config.KeyVersion, config.KeyValidate,
	)

	return cmd
}

func (a *app) runGen(cmd *cobra.Command) error {
	cfg, m, err := a.loadManifest()
	if err != nil {
		return err
	}

	layout := cfg.Layout()

	if cfg.Validate {
		diags := manifest.Validate(m, layout)
		for _, w := range diags.Warnings {
			a.logger.Warn(w.Message, "code", w.Code, "at", w.Location())
		}

		if diags.HasErrors() {
			return &ExitError{Code: exitInvalid, Err: fmt.Errorf("manifest validation failed: %w", diags.Error())}
		}
	}

	gc, err := cfg.Generator(a.logger)
	if err != nil {
		return err
	}

	files, err := gen.NewGenerator(gc).Generate(m, layout)
	if err != nil {
		return err
	}

	if err := gen.WriteFiles(files, cfg.Out); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s generated %d filters (%d files) in %s\n",
		successStyle.Render("✓"), m.Len(), len(files), nameStyle.Render(cfg.Out))

	return nil
}
