package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"dlf-generator/dlf"
	"dlf-generator/internal/verify"
)

func (a *app) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [transform...]",
		Short: "Check filters against Gaussian transform pairs",
		Long: fmt.Sprintf(`Evaluate every hankel j0/j1 and fourier sin/cos filter at r = %g and compare
it with the closed-form transform of a Gaussian. A relative error above %g
fails the check. Other values are reported as skipped.`, verify.Offset, verify.Tolerance),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, m, err := a.loadManifest()
			if err != nil {
				return err
			}

			if err := checkTransforms(m, args); err != nil {
				return err
			}

			layout := cfg.Layout()
			lib := dlf.NewLibrary(os.DirFS(layout.LibDir))

			for _, t := range m.Transforms {
				if len(args) > 0 && !slices.Contains(args, t.Name) {
					continue
				}

				for _, f := range t.Filters {
					file, err := layout.LibPath(f)
					if err != nil {
						return err
					}

					lib.Register(dlf.Spec{
						Transform: t.Name,
						Name:      f.Name,
						File:      file,
						Values:    f.ValueNames(),
						Points:    f.Points,
					})
				}
			}

			if err := lib.LoadAll(cmd.Context()); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			failed := false

			for _, acc := range lib.Accessors() {
				tbl, err := acc.Load()
				if err != nil {
					return err
				}

				results := verify.Check(tbl, acc.Transform())
				failed = failed || verify.Failed(results)

				fmt.Fprintln(w, titleStyle.Render(acc.Transform()+"/"+acc.Name()))

				for _, r := range results {
					mark := successStyle.Render("✓")

					switch r.Status {
					case verify.StatusFail:
						mark = errorStyle.Render("✗")
					case verify.StatusSkipped:
						mark = subtitleStyle.Render("-")
					}

					fmt.Fprintf(w, "  %s %s\n", mark, r)
				}
			}

			if failed {
				return &ExitError{Code: exitInvalid, Err: errors.New("some filters failed verification")}
			}

			return nil
		},
	}
}
