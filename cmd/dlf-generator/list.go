package main

import (
	"github.com/spf13/cobra"

	"dlf-generator/internal/manifest"
)

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [transform...]",
		Short: "Print the manifest as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, err := a.loadManifest()
			if err != nil {
				return err
			}

			if len(args) > 0 {
				if err := checkTransforms(m, args); err != nil {
					return err
				}

				sub := &manifest.Manifest{}

				for _, name := range args {
					t, _ := m.Transform(name)
					sub.Transforms = append(sub.Transforms, *t)
				}

				m = sub
			}

			out, err := manifest.Marshal(m)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)

			return err
		},
	}
}
