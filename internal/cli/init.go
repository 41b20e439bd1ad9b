package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize biobank storage",
		Long: "Create the configuration and data directories, write a default config.yaml\n" +
			"if none exists, and apply the schema migrations to the configured store.",
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, err := a.attachBackend(cmd.Context())
			if err != nil {
				return err
			}
			if err := backend.Detach(); err != nil {
				return fmt.Errorf("finalize storage: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Biobank initialized successfully")
			fmt.Fprintf(out, "config: %s\n", a.settings.ConfigDir)
			fmt.Fprintf(out, "store:  %s\n", backend.Dialect().Name)
			return nil
		},
	}
}
