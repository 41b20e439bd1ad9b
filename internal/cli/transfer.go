package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/biobank/internal/crud"
	"github.com/mesh-intelligence/biobank/internal/storage"
)

func (a *app) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <table> <file>",
		Short: "Write every row of a table to a JSONL file",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var n int
			err := a.withStore(cmd.Context(), func(e *crud.Engine, sess *storage.Session) (err error) {
				n, err = e.Export(cmd.Context(), sess, args[0], args[1])
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s rows to %s\n", n, args[0], args[1])
			return nil
		},
	}
}

func (a *app) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <table> <file>",
		Short: "Create rows from a JSONL file",
		Long: `Import creates one row per line through the same validation as create.
It stops at the first rejected record; rows before it stay committed.`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !fileExists(args[1]) {
				return userError{fmt.Errorf("import: no such file %s", args[1])}
			}
			var n int
			err := a.withStore(cmd.Context(), func(e *crud.Engine, sess *storage.Session) (err error) {
				n, err = e.Import(cmd.Context(), sess, args[0], args[1])
				return err
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s rows from %s\n", n, args[0], args[1])
			return err
		},
	}
}
