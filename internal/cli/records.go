package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/biobank/internal/crud"
	"github.com/mesh-intelligence/biobank/internal/storage"
	"github.com/mesh-intelligence/biobank/pkg/types"
)

func (a *app) newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the table names in dependency order",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range types.StandardTableNames {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func (a *app) newListCmd() *cobra.Command {
	var offset, limit int
	cmd := &cobra.Command{
		Use:   "list <table>",
		Short: "List rows of a table",
		Long: `List returns one page of rows in the store's natural order.

Example:
  biobank list patient
  biobank list tumor --offset 100 --limit 50`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = a.settings.DefaultPageSize
			}
			limit = min(limit, a.settings.MaxPageSize)

			var rows []types.Entity
			err := a.withStore(cmd.Context(), func(e *crud.Engine, sess *storage.Session) (err error) {
				rows, err = e.List(cmd.Context(), sess, args[0], offset, limit)
				return err
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, rows)
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows to return (default: default_page_size)")
	return cmd
}

func (a *app) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <table> <id>",
		Short: "Show one row by primary key",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var row types.Entity
			err := a.withStore(cmd.Context(), func(e *crud.Engine, sess *storage.Session) (err error) {
				row, err = e.Get(cmd.Context(), sess, args[0], args[1])
				return err
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, row)
		},
	}
}

func (a *app) newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <table> <json|->",
		Short: "Create a row from a JSON object",
		Long: `Create validates the JSON object against the table schema and inserts it.
Pass - to read the object from stdin. Surrogate ids are generated when omitted.

Example:
  biobank create patient '{"nhc":"NHC-1","sex":"F"}'
  echo '{"biobank_code":"TUM-1","patient_nhc":"NHC-1"}' | biobank create tumor -`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readPayload(cmd, args[0], args[1])
			if err != nil {
				return err
			}
			var row types.Entity
			err = a.withStore(cmd.Context(), func(e *crud.Engine, sess *storage.Session) (err error) {
				row, err = e.Create(cmd.Context(), sess, args[0], p)
				return err
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, row)
		},
	}
}

func (a *app) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <table> <id> <json|->",
		Short: "Merge-patch a row",
		Long: `Update applies the supplied fields to the row. Fields absent from the
object keep their stored values; a null clears an optional field.`,
		Args: exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readPayload(cmd, args[0], args[2])
			if err != nil {
				return err
			}
			var row types.Entity
			err = a.withStore(cmd.Context(), func(e *crud.Engine, sess *storage.Session) (err error) {
				row, err = e.Update(cmd.Context(), sess, args[0], args[1], p)
				return err
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, row)
		},
	}
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <table> <id>",
		Short: "Delete a row by primary key",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.withStore(cmd.Context(), func(e *crud.Engine, sess *storage.Session) error {
				return e.Delete(cmd.Context(), sess, args[0], args[1])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", args[0], args[1])
			return nil
		},
	}
}
