// Package cli implements the biobank command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/biobank/internal/config"
	"github.com/mesh-intelligence/biobank/internal/logging"
	"github.com/mesh-intelligence/biobank/internal/paths"
	"github.com/mesh-intelligence/biobank/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Version is the release string, overridden at build time with -ldflags.
var Version = "0.1.0"

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
}

// app is the state shared by the subcommands of one invocation.
type app struct {
	flags    rootFlags
	settings *config.Settings
	log      zerolog.Logger
}

// userError marks failures caused by the invocation itself, such as a
// missing argument or an unknown flag.
type userError struct{ err error }

func (e userError) Error() string { return e.err.Error() }
func (e userError) Unwrap() error { return e.err }

// NewRootCmd creates the top-level "biobank" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "biobank",
		Short: "Biobank records over a relational store",
		Long: "biobank stores patients, tumors, biomodels, passages, trials and their\n" +
			"satellite records, and serves them over a generic CRUD API.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return userError{err} })

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")

	root.AddCommand(
		newVersionCmd(),
		a.newInitCmd(),
		a.newServeCmd(),
		a.newTablesCmd(),
		a.newListCmd(),
		a.newGetCmd(),
		a.newCreateCmd(),
		a.newUpdateCmd(),
		a.newDeleteCmd(),
		a.newExportCmd(),
		a.newImportCmd(),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitCode reports 1 for errors the caller can fix by changing the input
// and 2 for everything else.
func exitCode(err error) int {
	switch types.KindOf(err) {
	case types.KindNotFound, types.KindValidation, types.KindConstraint:
		return exitUserError
	}
	var ue userError
	if errors.As(err, &ue) {
		return exitUserError
	}
	return exitSysError
}

// load resolves the configuration directory, reads config.yaml and builds
// the logger. The version command needs neither.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	settings, err := config.Load(configDir, a.flags.dataDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opts := settings.Logging()
	opts.Writer = cmd.ErrOrStderr()
	log, err := logging.New(opts)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	a.settings = settings
	a.log = log
	return nil
}

// exactArgs is cobra.ExactArgs reporting a user error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return userError{err}
		}
		return nil
	}
}
