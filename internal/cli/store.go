package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/biobank/internal/crud"
	"github.com/mesh-intelligence/biobank/internal/storage"
	"github.com/mesh-intelligence/biobank/pkg/types"
)

// attachBackend opens the configured store. The caller must Detach it.
func (a *app) attachBackend(ctx context.Context) (*storage.Backend, error) {
	backend := storage.NewBackend(a.log)
	if err := backend.Attach(ctx, a.settings.Store()); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}
	return backend, nil
}

// withStore runs fn with an engine and a session on a freshly attached
// backend, then releases both.
func (a *app) withStore(ctx context.Context, fn func(*crud.Engine, *storage.Session) error) error {
	backend, err := a.attachBackend(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Detach(); err != nil {
			a.log.Warn().Err(err).Msg("detach failed")
		}
	}()

	engine := crud.New(a.log, nil)
	return backend.WithSession(ctx, func(sess *storage.Session) error {
		return fn(engine, sess)
	})
}

// readPayload parses a JSON object given inline or, for "-", on stdin.
func readPayload(cmd *cobra.Command, table, arg string) (types.Payload, error) {
	data := []byte(arg)
	if arg == "-" {
		var err error
		if data, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	}
	p, err := types.ParsePayload(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", table, err)
	}
	return p, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// fileExists is used by import to fail early with a user error.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
