package biobank_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/biobank/pkg/biobank"
	"github.com/mesh-intelligence/biobank/pkg/types"
)

func ExampleOpen() {
	ctx := context.Background()
	dir, err := os.MkdirTemp("", "biobank-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	cfg := types.Config{DatabaseURL: "sqlite:///" + filepath.Join(dir, "biobank.db")}
	store, err := biobank.Open(ctx, cfg, biobank.Options{Log: zerolog.Nop()})
	if err != nil {
		panic(err)
	}
	defer store.Close()

	err = store.WithTable(ctx, types.TablePatient, func(t types.Table) error {
		payload, err := types.PayloadFrom(map[string]any{"nhc": "NHC-1"})
		if err != nil {
			return err
		}
		created, err := t.Create(ctx, payload)
		if err != nil {
			return err
		}
		fmt.Println(created.Key())
		return nil
	})
	if err != nil {
		panic(err)
	}
	// Output: NHC-1
}
