package crud

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

// checkSubtype enforces joined-table inheritance for a new subtype row: the
// base row must already exist and no sibling subtype may claim the same id.
// It runs inside the creating transaction.
func checkSubtype(ctx context.Context, q types.Querier, s *types.Schema, id string) error {
	base, err := types.SchemaFor(s.Base)
	if err != nil {
		return err
	}
	found, err := exists(ctx, q, base, id)
	if err != nil {
		return err
	}
	if !found {
		return types.Constraint(s.Table, fmt.Sprintf("%s %s does not exist", s.Base, id))
	}

	for _, sibling := range types.Subtypes(s.Base) {
		if sibling == s.Table {
			continue
		}
		ss, err := types.SchemaFor(sibling)
		if err != nil {
			return err
		}
		taken, err := exists(ctx, q, ss, id)
		if err != nil {
			return err
		}
		if taken {
			return types.Constraint(s.Table, fmt.Sprintf("%s %s is already a %s", s.Base, id, sibling))
		}
	}
	return nil
}

func exists(ctx context.Context, q types.Querier, s *types.Schema, id string) (bool, error) {
	var one int
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE %s = ?", quote(s.Table), quote(s.Key))
	err := q.QueryRowContext(ctx, query, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
