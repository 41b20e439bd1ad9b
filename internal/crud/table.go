package crud

import (
	"context"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

// tableView binds an engine and a session to one table.
type tableView struct {
	engine *Engine
	sess   types.Session
	name   string
}

var _ types.Table = (*tableView)(nil)

// Table returns a view of the named table bound to sess. The view is only
// valid while sess is open.
func (e *Engine) Table(sess types.Session, name string) (types.Table, error) {
	if _, err := types.SchemaFor(name); err != nil {
		return nil, err
	}
	return &tableView{engine: e, sess: sess, name: name}, nil
}

func (t *tableView) Name() string { return t.name }

func (t *tableView) List(ctx context.Context, offset, limit int) ([]types.Entity, error) {
	return t.engine.List(ctx, t.sess, t.name, offset, limit)
}

func (t *tableView) Get(ctx context.Context, id string) (types.Entity, error) {
	return t.engine.Get(ctx, t.sess, t.name, id)
}

func (t *tableView) Create(ctx context.Context, payload types.Payload) (types.Entity, error) {
	return t.engine.Create(ctx, t.sess, t.name, payload)
}

func (t *tableView) Update(ctx context.Context, id string, patch types.Payload) (types.Entity, error) {
	return t.engine.Update(ctx, t.sess, t.name, id, patch)
}

func (t *tableView) Delete(ctx context.Context, id string) error {
	return t.engine.Delete(ctx, t.sess, t.name, id)
}
