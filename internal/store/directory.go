package store

import (
	"context"
	"errors"
	"strings"

	"github.com/kubev2v/patchcord-planner/internal/rackplan"
)

var _ rackplan.Directory = (*rackDirectory)(nil)

// rackDirectory serves rack lookups from the racks table.
type rackDirectory struct {
	store Store
}

func NewRackDirectory(s Store) rackplan.Directory {
	return &rackDirectory{store: s}
}

func (d *rackDirectory) RackIndex(ctx context.Context, code string) (int, error) {
	code = strings.TrimSpace(code)
	rack, err := d.store.Rack().Get(ctx, code)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return 0, rackplan.NewErrUnknownRackCode(code)
		}
		return 0, err
	}
	return rack.Index, nil
}

func (d *rackDirectory) List(ctx context.Context) ([]rackplan.RackInfo, error) {
	racks, err := d.store.Rack().List(ctx)
	if err != nil {
		return nil, err
	}
	return racks.ToRackInfos(), nil
}
