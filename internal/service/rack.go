package service

import (
	"context"
	"fmt"

	"github.com/kubev2v/patchcord-planner/internal/rackplan"
	"github.com/kubev2v/patchcord-planner/internal/store"
	"github.com/kubev2v/patchcord-planner/internal/store/model"
	"github.com/kubev2v/patchcord-planner/pkg/log"
)

// RackService manages the rack lookup table.
type RackService struct {
	store  store.Store
	logger *log.StructuredLogger
}

func NewRackService(s store.Store) *RackService {
	return &RackService{
		store:  s,
		logger: log.NewDebugLogger("rack_service"),
	}
}

// Import replaces the stored plan with the racks of directory.
func (s *RackService) Import(ctx context.Context, directory rackplan.Directory) (int, error) {
	tracer := s.logger.WithContext(ctx).Operation("import_racks").Build()

	racks, err := directory.List(ctx)
	if err != nil {
		tracer.Error(err).Log()
		return 0, fmt.Errorf("failed to read rack plan: %w", err)
	}
	if len(racks) == 0 {
		err := NewErrInvalidRequest("rack plan is empty")
		tracer.Error(err).Log()
		return 0, err
	}

	ctx, err = s.store.NewTransactionContext(ctx)
	if err != nil {
		tracer.Error(err).Log()
		return 0, err
	}

	if err := s.store.Rack().Replace(ctx, model.NewRackList(racks)); err != nil {
		_, _ = store.Rollback(ctx)
		tracer.Error(err).Log()
		return 0, fmt.Errorf("failed to store rack plan: %w", err)
	}

	if _, err := store.Commit(ctx); err != nil {
		tracer.Error(err).Log()
		return 0, err
	}

	tracer.Success().WithInt("racks", len(racks)).Log()
	return len(racks), nil
}

func (s *RackService) Count(ctx context.Context) (int64, error) {
	return s.store.Rack().Count(ctx)
}
