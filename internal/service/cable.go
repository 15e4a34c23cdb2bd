package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/kubev2v/patchcord-planner/internal/bom"
	"github.com/kubev2v/patchcord-planner/internal/cable"
	"github.com/kubev2v/patchcord-planner/internal/rackplan"
	"github.com/kubev2v/patchcord-planner/pkg/log"
	"github.com/kubev2v/patchcord-planner/pkg/metrics"
)

// Endpoint is one end of a link as entered by an operator.
type Endpoint struct {
	RackCode string
	Unit     int
	Hostname string
}

// ResolvedEndpoint is an endpoint whose rack code was found in the directory.
type ResolvedEndpoint struct {
	Endpoint
	RackIndex int
}

// CalculationForm describes one link. Slack values are optional; when
// SafetySlackCm is set it takes precedence over CrossRackSlackM.
type CalculationForm struct {
	ServerA         Endpoint
	ServerB         Endpoint
	SafetySlackCm   *float64
	CrossRackSlackM *float64
}

type CalculationResult struct {
	ServerA   ResolvedEndpoint
	ServerB   ResolvedEndpoint
	Breakdown cable.CableLengthBreakdown
}

type BatchResult struct {
	Results         []CalculationResult
	BillOfMaterials bom.BillOfMaterials
}

// CableService resolves rack codes and runs the length calculator.
type CableService struct {
	directory rackplan.Directory
	logger    *log.StructuredLogger
}

func NewCableService(directory rackplan.Directory) *CableService {
	return &CableService{
		directory: directory,
		logger:    log.NewDebugLogger("cable_service"),
	}
}

func (s *CableService) Calculate(ctx context.Context, form CalculationForm) (*CalculationResult, error) {
	tracer := s.logger.WithContext(ctx).Operation("calculate").
		WithString("rack_a", form.ServerA.RackCode).
		WithInt("unit_a", form.ServerA.Unit).
		WithString("rack_b", form.ServerB.RackCode).
		WithInt("unit_b", form.ServerB.Unit).
		Build()

	result, err := s.calculate(ctx, form)
	if err != nil {
		metrics.IncreaseCalculationErrors(errorReason(err))
		tracer.Error(err).Log()
		return nil, err
	}

	metrics.ObserveCalculation(result.Breakdown.SameRack, result.Breakdown.RecommendedPatchCord)
	tracer.Success().
		WithFloat("raw_total_m", result.Breakdown.RawTotal).
		WithFloat("recommended_m", result.Breakdown.RecommendedPatchCord).
		Log()

	return result, nil
}

// CalculateBatch computes every link in order and stops at the first
// failure, which is returned as *ErrBatchLink.
func (s *CableService) CalculateBatch(ctx context.Context, forms []CalculationForm) (*BatchResult, error) {
	tracer := s.logger.WithContext(ctx).Operation("calculate_batch").
		WithInt("links", len(forms)).
		Build()

	if len(forms) == 0 {
		err := NewErrInvalidRequest("a batch needs at least one link")
		tracer.Error(err).Log()
		return nil, err
	}

	builder := bom.NewBuilder()
	results := make([]CalculationResult, 0, len(forms))
	for i, form := range forms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := s.Calculate(ctx, form)
		if err != nil {
			err = NewErrBatchLink(i, err)
			tracer.Error(err).Log()
			return nil, err
		}
		builder.Add(result.Breakdown)
		results = append(results, *result)
	}

	bill := builder.Build()
	tracer.Success().
		WithInt("total_cords", bill.TotalCords).
		WithFloat("total_m", bill.TotalMeters).
		Log()

	return &BatchResult{Results: results, BillOfMaterials: bill}, nil
}

func (s *CableService) ListRacks(ctx context.Context) ([]rackplan.RackInfo, error) {
	racks, err := s.directory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list racks: %w", err)
	}
	return racks, nil
}

func (s *CableService) calculate(ctx context.Context, form CalculationForm) (*CalculationResult, error) {
	cfg, err := cableConfig(form)
	if err != nil {
		return nil, err
	}

	a, err := s.resolve(ctx, form.ServerA)
	if err != nil {
		return nil, err
	}
	b, err := s.resolve(ctx, form.ServerB)
	if err != nil {
		return nil, err
	}

	breakdown, err := cable.ComputeBreakdown(
		cable.ServerLocation{Rack: a.RackIndex, Unit: a.Unit},
		cable.ServerLocation{Rack: b.RackIndex, Unit: b.Unit},
		&cfg,
	)
	if err != nil {
		return nil, err
	}

	return &CalculationResult{ServerA: a, ServerB: b, Breakdown: breakdown}, nil
}

func (s *CableService) resolve(ctx context.Context, e Endpoint) (ResolvedEndpoint, error) {
	idx, err := s.directory.RackIndex(ctx, e.RackCode)
	if err != nil {
		var unknown *rackplan.ErrUnknownRackCode
		if errors.As(err, &unknown) {
			return ResolvedEndpoint{}, NewErrUnknownRack(unknown.Code)
		}
		return ResolvedEndpoint{}, fmt.Errorf("failed to resolve rack %q: %w", e.RackCode, err)
	}
	return ResolvedEndpoint{Endpoint: e, RackIndex: idx}, nil
}

func cableConfig(form CalculationForm) (cable.CableConfig, error) {
	cfg := cable.DefaultCableConfig()

	switch {
	case form.SafetySlackCm != nil:
		v := *form.SafetySlackCm
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return cfg, NewErrNegativeSlack("safety_slack_cm", v)
		}
		cfg.SafetyMarginMeters = v / 100
	case form.CrossRackSlackM != nil:
		v := *form.CrossRackSlackM
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return cfg, NewErrNegativeSlack("cross_rack_slack_m", v)
		}
		cfg.SafetyMarginMeters = v
	}

	return cfg, nil
}

func errorReason(err error) string {
	var (
		unknown  *ErrUnknownRack
		invalid  *ErrInvalidRequest
		location *cable.ErrInvalidLocation
	)
	switch {
	case errors.As(err, &unknown):
		return "unknown_rack"
	case errors.As(err, &location):
		return "invalid_location"
	case errors.As(err, &invalid):
		return "invalid_request"
	default:
		return "internal"
	}
}
