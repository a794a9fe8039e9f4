package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/fars-accidents/internal/domain"
	"github.com/couchcryptid/fars-accidents/internal/observability"
)

// MapOutcome describes a finished MapState call.
type MapOutcome struct {
	State    int
	Year     int
	Records  int // accidents of the state in that year
	Points   int // accidents drawn
	Unknown  int // accidents left off for unknown coordinates
	Bounds   domain.Bounds
	Rendered bool
}

// StateMapper plots one state's accident locations for one year.
type StateMapper struct {
	loader   Loader
	dataDir  string
	renderer MapRenderer
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewStateMapper creates a StateMapper reading archives from dataDir.
func NewStateMapper(loader Loader, dataDir string, renderer MapRenderer, logger *slog.Logger, metrics *observability.Metrics) *StateMapper {
	return &StateMapper{
		loader:   loader,
		dataDir:  dataDir,
		renderer: renderer,
		logger:   logger,
		metrics:  metrics,
	}
}

// MapState loads year, keeps the accidents of state and draws them over a
// base map fitted to their extent. Errors from filename building, loading and
// state coercion are returned unchanged; a state code absent from the file is
// a *domain.InvalidStateError. A state with nothing to plot logs a notice and
// returns an outcome with Rendered false and a nil error.
func (m *StateMapper) MapState(ctx context.Context, state, year any) (MapOutcome, error) {
	if err := ctx.Err(); err != nil {
		return MapOutcome{}, err
	}

	path, err := yearPath(m.dataDir, year)
	if err != nil {
		return MapOutcome{}, err
	}
	table, err := m.loader.Load(path)
	if err != nil {
		return MapOutcome{}, err
	}

	stateNum, err := domain.CoerceInt(state)
	if err != nil {
		return MapOutcome{}, err
	}
	if !table.HasState(stateNum) {
		m.logger.Debug("state not in data", "state", stateNum, "path", path, "states", table.States())
		return MapOutcome{}, &domain.InvalidStateError{State: state}
	}

	// year already coerced once by yearPath
	yearNum, _ := domain.CoerceInt(year)
	out := MapOutcome{State: stateNum, Year: yearNum}

	records := table.FilterState(stateNum)
	out.Records = len(records)
	if len(records) == 0 {
		return m.nothingToPlot(out), nil
	}

	records = domain.SanitizeCoordinates(records)
	points := domain.PlottablePoints(records)
	out.Points = len(points)
	out.Unknown = len(records) - len(points)
	m.metrics.PointsUnknown.Add(float64(out.Unknown))

	bounds, ok := domain.BoundsOf(points)
	if !ok {
		return m.nothingToPlot(out), nil
	}
	out.Bounds = bounds

	if err := m.renderer.DrawBaseMap(bounds); err != nil {
		return out, fmt.Errorf("draw base map: %w", err)
	}
	if err := m.renderer.DrawPoints(points); err != nil {
		return out, fmt.Errorf("draw points: %w", err)
	}
	if err := m.renderer.Flush(); err != nil {
		return out, fmt.Errorf("write map: %w", err)
	}

	out.Rendered = true
	m.metrics.MapsRendered.Inc()
	m.metrics.PointsPlotted.Add(float64(out.Points))
	m.logger.Info("state map rendered",
		"state", out.State,
		"year", out.Year,
		"points", out.Points,
		"unknown_coordinates", out.Unknown,
	)
	return out, nil
}

func (m *StateMapper) nothingToPlot(out MapOutcome) MapOutcome {
	m.metrics.MapsSkipped.Inc()
	m.logger.Info("no accidents to plot",
		"state", out.State,
		"year", out.Year,
		"records", out.Records,
	)
	return out
}
