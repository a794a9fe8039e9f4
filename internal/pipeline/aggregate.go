package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/fars-accidents/internal/domain"
	"github.com/couchcryptid/fars-accidents/internal/observability"
)

// Aggregator loads several years and tags each record with its year.
type Aggregator struct {
	loader  Loader
	dataDir string
	workers int
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewAggregator creates an Aggregator reading archives from dataDir. workers
// bounds how many years load at once; values below 2 load sequentially.
func NewAggregator(loader Loader, dataDir string, workers int, logger *slog.Logger, metrics *observability.Metrics) *Aggregator {
	if workers < 1 {
		workers = 1
	}
	return &Aggregator{
		loader:  loader,
		dataDir: dataDir,
		workers: workers,
		logger:  logger,
		metrics: metrics,
	}
}

// LoadYears loads every requested year independently and returns one result
// per input, in input order. A year that cannot be coerced, found or parsed
// yields a failed result and a warning; it never stops the other years.
func (a *Aggregator) LoadYears(ctx context.Context, years []string) []domain.YearResult {
	results := make([]domain.YearResult, len(years))
	a.metrics.YearsRequested.Add(float64(len(years)))

	if a.workers == 1 {
		for i, y := range years {
			results[i] = a.loadYear(ctx, y)
		}
		return results
	}

	// Each goroutine owns its slot, so order holds without locking.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, y := range years {
		g.Go(func() error {
			results[i] = a.loadYear(gctx, y)
			return nil
		})
	}
	_ = g.Wait() // loadYear never returns an error to the group

	return results
}

func (a *Aggregator) loadYear(ctx context.Context, input string) domain.YearResult {
	res := domain.YearResult{Input: input}

	if err := ctx.Err(); err != nil {
		return a.fail(res, err)
	}

	year, err := domain.CoerceInt(input)
	if err != nil {
		return a.fail(res, err)
	}
	res.Year = year

	path, err := yearPath(a.dataDir, year)
	if err != nil {
		return a.fail(res, err)
	}

	table, err := a.loader.Load(path)
	if err != nil {
		return a.fail(res, err)
	}

	res.Records = domain.Project(table, year)
	return res
}

func (a *Aggregator) fail(res domain.YearResult, err error) domain.YearResult {
	res.Err = err
	a.metrics.YearsSkipped.Inc()
	a.logger.Warn("invalid year", "year", res.Input, "error", err)
	return res
}
