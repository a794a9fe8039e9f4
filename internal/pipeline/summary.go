package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/fars-accidents/internal/domain"
)

// YearLoader produces per-year results in request order.
type YearLoader interface {
	LoadYears(ctx context.Context, years []string) []domain.YearResult
}

// Summarizer builds month x year accident count tables.
type Summarizer struct {
	years  YearLoader
	logger *slog.Logger
}

// NewSummarizer creates a Summarizer on top of a YearLoader.
func NewSummarizer(years YearLoader, logger *slog.Logger) *Summarizer {
	return &Summarizer{years: years, logger: logger}
}

// Summarize loads the requested years, concatenates the ones that loaded and
// counts accidents per (month, year). Failed years contribute nothing; the
// per-year results are returned alongside for reporting.
func (s *Summarizer) Summarize(ctx context.Context, years []string) (domain.MonthlySummary, []domain.YearResult) {
	results := s.years.LoadYears(ctx, years)

	var rows []domain.MonthYear
	loaded := 0
	for _, r := range results {
		if !r.OK() {
			continue
		}
		rows = append(rows, r.Records...)
		loaded++
	}

	summary := domain.Summarize(rows)
	if summary.Empty() && len(years) > 0 {
		s.logger.Warn("no years loaded", "years_requested", len(years))
	}
	for _, y := range summary.Years {
		s.logger.Debug("year summarized", "year", y, "accidents", summary.Total(y))
	}
	s.logger.Info("monthly summary built",
		"years_requested", len(years),
		"years_loaded", loaded,
		"records", len(rows),
		"months", len(summary.Months),
	)
	return summary, results
}
