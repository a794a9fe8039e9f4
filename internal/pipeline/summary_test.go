package pipeline_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/fars-accidents/internal/adapter/farscsv"
	"github.com/couchcryptid/fars-accidents/internal/domain"
	"github.com/couchcryptid/fars-accidents/internal/observability"
	"github.com/couchcryptid/fars-accidents/internal/pipeline"
)

var fixtureDir = filepath.Join("..", "adapter", "farscsv", "testdata")

func TestSummarize_SkipsAbsentYears(t *testing.T) {
	agg := pipeline.NewAggregator(newLoader(), ".", 1, discardLogger(), observability.NewMetricsForTesting())
	s := pipeline.NewSummarizer(agg, discardLogger())

	summary, results := s.Summarize(context.Background(), []string{"2013", "2020", "2014"})

	require.Len(t, results, 3)
	assert.False(t, results[1].OK())

	if diff := cmp.Diff([]int{2013, 2014}, summary.Years); diff != "" {
		t.Errorf("years mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, summary.Months); diff != "" {
		t.Errorf("months mismatch (-want +got):\n%s", diff)
	}

	n, ok := summary.Count(1, 2013)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = summary.Count(3, 2013)
	assert.False(t, ok, "month 3 has no 2013 accidents")
}

func TestSummarize_NothingLoaded(t *testing.T) {
	logs := &captureHandler{}
	agg := pipeline.NewAggregator(newLoader(), ".", 1, discardLogger(), observability.NewMetricsForTesting())
	s := pipeline.NewSummarizer(agg, slog.New(logs))

	summary, results := s.Summarize(context.Background(), []string{"1980"})

	assert.True(t, summary.Empty())
	require.Len(t, results, 1)
	assert.False(t, results[0].OK())
	assert.Equal(t, []string{"no years loaded"}, logs.messages(slog.LevelWarn))
	assert.Empty(t, logs.messages(slog.LevelDebug))
}

func TestSummarize_LogsYearTotals(t *testing.T) {
	logs := &captureHandler{}
	agg := pipeline.NewAggregator(newLoader(), ".", 1, discardLogger(), observability.NewMetricsForTesting())
	s := pipeline.NewSummarizer(agg, slog.New(logs))

	_, _ = s.Summarize(context.Background(), []string{"2015"})

	assert.Empty(t, logs.messages(slog.LevelWarn))
	assert.Equal(t, []string{"year summarized"}, logs.messages(slog.LevelDebug))
	assert.Equal(t, "3", logs.attr("year summarized", "accidents"))
}

func TestSummarize_TypoRangeFailsOnce(t *testing.T) {
	loader := newLoader()
	logs := &captureHandler{}
	agg := pipeline.NewAggregator(loader, ".", 1, slog.New(logs), observability.NewMetricsForTesting())
	s := pipeline.NewSummarizer(agg, discardLogger())

	_, results := s.Summarize(context.Background(), domain.ExpandYears([]string{"2013:20150"}))

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, domain.ErrTypeConversion)
	assert.Len(t, logs.messages(slog.LevelWarn), 1)
	assert.Empty(t, loader.calls)
}

func TestSummarize_Fixtures(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	reader := farscsv.NewReader(discardLogger(), metrics)

	for _, workers := range []int{1, 3} {
		agg := pipeline.NewAggregator(reader, fixtureDir, workers, discardLogger(), metrics)
		s := pipeline.NewSummarizer(agg, discardLogger())

		summary, results := s.Summarize(context.Background(), domain.ExpandYears([]string{"2013:2015"}))

		require.Len(t, results, 3)
		for _, r := range results {
			require.NoError(t, r.Err)
		}

		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, summary.Months)
		assert.Equal(t, []int{2013, 2014, 2015}, summary.Years)

		// Fixture month m of year 2013+k holds m+k crashes, plus one extra in June.
		for k, year := range summary.Years {
			for _, month := range summary.Months {
				want := month + k
				if month == 6 {
					want++
				}
				got, ok := summary.Count(month, year)
				assert.True(t, ok)
				assert.Equal(t, want, got, "month %d year %d", month, year)
			}
		}
		assert.Equal(t, 79, summary.Total(2013))
		assert.Equal(t, 103, summary.Total(2015))
	}
}
