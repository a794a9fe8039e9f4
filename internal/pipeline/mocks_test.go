package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/couchcryptid/fars-accidents/internal/domain"
)

// --- mocks ---

type mockLoader struct {
	mu     sync.Mutex
	tables map[string]domain.AccidentTable // keyed by base file name
	errs   map[string]error
	calls  []string
}

func (m *mockLoader) Load(path string) (domain.AccidentTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := filepath.Base(path)
	m.calls = append(m.calls, path)
	if err, ok := m.errs[name]; ok {
		return domain.AccidentTable{}, err
	}
	t, ok := m.tables[name]
	if !ok {
		return domain.AccidentTable{}, &domain.FileNotFoundError{Path: path}
	}
	return t, nil
}

type mockRenderer struct {
	bounds     []domain.Bounds
	points     [][]domain.Point
	flushes    int
	baseMapErr error
	flushErr   error
}

func (m *mockRenderer) DrawBaseMap(b domain.Bounds) error {
	m.bounds = append(m.bounds, b)
	return m.baseMapErr
}

func (m *mockRenderer) DrawPoints(p []domain.Point) error {
	m.points = append(m.points, p)
	return nil
}

func (m *mockRenderer) Flush() error {
	m.flushes++
	return m.flushErr
}

func (m *mockRenderer) called() bool {
	return len(m.bounds) > 0 || len(m.points) > 0 || m.flushes > 0
}

// captureHandler records log records for assertions.
type captureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *captureHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(_ string) slog.Handler      { return h }

func (h *captureHandler) messages(level slog.Level) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, r := range h.records {
		if r.Level == level {
			out = append(out, r.Message)
		}
	}
	return out
}

// attr returns the string value of key on the first record with msg.
func (h *captureHandler) attr(msg, key string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.records {
		if r.Message != msg {
			continue
		}
		var val string
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == key {
				val = a.Value.String()
				return false
			}
			return true
		})
		return val
	}
	return ""
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- fixtures ---

func f64(v float64) *float64 { return &v }

func record(state, month int, lon, lat float64) domain.AccidentRecord {
	return domain.AccidentRecord{State: state, Month: month, Longitude: f64(lon), Latitude: f64(lat)}
}

// monthTable builds a table with counts[m-1] accidents in month m.
func monthTable(counts ...int) domain.AccidentTable {
	var t domain.AccidentTable
	t.Columns = domain.RequiredColumns
	for i, n := range counts {
		for j := 0; j < n; j++ {
			t.Records = append(t.Records, record(1, i+1, -86.0, 32.0))
		}
	}
	return t
}

var errCorrupt = errors.New("bzip2 data invalid")
