// Package farscsv reads yearly FARS accident archives from disk.
package farscsv

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/fars-accidents/internal/domain"
	"github.com/couchcryptid/fars-accidents/internal/observability"
)

// bzip2Magic prefixes every bzip2 stream ("BZh" + block size digit).
var bzip2Magic = []byte("BZh")

// Failure reasons used as metric labels.
const (
	reasonNotFound = "not_found"
	reasonParse    = "parse"
	reasonSchema   = "schema"
)

// Reader loads accident tables. It implements pipeline.Loader.
type Reader struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewReader creates a Reader.
func NewReader(logger *slog.Logger, metrics *observability.Metrics) *Reader {
	return &Reader{logger: logger, metrics: metrics}
}

// Load reads one yearly archive. A missing path yields a
// *domain.FileNotFoundError. bzip2 input is detected by its magic bytes, so
// plain CSV files load too.
func (r *Reader) Load(path string) (domain.AccidentTable, error) {
	start := clock.Now()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.metrics.LoadFailures.WithLabelValues(reasonNotFound).Inc()
			return domain.AccidentTable{}, &domain.FileNotFoundError{Path: path}
		}
		r.metrics.LoadFailures.WithLabelValues(reasonParse).Inc()
		return domain.AccidentTable{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	table, reason, err := read(f)
	if err != nil {
		r.metrics.LoadFailures.WithLabelValues(reason).Inc()
		return domain.AccidentTable{}, fmt.Errorf("read %s: %w", path, err)
	}

	elapsed := clock.Since(start)
	r.metrics.FilesLoaded.Inc()
	r.metrics.RecordsLoaded.Add(float64(table.Len()))
	r.metrics.LoadDuration.Observe(elapsed.Seconds())
	r.logger.Debug("accident file loaded",
		"path", path,
		"records", table.Len(),
		"columns", len(table.Columns),
		"duration", elapsed,
	)
	return table, nil
}

// read decompresses and parses src. The returned reason labels the failure.
func read(src io.Reader) (domain.AccidentTable, string, error) {
	in, err := decompress(src)
	if err != nil {
		return domain.AccidentTable{}, reasonParse, err
	}

	// Raw rows are captured before gota sees them: its loader rewrites NA
	// cells, and Fields must keep the file's text.
	rows, err := csv.NewReader(in).ReadAll()
	if err != nil {
		return domain.AccidentTable{}, reasonParse, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return domain.AccidentTable{}, reasonParse, errors.New("parse csv: no header row")
	}

	// Every column loads as text; typed views of the interpreted columns
	// are built separately in toTable.
	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return domain.AccidentTable{}, reasonParse, fmt.Errorf("parse csv: %w", df.Err)
	}

	table, err := toTable(df, rows[1:])
	if err != nil {
		return domain.AccidentTable{}, reasonSchema, err
	}
	return table, "", nil
}

// decompress wraps src in a bzip2 reader when the stream starts with the
// bzip2 magic.
func decompress(src io.Reader) (io.Reader, error) {
	br := bufio.NewReader(src)
	head, err := br.Peek(len(bzip2Magic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("peek header: %w", err)
	}
	if bytes.Equal(head, bzip2Magic) {
		// bzip2 errors surface lazily while the CSV is read; buffer the
		// stream so they are reported as such rather than as CSV errors.
		data, err := io.ReadAll(bzip2.NewReader(br))
		if err != nil {
			return nil, fmt.Errorf("decompress bzip2: %w", err)
		}
		return bytes.NewReader(data), nil
	}
	return br, nil
}

// toTable converts the dataframe to typed records, checking the required
// columns and the MONTH range. raw holds the data rows as read.
func toTable(df dataframe.DataFrame, raw [][]string) (domain.AccidentTable, error) {
	names := df.Names()
	if err := requireColumns(names); err != nil {
		return domain.AccidentTable{}, err
	}

	months, err := typed(df, domain.ColMonth, series.Int).Int()
	if err != nil {
		return domain.AccidentTable{}, fmt.Errorf("column %s: %w", domain.ColMonth, err)
	}
	states, err := typed(df, domain.ColState, series.Int).Int()
	if err != nil {
		return domain.AccidentTable{}, fmt.Errorf("column %s: %w", domain.ColState, err)
	}
	lons := typed(df, domain.ColLongitude, series.Float).Float()
	lats := typed(df, domain.ColLatitude, series.Float).Float()

	records := make([]domain.AccidentRecord, df.Nrow())
	for i := range records {
		if months[i] < 1 || months[i] > 12 {
			return domain.AccidentTable{}, fmt.Errorf("row %d: %s %d out of range 1-12", i+1, domain.ColMonth, months[i])
		}
		records[i] = domain.AccidentRecord{
			Month:     months[i],
			State:     states[i],
			Longitude: optional(lons[i]),
			Latitude:  optional(lats[i]),
			Fields:    raw[i],
		}
	}

	return domain.AccidentTable{Columns: names, Records: records}, nil
}

// typed re-reads a text column as t. Cells that do not parse become NaN.
func typed(df dataframe.DataFrame, name string, t series.Type) series.Series {
	return series.New(df.Col(name).Records(), t, name)
}

func requireColumns(names []string) error {
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	var missing []string
	for _, c := range domain.RequiredColumns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns %v", missing)
	}
	return nil
}

// optional maps NaN (empty or unparseable cells) to nil.
func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
