// Command genfixture writes small, deterministic FARS-shaped accident files
// used as test fixtures. Compress the output with bzip2 to get the
// accident_<year>.csv.bz2 archives the loader expects.
//
// Usage:
//
//	go run ./cmd/genfixture -out internal/adapter/farscsv/testdata -from 2013 -to 2015
//	bzip2 -f internal/adapter/farscsv/testdata/accident_*.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/couchcryptid/fars-accidents/internal/domain"
)

var header = []string{"STATE", "ST_CASE", "MONTH", "DAY", "YEAR", "LATITUDE", "LONGITUD", "FATALS"}

// Sentinels written for unknown coordinates.
const (
	unknownLat = 99.9999
	unknownLon = 999.9999
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output directory")
	from := flag.Int("from", 2013, "first year")
	to := flag.Int("to", 2015, "last year")
	flag.Parse()

	if *out == "" || *to < *from {
		flag.Usage()
		return fmt.Errorf("missing -out or empty year range")
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return err
	}

	for year := *from; year <= *to; year++ {
		rows := yearRows(year, year-*from)
		name := strings.TrimSuffix(domain.Filename(year), ".bz2")
		path := filepath.Join(*out, name)
		if err := writeCSV(path, rows); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.Printf("%d: %d records -> %s", year, len(rows), path)
	}
	return nil
}

// yearRows builds one year. Month m holds m+offset crashes alternating
// between Alabama (1) and California (6); every fifth Alabama crash has
// unknown coordinates. June also holds one Delaware (10) crash with no
// usable location.
func yearRows(year, offset int) [][]string {
	var rows [][]string
	cases := map[int]int{}
	add := func(state, month, day int, lat, lon float64, fatals int) {
		cases[state]++
		rows = append(rows, []string{
			strconv.Itoa(state),
			strconv.Itoa(state*10000 + cases[state]),
			strconv.Itoa(month),
			strconv.Itoa(day),
			strconv.Itoa(year),
			fmt.Sprintf("%.4f", lat),
			fmt.Sprintf("%.4f", lon),
			strconv.Itoa(fatals),
		})
	}

	for m := 1; m <= 12; m++ {
		for j := 0; j < m+offset; j++ {
			state, lat, lon := 1, 30.5, -88.0
			if j%2 == 1 {
				state, lat, lon = 6, 34.0, -118.0
			}
			lat += 0.1*float64(j) + 0.01*float64(m)
			lon += 0.1*float64(j) + 0.01*float64(m)
			if state == 1 && j%5 == 4 {
				lat, lon = unknownLat, unknownLon
			}
			add(state, m, j%28+1, lat, lon, 1+j%3)
		}
		if m == 6 {
			add(10, m, 15, unknownLat, unknownLon, 1)
		}
	}
	return rows
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Sync()
}
