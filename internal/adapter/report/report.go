// Package report renders monthly summaries as text, CSV or XLSX.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/fars-accidents/internal/domain"
)

// SheetName is the worksheet that WriteXLSX fills.
const SheetName = "Summary"

// Missing is printed for (month, year) cells with no accidents.
const Missing = "NA"

// header returns the column titles: MONTH followed by each year.
func header(s domain.MonthlySummary) []string {
	row := make([]string, 0, len(s.Years)+1)
	row = append(row, domain.ColMonth)
	for _, y := range s.Years {
		row = append(row, strconv.Itoa(y))
	}
	return row
}

// rows returns one text row per month, absent cells as Missing.
func rows(s domain.MonthlySummary) [][]string {
	out := make([][]string, 0, len(s.Months))
	for _, m := range s.Months {
		row := make([]string, 0, len(s.Years)+1)
		row = append(row, strconv.Itoa(m))
		for _, y := range s.Years {
			if n, ok := s.Count(m, y); ok {
				row = append(row, strconv.Itoa(n))
			} else {
				row = append(row, Missing)
			}
		}
		out = append(out, row)
	}
	return out
}

// WriteText writes s as a right-aligned table.
func WriteText(w io.Writer, s domain.MonthlySummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, row := range append([][]string{header(s)}, rows(s)...) {
		for _, cell := range row {
			if _, err := fmt.Fprintf(tw, "%s\t", cell); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
		}
		if _, err := fmt.Fprintln(tw); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// WriteCSV writes s as comma-separated values with a header row.
func WriteCSV(w io.Writer, s domain.MonthlySummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header(s)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(rows(s)); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

// WriteXLSX saves s to a workbook at path. Counts are numeric cells; absent
// cells stay blank.
func WriteXLSX(path string, s domain.MonthlySummary) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for col, title := range header(s) {
		if err := setCell(f, col+1, 1, title); err != nil {
			return err
		}
	}
	for r, m := range s.Months {
		row := r + 2
		if err := setCell(f, 1, row, m); err != nil {
			return err
		}
		for c, y := range s.Years {
			n, ok := s.Count(m, y)
			if !ok {
				continue
			}
			if err := setCell(f, c+2, row, n); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(SheetName, cell, v); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	return nil
}
