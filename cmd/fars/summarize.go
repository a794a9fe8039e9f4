package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/fars-accidents/internal/adapter/report"
	"github.com/couchcryptid/fars-accidents/internal/domain"
	"github.com/couchcryptid/fars-accidents/internal/pipeline"
)

const defaultXLSX = "fars_summary.xlsx"

func newSummarizeCmd(a *app) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "summarize YEAR [YEAR...]",
		Short: "Count accidents per month for each year",
		Long: "Count accidents per month for each year. Years may be listed or given as\n" +
			"an inclusive range such as 2013:2015. Years whose archive is missing or\n" +
			"unreadable are skipped with a warning.",
		Example: "  fars summarize 2013 2014 2015\n  fars summarize 2013:2015 --format xlsx --out summary.xlsx",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.finish(cmd, a.summarize(cmd, args, format, out))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout; "+defaultXLSX+" for xlsx)")
	return cmd
}

func (a *app) summarize(cmd *cobra.Command, args []string, format, out string) error {
	format = strings.ToLower(format)
	switch format {
	case "text", "csv", "xlsx":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	agg := pipeline.NewAggregator(a.loader, a.cfg.DataDir, a.cfg.Workers, a.logger, a.metrics)
	summary, _ := pipeline.NewSummarizer(agg, a.logger).Summarize(cmd.Context(), domain.ExpandYears(args))

	if format == "xlsx" {
		if out == "" {
			out = defaultXLSX
		}
		if err := report.WriteXLSX(out, summary); err != nil {
			return err
		}
		a.logger.Info("summary written", "path", out)
		return nil
	}

	write := report.WriteText
	if format == "csv" {
		write = report.WriteCSV
	}
	if out == "" {
		return write(a.stdout, summary)
	}
	return writeFile(out, func(w io.Writer) error { return write(w, summary) })
}

// createFile opens report files; tests swap it to observe Close failures.
var createFile = func(path string) (io.WriteCloser, error) { return os.Create(path) }

// writeFile runs write against a new file at path. A failed Close is
// reported like a failed write, since buffered data may not have landed.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return write(f)
}
