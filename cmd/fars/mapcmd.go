package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/fars-accidents/internal/adapter/plotmap"
	"github.com/couchcryptid/fars-accidents/internal/pipeline"
)

func newMapCmd(a *app) *cobra.Command {
	var state, year, out string

	cmd := &cobra.Command{
		Use:     "map",
		Short:   "Plot one state's accident locations for a year",
		Example: "  fars map --state 1 --year 2013 --out alabama_2013.svg",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.finish(cmd, a.drawMap(cmd, state, year, out))
		},
	}
	cmd.Flags().StringVarP(&state, "state", "s", "", "FARS STATE code")
	cmd.Flags().StringVarP(&year, "year", "y", "", "accident year")
	cmd.Flags().StringVarP(&out, "out", "o", "", "image path, .png .svg .pdf or .jpg (default $FARS_MAP_OUTPUT)")
	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func (a *app) drawMap(cmd *cobra.Command, state, year, out string) error {
	if out == "" {
		out = a.cfg.MapOutput
	}

	renderer := plotmap.NewRenderer(plotmap.Options{
		Path:   out,
		Width:  vg.Length(a.cfg.MapWidth) * vg.Inch,
		Height: vg.Length(a.cfg.MapHeight) * vg.Inch,
		Title:  fmt.Sprintf("Fatal accidents, state %s, %s", state, year),
	}, a.logger)

	mapper := pipeline.NewStateMapper(a.loader, a.cfg.DataDir, renderer, a.logger, a.metrics)
	outcome, err := mapper.MapState(cmd.Context(), state, year)
	if err != nil {
		return err
	}

	if !outcome.Rendered {
		fmt.Fprintln(a.stdout, "no accidents to plot")
		return nil
	}
	fmt.Fprintf(a.stdout, "%s: %d accidents plotted, %d without coordinates\n", out, outcome.Points, outcome.Unknown)
	return nil
}
