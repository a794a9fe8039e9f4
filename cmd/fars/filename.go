package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/fars-accidents/internal/domain"
)

func newFilenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "filename YEAR",
		Short: "Print the archive name expected for a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := domain.MakeFilename(args[0])
			if err == nil {
				fmt.Fprintln(a.stdout, name)
			}
			return a.finish(cmd, err)
		},
	}
}
