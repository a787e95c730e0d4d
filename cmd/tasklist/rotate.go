package main

import (
	"github.com/metalagman/tasklist/internal/rotate"
	"github.com/spf13/cobra"
)

func rotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate",
		Short: "Rotate a list of integers to the right",
		Long:  "Read a count, that many integers and a shift from stdin, then print the list rotated right by the shift.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rotate.Run(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
