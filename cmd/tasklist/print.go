package main

import (
	"fmt"
	"time"

	"github.com/metalagman/tasklist/internal/render"
	"github.com/metalagman/tasklist/internal/task"
	"github.com/spf13/cobra"
)

func printCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the task table and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return withSession(cmd.Context(), cfg, func(store *task.Store, table *render.Table) error {
				if store.Len() == 0 {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), render.NoTasks)
					return err
				}
				return table.Render(cmd.OutOrStdout(), store.All(), time.Now())
			})
		},
	}
}
