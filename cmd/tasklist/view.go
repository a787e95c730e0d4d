package main

import (
	"time"

	"github.com/metalagman/tasklist/internal/render"
	"github.com/metalagman/tasklist/internal/task"
	"github.com/metalagman/tasklist/internal/view"
	"github.com/spf13/cobra"
)

func viewCmd() *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse tasks in a full-screen viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return withSession(cmd.Context(), cfg, func(store *task.Store, _ *render.Table) error {
				return view.Run(store.All(), time.Now(), cfg.Due.Timezone, view.WithStyle(style))
			})
		},
	}
	cmd.Flags().StringVar(&style, "style", "auto", "markdown style for task details (auto|dark|light|notty)")
	return cmd
}
