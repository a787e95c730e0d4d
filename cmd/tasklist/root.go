package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/metalagman/tasklist/internal/config"
	"github.com/metalagman/tasklist/internal/logging"
	"github.com/metalagman/tasklist/internal/render"
	"github.com/metalagman/tasklist/internal/shell"
	"github.com/metalagman/tasklist/internal/task"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	debug   bool
	rootCmd = &cobra.Command{
		Use:          "tasklist",
		Short:        "tasklist is a console task list manager",
		Long:         "Start an interactive session: add, print, edit and delete tasks, then end to save.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return withSession(ctx, cfg, func(store *task.Store, table *render.Table) error {
				return shell.New(store, table, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
			})
		},
	}
)

// Execute runs the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		return fmt.Errorf("bind config flag: %w", err)
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logging.Init(debug)
		return loadDotEnv()
	}
	rootCmd.AddCommand(printCmd())
	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(rotateCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
