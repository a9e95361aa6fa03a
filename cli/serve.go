package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"notekeeper/config"
	"notekeeper/server"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		seed       bool
		backend    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the notes API server",
		Args:  cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// the server always logs requests
			log.SetOutput(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.SeedNotes = seed
			}
			if backend != "" {
				cfg.Store.Backend = backend
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	cmd.Flags().BoolVar(&seed, "seed", false, "Seed the memory store with sample notes")
	cmd.Flags().StringVar(&backend, "store", "", "Store backend (mongo, memory, sqlite, redis)")
	return cmd
}
