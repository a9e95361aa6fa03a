package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the notekeeper command tree
func NewRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "notekeeper",
		Short: "A minimal note-taking service and its client",
		Long: `notekeeper serves a JSON API for notes backed by MongoDB, SQLite, Redis or memory,
and ships a client that keeps a local list of notes in sync with it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !verbose {
				log.SetOutput(io.Discard)
				return
			}
			log.SetOutput(cmd.ErrOrStderr())
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newNotesCmd())
	return rootCmd
}

// Execute runs the root command; called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
