package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"notekeeper/client"
	"notekeeper/model"
	"notekeeper/utils"

	"github.com/spf13/cobra"
)

const defaultServerURL = "http://localhost:3001"

func newNotesCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Work with the notes on a running server",
	}
	cmd.PersistentFlags().StringVar(&serverURL, "server",
		utils.GetEnvAsString("NOTES_SERVER_URL", defaultServerURL), "Base URL of the notes server")

	newAPI := func() *client.Client {
		return client.NewClient(serverURL)
	}
	// each invocation starts from a freshly loaded store
	openStore := func(cmd *cobra.Command) *client.Store {
		store := client.NewStore(newAPI())
		store.Load(cmd.Context())
		return store
	}

	cmd.AddCommand(newListCmd(openStore))
	cmd.AddCommand(newAddCmd(openStore))
	cmd.AddCommand(newToggleCmd(openStore))
	cmd.AddCommand(newDeleteCmd(newAPI))
	return cmd
}

type storeOpener func(cmd *cobra.Command) *client.Store

func newListCmd(open storeOpener) *cobra.Command {
	var importantOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := open(cmd)
			defer store.Close()
			if importantOnly {
				store.SetFilter(client.FilterImportant)
			}
			return printNotes(cmd.OutOrStdout(), store.Visible())
		},
	}
	cmd.Flags().BoolVar(&importantOnly, "important", false, "Show only important notes")
	return cmd
}

func newAddCmd(open storeOpener) *cobra.Command {
	var important bool

	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Create a note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := open(cmd)
			defer store.Close()

			store.SetInput(strings.Join(args, " "))
			note, err := store.SubmitDraft(cmd.Context(), important)
			if err != nil {
				return fmt.Errorf("could not save note: %w", err)
			}
			return printNotes(cmd.OutOrStdout(), []model.Note{note})
		},
	}
	cmd.Flags().BoolVar(&important, "important", false, "Mark the note as important")
	return cmd
}

func newToggleCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a note's importance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := open(cmd)
			defer store.Close()

			op, err := store.ToggleImportance(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			switch op.State {
			case client.ToggleConfirmed:
				return printNotes(cmd.OutOrStdout(), []model.Note{*op.Result})
			case client.ToggleRolledBack:
				return errors.New(store.ErrorMessage())
			default:
				return fmt.Errorf("toggle not applied: %w", op.Err)
			}
		},
	}
}

func newDeleteCmd(newAPI func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAPI().Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("could not delete note: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func printNotes(out io.Writer, notes []model.Note) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tIMPORTANT\tDATE\tCONTENT")
	for _, n := range notes {
		mark := ""
		if n.Important {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n.ID, mark, n.Date.Local().Format(time.DateTime), n.Content)
	}
	return w.Flush()
}
