package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	ioutils "github.com/handiism/shelves/internal/io"
	"github.com/handiism/shelves/internal/journal"
)

func newHistoryCommand(cc *commandContext) *cobra.Command {
	var (
		limit int
		runID string
		prune time.Duration
	)

	cmd := &cobra.Command{
		Use:   "history [ALBUM]",
		Short: "Show recorded shelf decisions",
		Long: "Show recorded shelf decisions, newest first. ALBUM is a MusicBrainz album id\n" +
			"or an album folder.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cc.openJournal()
			if err != nil {
				return err
			}
			if store == nil {
				return errors.New("the journal is disabled (journal.enabled = false)")
			}
			out := cmd.OutOrStdout()

			if prune > 0 {
				n, err := store.Prune(cmd.Context(), time.Now().Add(-prune))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %d entries older than %s\n", n, prune)
				return nil
			}

			filter := journal.Filter{RunID: runID, Limit: limit}
			if len(args) == 1 {
				filter.AlbumID = args[0]
				if ioutils.DirExists(args[0]) {
					if abs, err := filepath.Abs(args[0]); err == nil {
						filter.AlbumID = abs
					}
				}
			}

			entries, err := store.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No decisions recorded")
				return nil
			}

			root := cc.settings.Library.Root
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.CreatedAt.Local().Format(time.DateTime),
					shortID(e.RunID),
					string(e.Action),
					orDash(e.Shelf),
					orDash(e.Kind),
					orDash(e.Step),
					relTo(root, e.Path),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Time", "Run", "Action", "Shelf", "Kind", "Step", "Path"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of entries (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Only show entries of this run id")
	cmd.Flags().DurationVar(&prune, "prune", 0, "Delete entries older than this age instead of listing")
	return cmd
}
