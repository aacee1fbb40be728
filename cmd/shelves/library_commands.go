package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/handiism/shelves/internal/model"
)

func newScanCommand(cc *commandContext) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Resolve the shelf of every album in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			m, err := cc.newManager(out)
			if err != nil {
				return err
			}

			report, err := m.Scan(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, albumTable(report.Albums, cc.settings.Library.Root, colorEnabled(out)))
			fmt.Fprintf(out, "%d albums, %d files, %d unresolved, %d with conflicting votes\n",
				len(report.Albums), report.Files, len(report.Unresolved()), report.Conflicts)

			if !apply {
				return nil
			}
			changed, err := m.Apply(cmd.Context(), report.Albums)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Updated shelf tags of %d files\n", changed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Write resolved shelves to the file tags")
	return cmd
}

func newSetCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set ALBUM_DIR SHELF",
		Short: "Assign a shelf to an album manually",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			m, err := cc.newManager(out)
			if err != nil {
				return err
			}

			album, err := m.SetShelf(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s is now on %s\n", album.Path, shelfLabel(album.Shelf, colorEnabled(out)))

			added, warning, err := cc.settings.AddKnownShelf(album.Shelf.Name)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintf(out, "Note: %s\n", warning)
			}
			if added {
				if err := cc.saveSettings(); err != nil {
					return err
				}
				fmt.Fprintf(out, "Added %s to the known shelves\n", album.Shelf.Name)
			}
			return nil
		},
	}
}

func newDetermineCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "determine ALBUM_DIR",
		Short: "Derive an album's shelf from the folder it lives in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			m, err := cc.newManager(out)
			if err != nil {
				return err
			}
			album, err := m.DetermineShelf(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s is now on %s\n", album.Path, shelfLabel(album.Shelf, colorEnabled(out)))
			return nil
		},
	}
}

func newResetCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset ALBUM_DIR",
		Short: "Drop a manual shelf and return to automatic resolution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			m, err := cc.newManager(out)
			if err != nil {
				return err
			}
			album, err := m.ResetShelf(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s is now on %s\n", album.Path, shelfLabel(album.Shelf, colorEnabled(out)))
			return nil
		},
	}
}

func newOrganizeCommand(cc *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Move albums into the folder of their shelf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			m, err := cc.newManager(out)
			if err != nil {
				return err
			}
			report, err := m.Scan(cmd.Context())
			if err != nil {
				return err
			}

			moves, moveErr := m.Organize(cmd.Context(), report.Albums, dryRun)
			if len(moves) == 0 {
				fmt.Fprintln(out, "Every album is already in place")
				return moveErr
			}

			root := cc.settings.Library.Root
			rows := make([][]string, 0, len(moves))
			for _, mv := range moves {
				status := "moved"
				switch {
				case dryRun:
					status = "planned"
				case mv.Err != nil:
					status = "failed"
				}
				rows = append(rows, []string{relTo(root, mv.From), relTo(root, mv.To), status})
			}
			fmt.Fprintln(out, renderTable([]string{"From", "To", "Status"}, rows, nil))
			return moveErr
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show the moves without touching any file")
	return cmd
}

func newExportCommand(cc *commandContext) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export SHELF",
		Short: "Write a playlist of every album on a shelf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			m, err := cc.newManager(out)
			if err != nil {
				return err
			}
			report, err := m.Scan(cmd.Context())
			if err != nil {
				return err
			}
			path, n, err := m.ExportPlaylist(cmd.Context(), report.Albums, args[0], dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %d tracks to %s\n", n, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory for the playlist (default: library root)")
	return cmd
}

func albumTable(albums []*model.Album, root string, color bool) string {
	rows := make([][]string, 0, len(albums))
	for _, a := range albums {
		rows = append(rows, []string{
			relTo(root, a.Path),
			orDash(a.Artist),
			orDash(a.Title),
			shelfLabel(a.Shelf, color),
			strconv.Itoa(len(a.Tracks)),
		})
	}
	return renderTable(
		[]string{"Folder", "Artist", "Album", "Shelf", "Files"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	)
}

func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
