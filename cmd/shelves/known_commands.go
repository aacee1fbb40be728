package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	ioutils "github.com/handiism/shelves/internal/io"
	"github.com/handiism/shelves/internal/shelf"
)

func newKnownCommand(cc *commandContext) *cobra.Command {
	knownCmd := &cobra.Command{
		Use:   "known",
		Short: "Manage the known shelves",
	}

	knownCmd.AddCommand(newKnownListCommand(cc))
	knownCmd.AddCommand(newKnownAddCommand(cc))
	knownCmd.AddCommand(newKnownRemoveCommand(cc))
	knownCmd.AddCommand(newKnownScanCommand(cc))
	knownCmd.AddCommand(newKnownPruneCommand(cc))
	return knownCmd
}

func newKnownListCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the known shelves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			color := colorEnabled(out)
			known, rejected := cc.settings.KnownShelves()
			rule := cc.settings.ToRule()
			root := cc.settings.Library.Root

			rows := make([][]string, 0, len(known))
			for _, name := range known.Names() {
				rows = append(rows, []string{
					shelfLabel(shelf.Assignment{Name: name}, color),
					yesNo(rule.Mentions(name)),
					yesNo(ioutils.DirExists(filepath.Join(root, name))),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Shelf", "Workflow", "Folder"}, rows, nil))

			for _, r := range rejected {
				fmt.Fprintf(out, "%s %q ignored: %s\n", styled(warningStyle, "warning:", color), r.Name, r.Reason)
			}
			return nil
		},
	}
}

func newKnownAddCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a known shelf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			name := strings.TrimSpace(args[0])
			added, warning, err := cc.settings.AddKnownShelf(name)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintf(out, "Note: %s\n", warning)
			}
			if !added {
				fmt.Fprintf(out, "%s is already a known shelf\n", name)
				return nil
			}
			if err := cc.saveSettings(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Added %s\n", name)
			return nil
		},
	}
}

func newKnownRemoveCommand(cc *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a known shelf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if err := cc.settings.RemoveKnownShelf(name, force); err != nil {
				return err
			}
			if err := cc.saveSettings(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove even if the workflow uses the shelf")
	return cmd
}

func newKnownScanCommand(cc *commandContext) *cobra.Command {
	var fromTags bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Add shelf folders found in the library root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			names, err := ioutils.ListDirs(cc.settings.Library.Root)
			if err != nil {
				return fmt.Errorf("list library root: %w", err)
			}

			if fromTags {
				m, err := cc.newManager(out)
				if err != nil {
					return err
				}
				if _, err := m.Scan(cmd.Context()); err != nil {
					return err
				}
				names = append(names, m.DiscoveredShelves()...)
			}

			added := cc.settings.MergeKnownShelves(names)
			if len(added) == 0 {
				fmt.Fprintln(out, "No new shelves found")
				return nil
			}
			if err := cc.saveSettings(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Added %s\n", strings.Join(added, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromTags, "tags", false, "Also add shelves found in file tags")
	return cmd
}

func newKnownPruneCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove known shelves whose folder no longer exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cc.settings.Library.Root
			removed := cc.settings.PruneKnownShelves(func(name string) bool {
				return ioutils.DirExists(filepath.Join(root, name))
			})
			if len(removed) == 0 {
				fmt.Fprintln(out, "Nothing to prune")
				return nil
			}
			if err := cc.saveSettings(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed %s\n", strings.Join(removed, ", "))
			return nil
		},
	}
}
