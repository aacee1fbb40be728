package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/shelves/internal/shelf"
)

func newValidateCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate NAME...",
		Short: "Check whether names are acceptable shelf names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			color := colorEnabled(out)
			v := shelf.NewValidator(cc.settings.ToLimits())

			invalid := 0
			rows := make([][]string, 0, len(args))
			for _, name := range args {
				ok, msg := v.Validate(name)
				status := styled(successStyle, "ok", color)
				switch {
				case !ok:
					invalid++
					status = styled(errorStyle, "invalid", color)
				case msg != "":
					status = styled(warningStyle, "warning", color)
				}
				rows = append(rows, []string{name, status, orDash(msg)})
			}
			fmt.Fprintln(out, renderTable([]string{"Name", "Status", "Message"}, rows, nil))

			if invalid > 0 {
				return fmt.Errorf("%d of %d names are invalid", invalid, len(args))
			}
			return nil
		},
	}
}

func newClassifyCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "classify PATH...",
		Short: "Show which shelf the location of a file implies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			color := colorEnabled(out)
			v := shelf.NewValidator(cc.settings.ToLimits())
			known, _ := cc.settings.KnownShelves()
			root := cc.settings.Library.Root

			rows := make([][]string, 0, len(args))
			for _, path := range args {
				candidate, explicit := v.ClassifyPath(path, root, known)
				a := shelf.Assignment{Name: candidate, Kind: shelf.KindExplicit}
				reason := "-"
				if !explicit {
					reason = classifyReason(v, path, root, known)
				}
				rows = append(rows, []string{path, shelfLabel(a, color), yesNo(known.Contains(candidate)), reason})
			}
			fmt.Fprintln(out, renderTable([]string{"Path", "Shelf", "Known", "Reason"}, rows, nil))
			return nil
		},
	}
}

// classifyReason explains why path does not imply a shelf.
func classifyReason(v *shelf.Validator, path, root string, known shelf.Known) string {
	first, _, found := strings.Cut(relTo(root, path), "/")
	if !found || first == ".." || first == "." {
		return "not inside a shelf folder of " + root
	}
	if _, reason := v.IsLikelyShelfName(first, known); reason != "" {
		return reason
	}
	return "not a shelf name"
}
