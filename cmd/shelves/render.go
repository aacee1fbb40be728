package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/taigrr/colorhash"

	"github.com/handiism/shelves/internal/library"
	"github.com/handiism/shelves/internal/shelf"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// shelfPalette holds the ANSI colours shelves are drawn in.
var shelfPalette = []lipgloss.Color{"2", "3", "4", "5", "6", "10", "11", "12", "13", "14"}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// shelfColor picks a stable colour for name, so a shelf looks the same in
// every listing.
func shelfColor(name string) lipgloss.Color {
	h := uint(colorhash.HashString(name))
	return shelfPalette[h%uint(len(shelfPalette))]
}

// shelfLabel renders an assignment as "Name" or "Name (manual)".
func shelfLabel(a shelf.Assignment, color bool) string {
	if a.IsZero() {
		return "-"
	}
	label := a.Name
	if color {
		label = lipgloss.NewStyle().Foreground(shelfColor(a.Name)).Bold(a.Explicit()).Render(label)
	}
	if a.Explicit() {
		label += " (manual)"
	}
	return label
}

func styled(style lipgloss.Style, s string, color bool) string {
	if !color {
		return s
	}
	return style.Render(s)
}

// progressPrinter prints library progress events to w. Verbose events are
// dropped unless verbose is set.
func progressPrinter(w io.Writer, verbose bool) func(library.ProgressEvent) {
	color := colorEnabled(w)
	return func(event library.ProgressEvent) {
		var prefix string
		switch event.Level {
		case library.LevelVerbose:
			if !verbose {
				return
			}
			prefix = styled(mutedStyle, "  ", color)
		case library.LevelError:
			prefix = styled(errorStyle, "error: ", color)
		case library.LevelWarning:
			prefix = styled(warningStyle, "warning: ", color)
		case library.LevelSuccess:
			prefix = styled(successStyle, "done: ", color)
		default:
			prefix = ""
		}
		fmt.Fprintln(w, prefix+event.Message)
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// shortID trims a run id for table output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
