// Package cli implements terminal printing of Hex positions and of their virtual connections.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	. "github.com/janpfeifer/hexGo/internal/state"
	"github.com/janpfeifer/hexGo/internal/vc"
)

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len([]rune(ansiFilter.ReplaceAllString(s, "")))
}

// terminalWidth returns the width of the terminal of w, or 0 if w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// UI prints to a writer, optionally with colors.
type UI struct {
	out   io.Writer
	color bool

	blackStyle, whiteStyle, highlightStyle, titleStyle, boxStyle lipgloss.Style
}

// New creates a UI printing to os.Stdout.
func New(color bool) *UI {
	return NewWithWriter(os.Stdout, color)
}

// NewWithWriter creates a UI printing to out.
func NewWithWriter(out io.Writer, color bool) *UI {
	ui := &UI{out: out, color: color}
	if color {
		ui.blackStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("9"))
		ui.whiteStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("15"))
		ui.highlightStyle = lipgloss.NewStyle().Background(lipgloss.Color("13"))
		ui.titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
		ui.boxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	}
	return ui
}

// printCentered prints each line of block centered on the terminal, if it is one.
func (ui *UI) printCentered(block string) {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((terminalWidth(ui.out)-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(ui.out)
			continue
		}
		_, _ = fmt.Fprintf(ui.out, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

// cell returns the 1 character representation of point p.
func (ui *UI) cell(sb *StoneBoard, p HexPoint, highlight Bitset) string {
	var s string
	switch sb.ColorOf(p) {
	case Black:
		s = ui.blackStyle.Render("B")
	case White:
		s = ui.whiteStyle.Render("W")
	default:
		s = "."
		if highlight.Has(p) {
			s = "*"
		}
	}
	if highlight.Has(p) {
		s = ui.highlightStyle.Render(s)
	}
	return s
}

// PrintBoard prints the position as a rhombus, with the points in highlight marked (e.g. the
// carrier of a connection).
func (ui *UI) PrintBoard(sb *StoneBoard, highlight Bitset) {
	board := sb.Board()
	var buf bytes.Buffer
	header := make([]string, board.Width())
	for col := range board.Width() {
		header[col] = string(rune('a' + col))
	}
	_, _ = fmt.Fprintf(&buf, "    %s\n", strings.Join(header, " "))
	for row := range board.Height() {
		cells := make([]string, board.Width())
		for col := range board.Width() {
			cells[col] = ui.cell(sb, board.PointAt(row, col), highlight)
		}
		_, _ = fmt.Fprintf(&buf, "%s%2d\\%s\\%d\n", strings.Repeat(" ", row), row+1, strings.Join(cells, " "), row+1)
	}
	_, _ = fmt.Fprintf(&buf, "%s    %s\n", strings.Repeat(" ", board.Height()+1), strings.Join(header, " "))
	ui.printCentered(buf.String())
}

// PrintList prints the connections of a list, best first, at most maxVCs of them (all if <= 0).
func (ui *UI) PrintList(board *Board, list *vc.List, maxVCs int) {
	title := fmt.Sprintf("%s connections %s-%s: %d (limit %d)", list.Kind(),
		board.PointName(list.X()), board.PointName(list.Y()), list.Len(), list.SoftLimit())
	_, _ = fmt.Fprintln(ui.out, ui.titleStyle.Render(title))
	count := 0
	for v := range list.All() {
		if maxVCs > 0 && count == maxVCs {
			_, _ = fmt.Fprintf(ui.out, "  ... %d more\n", list.Len()-count)
			break
		}
		_, _ = fmt.Fprintf(ui.out, "  #%-3d %s\n", count, v.Format(board))
		count++
	}
}

// PrintSummary prints a framed block with a title and one line per key/value pair.
func (ui *UI) PrintSummary(title string, keys []string, values []string) {
	width := 0
	for _, key := range keys {
		width = max(width, len(key))
	}
	lines := []string{ui.titleStyle.Render(title)}
	for ii, key := range keys {
		lines = append(lines, fmt.Sprintf("%-*s  %s", width, key, values[ii]))
	}
	ui.printCentered(ui.boxStyle.Render(strings.Join(lines, "\n")))
}
