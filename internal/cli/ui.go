package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/boxflow/pkg/document"
)

// stdout receives all status output. Tests replace it.
var stdout io.Writer = os.Stdout

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

// Exported styles are shared with the inspector.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim     = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue   = lipgloss.NewStyle().Foreground(colorText)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorOK)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)

	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
)

// statusKind selects the icon of a status line.
type statusKind int

const (
	statusOK statusKind = iota
	statusFail
	statusWarn
	statusInfo
)

var statusIcons = [...]struct {
	icon  string
	style lipgloss.Style
}{
	statusOK:   {"✓", lipgloss.NewStyle().Foreground(colorOK)},
	statusFail: {"✗", lipgloss.NewStyle().Foreground(colorFail)},
	statusWarn: {"!", lipgloss.NewStyle().Foreground(colorWarn)},
	statusInfo: {"›", lipgloss.NewStyle().Foreground(colorMuted)},
}

func printStatus(kind statusKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if kind == statusWarn {
		msg = StyleWarning.Render(msg)
	}
	ic := statusIcons[kind]
	fmt.Fprintln(stdout, ic.style.Render(ic.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { printStatus(statusOK, format, args...) }
func printError(format string, args ...any)   { printStatus(statusFail, format, args...) }
func printWarning(format string, args ...any) { printStatus(statusWarn, format, args...) }
func printInfo(format string, args ...any)    { printStatus(statusInfo, format, args...) }

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written artifact with its size.
func printFile(path string, size int) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path)+" "+StyleDim.Render(formatBytes(size)))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints the node count and whether the layout was cached, e.g.
// "12 nodes · cached".
func printStats(nodeCount int, cached bool) {
	origin := StyleDim.Render("fresh")
	if cached {
		origin = StyleSuccess.Render("cached")
	}
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf("%d nodes", nodeCount))+StyleDim.Render(" · ")+origin)
}

// printOverflow warns about scroll containers whose content does not fit.
func printOverflow(snap *document.Snapshot, input string) {
	var ids []string
	for _, g := range snap.Nodes {
		if g.Scrollbar != nil && g.Scrollbar.Overflowing() {
			ids = append(ids, g.ID)
		}
	}
	if len(ids) == 0 {
		return
	}
	printWarning("%d scroll container(s) overflow: %s", len(ids), strings.Join(ids, ", "))
	printNextStep("Scroll them", appName+" inspect "+input)
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
