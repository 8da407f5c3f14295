package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconArrow  = "→"
	iconCached = "cached"
	iconFresh  = "fresh"
)

// statusMark is the leading glyph of a one-line status message.
type statusMark struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = statusMark{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	markError   = statusMark{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	markWarning = statusMark{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	markInfo    = statusMark{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

// stdout receives all user-facing CLI output except the spinner.
var stdout io.Writer = os.Stdout

func (m statusMark) print(msg string) {
	fmt.Fprintln(stdout, m.style.Render(m.glyph)+" "+msg)
}

func printSuccess(format string, args ...any) { markSuccess.print(fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { markError.print(fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { markInfo.print(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	markWarning.print(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line below a status message.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile announces a written output file.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// statsLine summarises a rendered panel, e.g. "2 clusters · 3 nodes · fresh".
// Zero counts are left out.
func statsLine(clusterCount, nodeCount, edgeCount int, cached bool) string {
	var b strings.Builder
	b.WriteString("  ")
	for _, c := range []struct {
		n    int
		noun string
	}{{clusterCount, "cluster"}, {nodeCount, "node"}, {edgeCount, "edge"}} {
		if c.n > 0 {
			b.WriteString(StyleDim.Render(plural(c.n, c.noun) + " · "))
		}
	}
	if cached {
		b.WriteString(lipgloss.NewStyle().Foreground(colorGreen).Render(iconCached))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(colorGray).Render(iconFresh))
	}
	return b.String()
}

func printStats(clusterCount, nodeCount, edgeCount int, cached bool) {
	fmt.Fprintln(stdout, statsLine(clusterCount, nodeCount, edgeCount, cached))
}

// plural leaves nouns already ending in "s" ("series") unchanged.
func plural(n int, noun string) string {
	if n != 1 && !strings.HasSuffix(noun, "s") {
		noun += "s"
	}
	return fmt.Sprintf("%d %s", n, noun)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}
