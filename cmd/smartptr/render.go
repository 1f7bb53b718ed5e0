package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/ownership/demo"
	"github.com/wippyai/ownership/lifecycle"
)

type reportStyle struct {
	color  bool
	events bool
}

// useColor decides whether output written to w gets ANSI styling.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func renderReport(w io.Writer, format string, report *demo.Report, style reportStyle) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "", "text":
		_, err := io.WriteString(w, newPalette(w, style.color).report(report, style.events))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// palette holds the lipgloss styles for the text report.
type palette struct {
	title   lipgloss.Style
	heading lipgloss.Style
	note    lipgloss.Style
	failure lipgloss.Style
	dim     lipgloss.Style
	kinds   map[lifecycle.Kind]lipgloss.Style
}

func newPalette(w io.Writer, color bool) palette {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return palette{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")),
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#87CEEB")),
		note:    r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
		failure: r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("#666666")),
		kinds: map[lifecycle.Kind]lipgloss.Style{
			lifecycle.KindConstructed:   r.NewStyle().Foreground(lipgloss.Color("#98FB98")),
			lifecycle.KindCopied:        r.NewStyle().Foreground(lipgloss.Color("#FFD700")),
			lifecycle.KindMoved:         r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
			lifecycle.KindDestroyed:     r.NewStyle().Foreground(lipgloss.Color("#FFA07A")),
			lifecycle.KindVacated:       r.NewStyle().Foreground(lipgloss.Color("#666666")),
			lifecycle.KindDoubleRelease: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		},
	}
}

func (p palette) report(report *demo.Report, events bool) string {
	var b strings.Builder

	b.WriteString(p.title.Render(" smartptr "))
	b.WriteString(" ")
	b.WriteString(p.dim.Render("run " + report.RunID))
	b.WriteString("\n")

	for _, res := range report.Results {
		b.WriteString("\n")
		b.WriteString(p.result(res, events))
	}

	b.WriteString("\n")
	if report.ReleaseOrder >= 0 {
		fmt.Fprintf(&b, "shared release order: %d\n", report.ReleaseOrder)
	}
	s := report.Stats
	fmt.Fprintf(&b, "constructed %d, copied %d, moved %d, destroyed %d, vacated %d, double releases %d\n",
		s.Constructed, s.Copied, s.Moved, s.Destroyed, s.Vacated, s.DoubleReleases)
	if len(report.Leaked) == 0 {
		b.WriteString("no leaks\n")
	} else {
		b.WriteString(p.failure.Render(fmt.Sprintf("leaked %d: %v", len(report.Leaked), report.Leaked)))
		b.WriteString("\n")
	}
	if len(report.Overreleased) > 0 {
		b.WriteString(p.failure.Render(fmt.Sprintf("destroyed more than constructed: %v", report.Overreleased)))
		b.WriteString("\n")
	}
	return b.String()
}

func (p palette) result(res demo.Result, events bool) string {
	var b strings.Builder

	b.WriteString(p.heading.Render("== " + res.Name + " =="))
	b.WriteString("\n")
	for _, note := range res.Notes {
		b.WriteString("  ")
		b.WriteString(p.note.Render(note))
		b.WriteString("\n")
	}
	if events {
		for _, e := range res.Events {
			b.WriteString("  ")
			b.WriteString(p.event(e))
			b.WriteString("\n")
		}
	}
	if res.Error != "" {
		b.WriteString("  ")
		b.WriteString(p.failure.Render("error: " + res.Error))
		b.WriteString("\n")
	}
	return b.String()
}

func (p palette) event(e lifecycle.Event) string {
	seq := p.dim.Render(fmt.Sprintf("#%-4d", e.Seq))
	kind := e.Kind.String()
	if st, ok := p.kinds[e.Kind]; ok {
		kind = st.Render(kind)
	}
	return fmt.Sprintf("%s %s(%d)", seq, kind, e.ID)
}
