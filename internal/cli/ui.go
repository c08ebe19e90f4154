package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"value-exporter/exporter"
	"value-exporter/value"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLabel  = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	styleNumber = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
)

// renderStats writes the summary shown by export --stats.
func renderStats(w io.Writer, st exporter.Stats, size int, inferred []*value.Shape) {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Export summary"))
	b.WriteByte('\n')

	row := func(label string, n int) {
		fmt.Fprintf(&b, "  %s%s\n", styleLabel.Render(label), styleNumber.Render(fmt.Sprint(n)))
	}

	row("statements", st.Statements)
	row("bindings", st.Bindings)
	row("placeholders", st.Placeholders)
	row("records", st.Records)
	row("bytes", size)

	if len(inferred) > 0 {
		names := make([]string, len(inferred))
		for i, s := range inferred {
			names[i] = s.Name
		}

		fmt.Fprintf(&b, "  %s%s\n", styleLabel.Render("inferred"), styleDim.Render(strings.Join(names, ", ")))
	}

	fmt.Fprint(w, b.String())
}
