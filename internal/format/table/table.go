package table

import (
	"strings"

	pretty "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each
// column, with two spaces between columns. Trailing whitespace is trimmed.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	w := pretty.NewWriter()
	w.SetStyle(bareStyle())
	w.SetColumnConfigs(columnConfigs(alignments))
	for _, row := range rows {
		w.AppendRow(toRow(row))
	}
	lines := strings.Split(w.Render(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.TrimRight(line, " "))
	}
	return out
}

// Panel renders a titled, bordered table. It is meant for full-width status
// panes rather than menu labels.
func Panel(title string, header []string, rows [][]string) string {
	w := pretty.NewWriter()
	w.SetStyle(pretty.StyleRounded)
	if title != "" {
		w.SetTitle(title)
	}
	if len(header) > 0 {
		w.AppendHeader(toRow(header))
	}
	for _, row := range rows {
		w.AppendRow(toRow(row))
	}
	return w.Render()
}

func bareStyle() pretty.Style {
	style := pretty.StyleDefault
	style.Options.DrawBorder = false
	style.Options.SeparateColumns = false
	style.Options.SeparateHeader = false
	style.Options.SeparateRows = false
	style.Box.PaddingLeft = ""
	style.Box.PaddingRight = "  "
	return style
}

func columnConfigs(alignments []Alignment) []pretty.ColumnConfig {
	configs := make([]pretty.ColumnConfig, 0, len(alignments))
	for i, alignment := range alignments {
		align := text.AlignLeft
		if alignment == AlignRight {
			align = text.AlignRight
		}
		configs = append(configs, pretty.ColumnConfig{Number: i + 1, Align: align})
	}
	return configs
}

func toRow(cells []string) pretty.Row {
	row := make(pretty.Row, len(cells))
	for i, cell := range cells {
		row[i] = cell
	}
	return row
}
