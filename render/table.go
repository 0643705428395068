package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/width"

	"github.com/shibukawa/gridsheet/formula"
	"github.com/shibukawa/gridsheet/sheet"
)

var (
	headerFmt = color.New(color.FgBlue, color.Bold).SprintFunc()
	errorFmt  = color.New(color.FgRed).SprintFunc()
)

// renderTable writes an aligned text table with column letters and row numbers
func (r *Renderer) renderTable(s *sheet.Sheet, output io.Writer) error {
	rows, err := grid(s)
	if err != nil {
		return err
	}

	header := make([]string, s.Width()+1)
	for i := range s.Width() {
		header[i+1] = formula.ColumnLabel(i)
	}

	labels := make([][]string, len(rows))
	for i, row := range rows {
		labels[i] = append([]string{strconv.Itoa(i + 1)}, row...)
	}

	widths := columnWidths(append([][]string{header}, labels...))

	var b strings.Builder
	r.writeTableRow(&b, header, widths, true)
	for _, row := range labels {
		r.writeTableRow(&b, row, widths, false)
	}

	_, err = io.WriteString(output, b.String())
	return err
}

func (r *Renderer) writeTableRow(b *strings.Builder, row []string, widths []int, header bool) {
	for i, value := range row {
		if i > 0 {
			b.WriteString(" | ")
		}

		padded := value
		if i < len(row)-1 {
			padded = pad(value, widths[i])
		}
		switch {
		case r.Color && (header || i == 0):
			b.WriteString(headerFmt(padded))
		case r.Color && strings.HasPrefix(value, "#ERROR"):
			b.WriteString(errorFmt(padded))
		default:
			b.WriteString(padded)
		}
	}
	b.WriteString("\n")
}

// renderMarkdown writes the sheet as a GitHub flavored Markdown table
func (r *Renderer) renderMarkdown(s *sheet.Sheet, output io.Writer) error {
	rows, err := grid(s)
	if err != nil {
		return err
	}

	header := make([]string, s.Width()+1)
	header[0] = "#"
	for i := range s.Width() {
		header[i+1] = formula.ColumnLabel(i)
	}

	lines := [][]string{header}
	for i, row := range rows {
		line := []string{strconv.Itoa(i + 1)}
		for _, value := range row {
			line = append(line, escapeMarkdown(value))
		}
		lines = append(lines, line)
	}

	widths := columnWidths(lines)

	var b strings.Builder
	for i, line := range lines {
		writeMarkdownRow(&b, line, widths)
		if i == 0 {
			separator := make([]string, len(widths))
			for j, w := range widths {
				separator[j] = strings.Repeat("-", max(w, 3))
			}
			writeMarkdownRow(&b, separator, widths)
		}
	}

	_, err = fmt.Fprint(output, b.String())
	return err
}

func writeMarkdownRow(b *strings.Builder, row []string, widths []int) {
	b.WriteString("|")
	for i, value := range row {
		b.WriteString(" ")
		b.WriteString(pad(value, max(widths[i], 3)))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for i, value := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], displayWidth(value))
		}
	}
	return widths
}

// displayWidth counts East Asian wide and fullwidth runes as two columns.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func pad(s string, w int) string {
	if gap := w - displayWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
