/*
text.go - Plain-text document renderer

Aligned, padded tables for terminal output and text exports. Column widths
fit the widest cell in each column, headers are underlined, sections are
separated by a blank line.
*/
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/insuremojo/admin-engine/generic"
)

// WriteText renders doc as aligned plain-text tables.
func WriteText(w io.Writer, doc generic.Document) error {
	if _, err := fmt.Fprintf(w, "%s\nGenerated on: %s\n", doc.Title, doc.GeneratedAt.Format("2 January 2006")); err != nil {
		return err
	}

	for _, section := range doc.Sections {
		if _, err := fmt.Fprintf(w, "\n%s\n", section.Header); err != nil {
			return err
		}

		widths := columnWidths(section)
		if err := writeRow(w, section.Columns, widths); err != nil {
			return err
		}
		if err := writeRow(w, underlines(widths), widths); err != nil {
			return err
		}
		for _, row := range section.Rows {
			if err := writeRow(w, row, widths); err != nil {
				return err
			}
		}
	}
	return nil
}

func columnWidths(section generic.Section) []int {
	widths := make([]int, len(section.Columns))
	for i, label := range section.Columns {
		widths[i] = len(label)
	}
	for _, row := range section.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func underlines(widths []int) []string {
	out := make([]string, len(widths))
	for i, w := range widths {
		out[i] = strings.Repeat("-", w)
	}
	return out
}

func writeRow(w io.Writer, cells []string, widths []int) error {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		width := len(cell)
		if i < len(widths) {
			width = widths[i]
		}
		parts[i] = fmt.Sprintf("%-*s", width, cell)
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	return err
}
