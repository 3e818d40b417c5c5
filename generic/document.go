/*
document.go - Format-neutral report structures

PURPOSE:
  A report is built as structured data first and rendered second. The builder
  produces a Document of named Sections; an XLSX workbook writer, a plain-text
  exporter, or an HTML table can all consume it without the builder knowing
  which. This split keeps aggregation math out of rendering code.

SHAPE:
  Document
    Title        "Policies Report"
    GeneratedAt  timestamp stamped by the builder
    Sections     ordered
      Header     "Policy Status Summary"
      Columns    ["Status", "Count"]
      Rows       ordered rows of display strings

An empty input collection still produces every section (headers present,
rows empty or zero-valued), so consumers render "no data" rather than
missing a section.
*/
package generic

import "time"

// Document is a complete, renderable report.
type Document struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
	Sections    []Section `json:"sections"`
}

// Section is one named table within a Document.
type Section struct {
	Header  string     `json:"header"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}
