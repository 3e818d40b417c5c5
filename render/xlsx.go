/*
Package render turns report documents into concrete export formats.

PURPOSE:
  The report builders in insurance/ emit format-neutral generic.Document
  values; this package owns the rendering side of that split. Each renderer
  consumes a Document and knows nothing about how it was aggregated.

RENDERERS:
  xlsx.go - Excel workbook via excelize, one sheet per section
  text.go - aligned plain-text tables for logs and quick exports

SEE ALSO:
  - generic/document.go: The Document/Section contract
  - insurance/report.go: Where documents come from
*/
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/insuremojo/admin-engine/generic"
)

// Filename returns the download name for an exported report,
// e.g. "policies-report-2026-08-31.xlsx".
func Filename(kind string, now time.Time) string {
	return fmt.Sprintf("%s-report-%s.xlsx", kind, now.Format("2006-01-02"))
}

// WriteXLSX renders doc as an Excel workbook with one sheet per section.
// Row 1 of each sheet holds the column labels; data rows follow in document
// order.
func WriteXLSX(w io.Writer, doc generic.Document) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, section := range doc.Sections {
		name := sheetName(section.Header, i)
		if i == 0 {
			// Rename the default sheet instead of leaving an empty Sheet1.
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("create sheet %q: %w", name, err)
			}
		}

		for col, label := range section.Columns {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, label); err != nil {
				return err
			}
		}

		for row, values := range section.Rows {
			for col, value := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row+2)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(name, cell, value); err != nil {
					return err
				}
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// sheetName fits a section header into Excel's 31-character sheet name limit
// and strips characters Excel rejects.
func sheetName(header string, index int) string {
	if header == "" {
		return fmt.Sprintf("Sheet%d", index+1)
	}
	replacer := strings.NewReplacer(":", "", "\\", "", "/", "", "?", "", "*", "", "[", "", "]", "")
	name := replacer.Replace(header)
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
