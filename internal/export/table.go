// Package export flattens reports into a fixed-column table and renders it
// as CSV or as an XLSX workbook.
package export

import (
	"coldcheck/internal/models"
)

// Header is the fixed first row of every export.
var Header = []string{"Date", "Time", "Submitted By", "Remarks", "Section", "Unit Name", "In Range"}

// Row is one logical export row, aligned with Header.
type Row []string

// ToTable returns the header followed by one row per entry. A report with no
// entries still yields one row with the section, unit and in-range cells empty.
func ToTable(reports []*models.Report) []Row {
	rows := make([]Row, 0, len(reports)+1)
	rows = append(rows, append(Row(nil), Header...))
	for _, r := range reports {
		rows = append(rows, reportRows(r)...)
	}
	return rows
}

// DataRows counts the rows ToTable emits after the header.
func DataRows(reports []*models.Report) int {
	n := 0
	for _, r := range reports {
		if len(r.Entries) == 0 {
			n++
			continue
		}
		n += len(r.Entries)
	}
	return n
}

func reportRows(r *models.Report) []Row {
	date, slot := r.Date.String(), r.Slot.Label()
	if len(r.Entries) == 0 {
		return []Row{{date, slot, r.SubmitterName, r.Remarks, "", "", ""}}
	}
	rows := make([]Row, 0, len(r.Entries))
	for _, e := range r.Entries {
		rows = append(rows, Row{
			date,
			slot,
			r.SubmitterName,
			r.Remarks,
			e.SectionName(),
			e.UnitName(),
			yesNo(e.Compliant),
		})
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
