package models

import (
	"strings"
	"time"

	id "coldcheck/pkg/domain"
	dErrors "coldcheck/pkg/domain-errors"
)

// UnknownName is shown for entries whose unit (or its section) has been deleted.
const UnknownName = "Unknown"

// Report is one compliance check submission for a date and time slot.
//
// Invariants:
//   - Immutable once created; corrections are delete + resubmit
//   - At most one Entry per unit
//   - Stored together with its Entries in one transaction
type Report struct {
	ID            id.ReportID `json:"id"`
	Date          Date        `json:"date"`
	Slot          TimeSlot    `json:"time"`
	SubmitterName string      `json:"submitter_name"`
	Remarks       string      `json:"remarks,omitempty"`
	SubmittedBy   string      `json:"submitted_by"`
	CreatedAt     time.Time   `json:"created_at"`
	Entries       []*Entry    `json:"entries"`
}

// Entry is one unit's result within a report.
type Entry struct {
	ID        id.EntryID  `json:"id"`
	ReportID  id.ReportID `json:"report_id"`
	UnitID    id.UnitID   `json:"unit_id"`
	Compliant bool        `json:"temperature_in_range"`
	CreatedAt time.Time   `json:"created_at"`

	// Resolved on read. Nil when the unit (or its section) no longer exists.
	Unit    *Unit    `json:"-"`
	Section *Section `json:"-"`
}

// EntryInput is a submitted (unit, compliant) pair.
type EntryInput struct {
	UnitID    id.UnitID
	Compliant bool
}

// normalizeRemarks trims remarks and folds CR and CRLF line breaks to LF,
// which is all encoding/csv can carry through a quoted field.
func normalizeRemarks(remarks string) string {
	remarks = strings.ReplaceAll(remarks, "\r\n", "\n")
	remarks = strings.ReplaceAll(remarks, "\r", "\n")
	return strings.TrimSpace(remarks)
}

// NewReport builds a Report and its Entries from a submission. Entries keep
// the submission order.
func NewReport(
	reportID id.ReportID,
	date Date,
	slot TimeSlot,
	submitterName string,
	remarks string,
	submittedBy string,
	entries []EntryInput,
	now time.Time,
) (*Report, error) {
	if date.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "report date is required")
	}
	if !slot.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "report time slot is invalid")
	}
	submitterName, err := normalizeName(submitterName, "submitter name")
	if err != nil {
		return nil, err
	}
	seen := make(map[id.UnitID]struct{}, len(entries))
	for _, e := range entries {
		if e.UnitID.IsNil() {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "entry unit id is required")
		}
		if _, dup := seen[e.UnitID]; dup {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "duplicate entry for unit "+e.UnitID.String())
		}
		seen[e.UnitID] = struct{}{}
	}

	r := &Report{
		ID:            reportID,
		Date:          date,
		Slot:          slot,
		SubmitterName: submitterName,
		Remarks:       normalizeRemarks(remarks),
		SubmittedBy:   submittedBy,
		CreatedAt:     now,
		Entries:       make([]*Entry, 0, len(entries)),
	}
	for _, e := range entries {
		r.Entries = append(r.Entries, &Entry{
			ID:        id.NewEntryID(),
			ReportID:  reportID,
			UnitID:    e.UnitID,
			Compliant: e.Compliant,
			CreatedAt: now,
		})
	}
	return r, nil
}

// InRangeCount counts entries whose temperature was acceptable.
func (r *Report) InRangeCount() int {
	n := 0
	for _, e := range r.Entries {
		if e.Compliant {
			n++
		}
	}
	return n
}

// AttentionCount counts entries that need attention.
func (r *Report) AttentionCount() int {
	return len(r.Entries) - r.InRangeCount()
}

// UnitName returns the resolved unit name or UnknownName.
func (e *Entry) UnitName() string {
	if e.Unit == nil {
		return UnknownName
	}
	return e.Unit.Name
}

// SectionName returns the resolved section name or UnknownName.
func (e *Entry) SectionName() string {
	if e.Unit == nil || e.Section == nil {
		return UnknownName
	}
	return e.Section.Name
}
