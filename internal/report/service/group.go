package service

import (
	"coldcheck/internal/models"
	id "coldcheck/pkg/domain"
)

// SlotGroup is the reports for one time-slot, in input order.
type SlotGroup struct {
	Slot    models.TimeSlot
	Reports []*models.Report
}

// GroupByTimeSlot partitions reports by slot, keeping each report's relative
// order. Slots with no reports are absent.
func GroupByTimeSlot(reports []*models.Report) map[models.TimeSlot][]*models.Report {
	groups := make(map[models.TimeSlot][]*models.Report)
	for _, r := range reports {
		groups[r.Slot] = append(groups[r.Slot], r)
	}
	return groups
}

// OrderedSlotGroups groups reports by slot and returns the non-empty groups
// in the fixed presentation order 00:00, 02:00, 04:00, 06:00.
func OrderedSlotGroups(reports []*models.Report) []SlotGroup {
	groups := GroupByTimeSlot(reports)
	out := make([]SlotGroup, 0, len(groups))
	for _, slot := range models.TimeSlots() {
		if rs, ok := groups[slot]; ok {
			out = append(out, SlotGroup{Slot: slot, Reports: rs})
		}
	}
	return out
}

// SectionGroup is the entries of one report that belong to one section.
// SectionID is nil for the "Unknown" bucket.
type SectionGroup struct {
	SectionID   id.SectionID
	SectionName string
	Entries     []*models.Entry
}

// GroupEntriesBySection buckets a report's entries by their resolved
// section, ordered by first appearance. Entries whose unit or section no
// longer exists share one "Unknown" bucket.
func GroupEntriesBySection(report *models.Report) []SectionGroup {
	var out []SectionGroup
	index := make(map[id.SectionID]int)
	for _, e := range report.Entries {
		var key id.SectionID
		if e.Section != nil {
			key = e.Section.ID
		}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, SectionGroup{SectionID: key, SectionName: e.SectionName()})
		}
		out[i].Entries = append(out[i].Entries, e)
	}
	return out
}

// Stats are the derived compliance counts for one report.
type Stats struct {
	Total     int `json:"total"`
	InRange   int `json:"in_range"`
	Attention int `json:"attention"`
}

func StatsOf(report *models.Report) Stats {
	return Stats{
		Total:     len(report.Entries),
		InRange:   report.InRangeCount(),
		Attention: report.AttentionCount(),
	}
}
