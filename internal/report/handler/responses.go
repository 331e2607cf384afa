package handler

import (
	"time"

	"coldcheck/internal/models"
	"coldcheck/internal/report/service"
)

type EntryResponse struct {
	ID                 string `json:"id"`
	UnitID             string `json:"unit_id"`
	UnitName           string `json:"unit_name"`
	SectionID          string `json:"section_id,omitempty"`
	SectionName        string `json:"section_name"`
	TemperatureInRange bool   `json:"temperature_in_range"`
}

type SectionEntriesResponse struct {
	SectionID   string           `json:"section_id,omitempty"`
	SectionName string           `json:"section_name"`
	Entries     []*EntryResponse `json:"entries"`
}

type ReportResponse struct {
	ID            string           `json:"id"`
	Date          string           `json:"date"`
	Time          string           `json:"time"`
	TimeLabel     string           `json:"time_label"`
	SubmitterName string           `json:"submitter_name"`
	Remarks       string           `json:"remarks,omitempty"`
	SubmittedBy   string           `json:"submitted_by"`
	CreatedAt     time.Time        `json:"created_at"`
	Stats         service.Stats    `json:"stats"`
	Entries       []*EntryResponse `json:"entries"`

	// Detail view only.
	Sections []*SectionEntriesResponse `json:"sections,omitempty"`
}

type SlotGroupResponse struct {
	Time    string            `json:"time"`
	Label   string            `json:"label"`
	Reports []*ReportResponse `json:"reports"`
}

// RangeResponse is the body for GET /reports. Partial is true when some days
// could not be loaded; those dates are listed in FailedDays.
type RangeResponse struct {
	Start      string               `json:"start"`
	End        string               `json:"end"`
	Total      int                  `json:"total"`
	Groups     []*SlotGroupResponse `json:"groups"`
	Partial    bool                 `json:"partial"`
	FailedDays []string             `json:"failed_days,omitempty"`
}

func toEntryResponse(e *models.Entry) *EntryResponse {
	resp := &EntryResponse{
		ID:                 e.ID.String(),
		UnitID:             e.UnitID.String(),
		UnitName:           e.UnitName(),
		SectionName:        e.SectionName(),
		TemperatureInRange: e.Compliant,
	}
	if e.Unit != nil && e.Section != nil {
		resp.SectionID = e.Section.ID.String()
	}
	return resp
}

func toReportResponse(r *models.Report) *ReportResponse {
	resp := &ReportResponse{
		ID:            r.ID.String(),
		Date:          r.Date.String(),
		Time:          r.Slot.String(),
		TimeLabel:     r.Slot.Label(),
		SubmitterName: r.SubmitterName,
		Remarks:       r.Remarks,
		SubmittedBy:   r.SubmittedBy,
		CreatedAt:     r.CreatedAt,
		Stats:         service.StatsOf(r),
		Entries:       make([]*EntryResponse, 0, len(r.Entries)),
	}
	for _, e := range r.Entries {
		resp.Entries = append(resp.Entries, toEntryResponse(e))
	}
	return resp
}

func toReportDetailResponse(r *models.Report) *ReportResponse {
	resp := toReportResponse(r)
	groups := service.GroupEntriesBySection(r)
	resp.Sections = make([]*SectionEntriesResponse, 0, len(groups))
	for _, g := range groups {
		sr := &SectionEntriesResponse{SectionName: g.SectionName, Entries: make([]*EntryResponse, 0, len(g.Entries))}
		if !g.SectionID.IsNil() {
			sr.SectionID = g.SectionID.String()
		}
		for _, e := range g.Entries {
			sr.Entries = append(sr.Entries, toEntryResponse(e))
		}
		resp.Sections = append(resp.Sections, sr)
	}
	return resp
}

func toRangeResponse(result *service.RangeResult) *RangeResponse {
	resp := &RangeResponse{
		Start:   result.Start.String(),
		End:     result.End.String(),
		Total:   len(result.Reports),
		Groups:  []*SlotGroupResponse{},
		Partial: result.Partial(),
	}
	for _, g := range service.OrderedSlotGroups(result.Reports) {
		gr := &SlotGroupResponse{Time: g.Slot.String(), Label: g.Slot.Label(), Reports: make([]*ReportResponse, 0, len(g.Reports))}
		for _, r := range g.Reports {
			gr.Reports = append(gr.Reports, toReportResponse(r))
		}
		resp.Groups = append(resp.Groups, gr)
	}
	for _, f := range result.FailedDays {
		resp.FailedDays = append(resp.FailedDays, f.Date.String())
	}
	return resp
}
