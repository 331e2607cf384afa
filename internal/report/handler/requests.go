package handler

import (
	"strings"

	"coldcheck/internal/models"
	"coldcheck/internal/report/service"
	id "coldcheck/pkg/domain"
)

// SubmitReportRequest is the body for POST /reports.
type SubmitReportRequest struct {
	Date          string         `json:"date" validate:"required"`
	Time          string         `json:"time" validate:"required"`
	SubmitterName string         `json:"submitter_name" validate:"required,max=128"`
	Remarks       string         `json:"remarks" validate:"max=2000"`
	Entries       []EntryRequest `json:"entries" validate:"dive"`
}

// EntryRequest is one unit result. TemperatureInRange is a pointer so an
// omitted flag fails validation instead of reading as false.
type EntryRequest struct {
	UnitID             string `json:"unit_id" validate:"required,uuid"`
	TemperatureInRange *bool  `json:"temperature_in_range" validate:"required"`
}

// Validate trims free-text fields.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *SubmitReportRequest) Validate() error {
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
	r.SubmitterName = strings.TrimSpace(r.SubmitterName)
	r.Remarks = strings.TrimSpace(r.Remarks)
	return nil
}

func (r *SubmitReportRequest) toInput() (service.SubmitInput, error) {
	in := service.SubmitInput{
		Date:          r.Date,
		TimeSlot:      r.Time,
		SubmitterName: r.SubmitterName,
		Remarks:       r.Remarks,
		Entries:       make([]models.EntryInput, 0, len(r.Entries)),
	}
	for _, e := range r.Entries {
		unitID, err := id.ParseUnitID(e.UnitID)
		if err != nil {
			return service.SubmitInput{}, err
		}
		in.Entries = append(in.Entries, models.EntryInput{UnitID: unitID, Compliant: *e.TemperatureInRange})
	}
	return in, nil
}
