package service

import (
	"context"
	"errors"
	"strings"

	"coldcheck/internal/models"
	id "coldcheck/pkg/domain"
	dErrors "coldcheck/pkg/domain-errors"
	"coldcheck/pkg/platform/sentinel"
	"coldcheck/pkg/requestcontext"
)

// SubmitInput is one report submission as received from a client.
type SubmitInput struct {
	Date          string
	TimeSlot      string
	SubmitterName string
	Remarks       string
	Entries       []models.EntryInput
}

// Submit validates the submission and persists the report with its entries
// in one atomic write. The actor in ctx is recorded as the creator. Entries
// need not cover every unit.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.Report, error) {
	actor := requestcontext.Actor(ctx)
	if actor == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "an authenticated actor is required to submit a report")
	}

	date, err := models.ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		return nil, err
	}
	slot, err := models.ParseTimeSlot(in.TimeSlot)
	if err != nil {
		return nil, err
	}

	report, err := models.NewReport(id.NewReportID(), date, slot, in.SubmitterName, in.Remarks, actor, in.Entries, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
		}
		return nil, err
	}

	if err := s.store.CreateReport(ctx, report); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConstraint):
			return nil, dErrors.Wrap(err, dErrors.CodeConstraintViolation, "report entries reference an unknown or repeated unit")
		case errors.Is(err, context.DeadlineExceeded):
			return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "timed out saving report")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save report")
		}
	}

	if s.metrics != nil {
		s.metrics.IncrementSubmitted(len(report.Entries))
	}
	s.logger.InfoContext(ctx, "report submitted",
		"report_id", report.ID,
		"date", report.Date,
		"time_slot", report.Slot,
		"entries", len(report.Entries),
		"attention", report.AttentionCount(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return report, nil
}

// Get returns one report with entries resolved against current units.
func (s *Service) Get(ctx context.Context, reportID id.ReportID) (*models.Report, error) {
	report, err := s.store.FindReport(ctx, reportID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "report not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load report")
	}
	return report, nil
}

// Delete removes the report and its entries.
func (s *Service) Delete(ctx context.Context, reportID id.ReportID) error {
	if err := s.store.DeleteReport(ctx, reportID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "report not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete report")
	}
	if s.metrics != nil {
		s.metrics.IncrementDeleted()
	}
	s.logger.InfoContext(ctx, "report deleted",
		"report_id", reportID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}
