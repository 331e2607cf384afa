package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"coldcheck/internal/models"
	dErrors "coldcheck/pkg/domain-errors"
	"coldcheck/pkg/requestcontext"
)

// DayFailure records a calendar day whose reports could not be fetched.
type DayFailure struct {
	Date models.Date
	Err  error
}

// RangeResult is the outcome of a range query. Reports holds every report
// from the days that succeeded, in ascending date order and newest first
// within a day.
type RangeResult struct {
	Start      models.Date
	End        models.Date
	Reports    []*models.Report
	FailedDays []DayFailure
}

// Partial reports whether any day failed.
func (r *RangeResult) Partial() bool {
	return len(r.FailedDays) > 0
}

// QueryRangeStrings parses YYYY-MM-DD bounds and calls QueryRange.
func (s *Service) QueryRangeStrings(ctx context.Context, start, end string) (*RangeResult, error) {
	startDate, err := models.ParseDate(strings.TrimSpace(start))
	if err != nil {
		return nil, err
	}
	endDate, err := models.ParseDate(strings.TrimSpace(end))
	if err != nil {
		return nil, err
	}
	return s.QueryRange(ctx, startDate, endDate)
}

// QueryRange returns every report dated within [start, end].
//
// Days are fetched independently with bounded parallelism. A failing day does
// not stop the others: the result still carries the reports of every day that
// succeeded, and the returned error has code partial_range_failure and lists
// the failed days. A non-nil result is returned whenever the range was valid.
func (s *Service) QueryRange(ctx context.Context, start, end models.Date) (*RangeResult, error) {
	if start.IsZero() || end.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "start and end dates are required")
	}
	if start.After(end) {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("start date %s is after end date %s", start, end))
	}
	days := start.DaysUntil(end)
	if days > s.maxRangeDays {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("date range spans %d days; at most %d allowed", days, s.maxRangeDays))
	}

	began := time.Now()
	ctx, span := s.tracer.Start(ctx, "report.QueryRange")
	defer span.End()
	span.SetAttributes(
		attribute.String("range.start", start.String()),
		attribute.String("range.end", end.String()),
		attribute.Int("range.days", days),
	)

	perDay := make([][]*models.Report, days)
	dayErrs := make([]error, days)

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := 0; i < days; i++ {
		date := start.AddDays(i)
		g.Go(func() error {
			perDay[i], dayErrs[i] = s.fetchDay(ctx, date)
			// Per-day errors are collected, never returned, so no fetch
			// cancels another.
			return nil
		})
	}
	_ = g.Wait()

	result := &RangeResult{Start: start, End: end, Reports: []*models.Report{}}
	for i := 0; i < days; i++ {
		if dayErrs[i] != nil {
			result.FailedDays = append(result.FailedDays, DayFailure{Date: start.AddDays(i), Err: dayErrs[i]})
			continue
		}
		result.Reports = append(result.Reports, perDay[i]...)
	}

	span.SetAttributes(
		attribute.Int("range.reports", len(result.Reports)),
		attribute.Int("range.failed_days", len(result.FailedDays)),
	)

	if !result.Partial() {
		s.observeRange(began, "ok", 0)
		return result, nil
	}

	if err := ctx.Err(); err != nil && len(result.FailedDays) == days {
		span.SetStatus(codes.Error, "range query cancelled")
		s.observeRange(began, "failed", days)
		return result, dErrors.Wrap(err, dErrors.CodeTimeout, "range query cancelled")
	}

	failed := make([]string, 0, len(result.FailedDays))
	causes := make([]error, 0, len(result.FailedDays))
	for _, f := range result.FailedDays {
		failed = append(failed, f.Date.String())
		causes = append(causes, fmt.Errorf("%s: %w", f.Date, f.Err))
	}
	span.SetStatus(codes.Error, "partial range failure")
	s.logger.WarnContext(ctx, "range query partially failed",
		"start", start,
		"end", end,
		"failed_days", failed,
		"request_id", requestcontext.RequestID(ctx),
	)

	outcome := "partial"
	if len(result.FailedDays) == days {
		outcome = "failed"
	}
	s.observeRange(began, outcome, len(result.FailedDays))
	return result, dErrors.Wrap(errors.Join(causes...), dErrors.CodePartialRangeFailure,
		"could not load reports for "+strings.Join(failed, ", "))
}

func (s *Service) fetchDay(ctx context.Context, date models.Date) ([]*models.Report, error) {
	ctx, span := s.tracer.Start(ctx, "report.fetchDay")
	defer span.End()
	span.SetAttributes(attribute.String("day", date.String()))

	if s.dayTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.dayTimeout)
		defer cancel()
	}

	reports, err := s.store.ListReportsByDate(ctx, date)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch day failed")
		s.logger.WarnContext(ctx, "failed to fetch reports for day",
			"date", date,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, err
	}
	span.SetAttributes(attribute.Int("reports", len(reports)))
	return reports, nil
}

func (s *Service) observeRange(start time.Time, outcome string, failedDays int) {
	if s.metrics != nil {
		s.metrics.ObserveRangeQuery(start, outcome, failedDays)
	}
}
