// Package service ingests compliance reports and answers date-range queries.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"coldcheck/internal/models"
	"coldcheck/internal/report/metrics"
	id "coldcheck/pkg/domain"
)

const (
	DefaultMaxRangeDays = 366
	DefaultConcurrency  = 4
	tracerName          = "coldcheck/internal/report/service"
)

// Store is the persistence port for reports.
type Store interface {
	CreateReport(ctx context.Context, report *models.Report) error
	FindReport(ctx context.Context, reportID id.ReportID) (*models.Report, error)
	ListReportsByDate(ctx context.Context, date models.Date) ([]*models.Report, error)
	DeleteReport(ctx context.Context, reportID id.ReportID) error
}

// Service handles report submission, deletion and range queries.
type Service struct {
	store        Store
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	maxRangeDays int
	concurrency  int
	dayTimeout   time.Duration
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithMaxRangeDays caps how many calendar days one range query may span.
func WithMaxRangeDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.maxRangeDays = days
		}
	}
}

// WithConcurrency bounds parallel per-day fetches.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithDayTimeout bounds each per-day store call. Zero leaves calls unbounded.
func WithDayTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.dayTimeout = d
	}
}

// New constructs a Service.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("report store is required")
	}
	s := &Service{
		store:        store,
		logger:       slog.New(slog.DiscardHandler),
		maxRangeDays: DefaultMaxRangeDays,
		concurrency:  DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s, nil
}
