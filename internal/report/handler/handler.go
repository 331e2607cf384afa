package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"coldcheck/internal/export"
	"coldcheck/internal/models"
	"coldcheck/internal/report/metrics"
	"coldcheck/internal/report/service"
	id "coldcheck/pkg/domain"
	dErrors "coldcheck/pkg/domain-errors"
	"coldcheck/pkg/platform/httputil"
	"coldcheck/pkg/requestcontext"
)

// Service defines the interface for report operations.
type Service interface {
	Submit(ctx context.Context, in service.SubmitInput) (*models.Report, error)
	Get(ctx context.Context, reportID id.ReportID) (*models.Report, error)
	Delete(ctx context.Context, reportID id.ReportID) error
	QueryRangeStrings(ctx context.Context, start, end string) (*service.RangeResult, error)
}

// Handler serves report submission, browsing and export.
type Handler struct {
	service Service
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a report Handler. m may be nil.
func New(svc Service, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{service: svc, metrics: m, logger: logger}
}

// Register registers the report routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/reports", h.HandleSubmit)
	r.Get("/reports", h.HandleQueryRange)
	r.Get("/reports/export", h.HandleExport)
	r.Get("/reports/{id}", h.HandleGet)
	r.Delete("/reports/{id}", h.HandleDelete)
}

// HandleSubmit persists one report with its entries.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[SubmitReportRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	in, err := req.toInput()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	report, err := h.service.Submit(ctx, in)
	if err != nil {
		h.fail(ctx, w, "failed to submit report", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toReportDetailResponse(report))
}

// HandleQueryRange answers GET /reports?start=&end=. end defaults to start.
// Days that fail to load are listed in failed_days; the rest are still
// returned with status 200.
func (h *Handler) HandleQueryRange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end := rangeParams(r)
	result, err := h.service.QueryRangeStrings(ctx, start, end)
	if err != nil && !(dErrors.HasCode(err, dErrors.CodePartialRangeFailure) && result != nil) {
		h.fail(ctx, w, "failed to query reports", err)
		return
	}
	if err != nil {
		h.logger.WarnContext(ctx, "returning partial report range",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	httputil.WriteJSON(w, http.StatusOK, toRangeResponse(result))
}

// HandleExport streams the range as CSV or XLSX. Exports are all-or-nothing:
// a range with failed days is an error rather than a silently short file.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	start, end := rangeParams(r)
	result, err := h.service.QueryRangeStrings(ctx, start, end)
	if err != nil {
		h.fail(ctx, w, "failed to load reports for export", err)
		return
	}

	rows := export.ToTable(result.Reports)
	var buf bytes.Buffer
	switch format {
	case export.FormatXLSX:
		err = export.WriteXLSX(&buf, rows)
	default:
		err = export.WriteCSV(&buf, rows)
	}
	if err != nil {
		h.fail(ctx, w, "failed to render export", dErrors.Wrap(err, dErrors.CodeInternal, "failed to render export"))
		return
	}

	dataRows := export.DataRows(result.Reports)
	if h.metrics != nil {
		h.metrics.AddExportedRows(string(format), dataRows)
	}
	h.logger.InfoContext(ctx, "reports exported",
		"format", format,
		"start", result.Start,
		"end", result.End,
		"rows", dataRows,
		"request_id", requestcontext.RequestID(ctx),
	)

	filename := export.Filename(result.Start, result.End, format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// HandleGet returns one report with its entries grouped by section.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reportID, err := id.ParseReportID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	report, err := h.service.Get(ctx, reportID)
	if err != nil {
		h.fail(ctx, w, "failed to get report", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toReportDetailResponse(report))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reportID, err := id.ParseReportID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.Delete(ctx, reportID); err != nil {
		h.fail(ctx, w, "failed to delete report", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func rangeParams(r *http.Request) (string, string) {
	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")
	if end == "" {
		end = start
	}
	return start, end
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	level := slog.LevelWarn
	if dErrors.ToHTTPStatus(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}
