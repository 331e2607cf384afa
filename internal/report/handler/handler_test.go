package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"coldcheck/internal/models"
	"coldcheck/internal/report/metrics"
	"coldcheck/internal/report/service"
	"coldcheck/internal/store"
	id "coldcheck/pkg/domain"
	dErrors "coldcheck/pkg/domain-errors"
	"coldcheck/pkg/testutil"
)

type fixture struct {
	router  http.Handler
	store   *store.InMemory
	metrics *metrics.Metrics
	fridge1 *models.Unit
	fridge2 *models.Unit
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 2, 15, 0, 0, time.UTC)
	st := store.NewInMemory()

	kitchen, err := models.NewSection(id.NewSectionID(), "Kitchen", now)
	require.NoError(t, err)
	require.NoError(t, st.CreateSection(ctx, kitchen))
	f1, err := models.NewUnit(id.NewUnitID(), kitchen.ID, "Fridge 01", now)
	require.NoError(t, err)
	require.NoError(t, st.CreateUnit(ctx, f1))
	f2, err := models.NewUnit(id.NewUnitID(), kitchen.ID, "Fridge 02", now)
	require.NoError(t, err)
	require.NoError(t, st.CreateUnit(ctx, f2))

	m := metrics.New(prometheus.NewRegistry())
	svc, err := service.New(st, service.WithMetrics(m))
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	r := chi.NewRouter()
	New(svc, m, logger).Register(r)
	return &fixture{router: r, store: st, metrics: m, fridge1: f1, fridge2: f2, now: now}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	req = testutil.WithTime(testutil.WithActor(req, "user-1"), f.now)
	return testutil.DoRequest(f.router, req)
}

func (f *fixture) submit(t *testing.T, date, slot string) *ReportResponse {
	t.Helper()
	body := map[string]any{
		"date":           date,
		"time":           slot,
		"submitter_name": "Aida",
		"entries": []map[string]any{
			{"unit_id": f.fridge1.ID.String(), "temperature_in_range": true},
			{"unit_id": f.fridge2.ID.String(), "temperature_in_range": false},
		},
	}
	rr := f.do(testutil.NewJSONRequest(t, http.MethodPost, "/reports", body))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	return testutil.UnmarshalResponse[ReportResponse](t, rr)
}

func TestSubmitReport(t *testing.T) {
	f := newFixture(t)

	t.Run("legacy slot is normalised and stats derived", func(t *testing.T) {
		report := f.submit(t, "2024-01-01", "2am")
		assert.Equal(t, "02:00", report.Time)
		assert.Equal(t, "02:00 AM", report.TimeLabel)
		assert.Equal(t, "user-1", report.SubmittedBy)
		assert.Equal(t, service.Stats{Total: 2, InRange: 1, Attention: 1}, report.Stats)
		require.Len(t, report.Sections, 1)
		assert.Equal(t, "Kitchen", report.Sections[0].SectionName)
		assert.Equal(t, "Fridge 02", report.Entries[1].UnitName)
	})

	t.Run("duplicate unit is rejected", func(t *testing.T) {
		body := map[string]any{
			"date": "2024-01-01", "time": "04:00", "submitter_name": "Aida",
			"entries": []map[string]any{
				{"unit_id": f.fridge1.ID.String(), "temperature_in_range": true},
				{"unit_id": f.fridge1.ID.String(), "temperature_in_range": false},
			},
		}
		rr := f.do(testutil.NewJSONRequest(t, http.MethodPost, "/reports", body))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	})

	t.Run("missing compliance flag fails field validation", func(t *testing.T) {
		body := map[string]any{
			"date": "2024-01-01", "time": "04:00", "submitter_name": "Aida",
			"entries": []map[string]any{{"unit_id": f.fridge1.ID.String()}},
		}
		rr := f.do(testutil.NewJSONRequest(t, http.MethodPost, "/reports", body))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	})

	t.Run("unknown time slot", func(t *testing.T) {
		rr := f.do(testutil.NewJSONRequest(t, http.MethodPost, "/reports",
			map[string]any{"date": "2024-01-01", "time": "05:00", "submitter_name": "Aida"}))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	})
}

func TestQueryRange(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "2024-01-01", "06:00")
	f.submit(t, "2024-01-01", "00:00")
	f.submit(t, "2024-01-02", "02:00")
	f.submit(t, "2024-01-04", "02:00")

	rr := f.do(testutil.NewRequest(t, http.MethodGet, "/reports?start=2024-01-01&end=2024-01-02"))
	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[RangeResponse](t, rr)

	assert.Equal(t, 3, resp.Total)
	assert.False(t, resp.Partial)
	require.Len(t, resp.Groups, 3)
	assert.Equal(t, []string{"00:00", "02:00", "06:00"}, []string{resp.Groups[0].Time, resp.Groups[1].Time, resp.Groups[2].Time})
	assert.Equal(t, "12:00 AM", resp.Groups[0].Label)

	t.Run("end defaults to start", func(t *testing.T) {
		rr := f.do(testutil.NewRequest(t, http.MethodGet, "/reports?start=2024-01-04"))
		testutil.AssertStatusOK(t, rr)
		assert.Equal(t, 1, testutil.UnmarshalResponse[RangeResponse](t, rr).Total)
	})

	t.Run("inverted range", func(t *testing.T) {
		rr := f.do(testutil.NewRequest(t, http.MethodGet, "/reports?start=2024-01-02&end=2024-01-01"))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	})
}

func TestGetAndDeleteReport(t *testing.T) {
	f := newFixture(t)
	report := f.submit(t, "2024-01-01", "02:00")
	require.NoError(t, f.store.DeleteUnit(context.Background(), f.fridge2.ID))

	rr := f.do(testutil.NewRequest(t, http.MethodGet, "/reports/"+report.ID))
	testutil.AssertStatusOK(t, rr)
	got := testutil.UnmarshalResponse[ReportResponse](t, rr)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, models.UnknownName, got.Entries[1].UnitName)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, models.UnknownName, got.Sections[1].SectionName)
	assert.Empty(t, got.Sections[1].SectionID)

	rr = f.do(testutil.NewRequest(t, http.MethodDelete, "/reports/"+report.ID))
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	rr = f.do(testutil.NewRequest(t, http.MethodDelete, "/reports/"+report.ID))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")

	rr = f.do(testutil.NewRequest(t, http.MethodGet, "/reports/not-a-uuid"))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "2024-01-01", "2am")

	t.Run("csv", func(t *testing.T) {
		rr := f.do(testutil.NewRequest(t, http.MethodGet, "/reports/export?start=2024-01-01&end=2024-01-01"))
		testutil.AssertStatusOK(t, rr)
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "temperature-reports-2024-01-01.csv")
		assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/csv"))

		rows, err := csv.NewReader(rr.Body).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"2024-01-01", "02:00 AM", "Aida", "", "Kitchen", "Fridge 01", "Yes"}, rows[1])
		assert.Equal(t, "No", rows[2][6])
		assert.Equal(t, float64(2), promtest.ToFloat64(f.metrics.ExportedRows.WithLabelValues("csv")))
	})

	t.Run("xlsx", func(t *testing.T) {
		rr := f.do(testutil.NewRequest(t, http.MethodGet, "/reports/export?start=2024-01-01&end=2024-01-03&format=xlsx"))
		testutil.AssertStatusOK(t, rr)
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "temperature-reports-2024-01-01-to-2024-01-03.xlsx")

		wb, err := excelize.OpenReader(rr.Body)
		require.NoError(t, err)
		defer wb.Close()
		rows, err := wb.GetRows("Reports")
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})

	t.Run("unsupported format", func(t *testing.T) {
		rr := f.do(testutil.NewRequest(t, http.MethodGet, "/reports/export?start=2024-01-01&format=pdf"))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	})
}

func TestExportRemarksAndEmptyReport(t *testing.T) {
	f := newFixture(t)
	rr := f.do(testutil.NewJSONRequest(t, http.MethodPost, "/reports", map[string]any{
		"date": "2024-01-02", "time": "06:00", "submitter_name": "Aida",
		"remarks": "door stuck\r\nneeds repair\r",
	}))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	report := testutil.UnmarshalResponse[ReportResponse](t, rr)
	assert.Equal(t, "door stuck\nneeds repair", report.Remarks)

	rr = f.do(testutil.NewRequest(t, http.MethodGet, "/reports/export?start=2024-01-02"))
	testutil.AssertStatusOK(t, rr)
	rows, err := csv.NewReader(rr.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2024-01-02", "06:00 AM", "Aida", "door stuck\nneeds repair", "", "", ""}, rows[1])
	assert.Equal(t, float64(1), promtest.ToFloat64(f.metrics.ExportedRows.WithLabelValues("csv")))
}

// stubService returns a fixed range result to exercise partial responses.
type stubService struct {
	Service
	result *service.RangeResult
	err    error
}

func (s stubService) QueryRangeStrings(context.Context, string, string) (*service.RangeResult, error) {
	return s.result, s.err
}

func TestPartialRange(t *testing.T) {
	d1, err := models.ParseDate("2024-01-01")
	require.NoError(t, err)
	d2 := d1.AddDays(1)
	kept := &models.Report{ID: id.NewReportID(), Date: d1, Slot: models.Slot0000, SubmitterName: "Aida"}
	stub := stubService{
		result: &service.RangeResult{
			Start:      d1,
			End:        d2,
			Reports:    []*models.Report{kept},
			FailedDays: []service.DayFailure{{Date: d2, Err: errors.New("boom")}},
		},
		err: dErrors.Wrap(fmt.Errorf("2024-01-02: boom"), dErrors.CodePartialRangeFailure, "could not load reports for 2024-01-02"),
	}
	r := chi.NewRouter()
	New(stub, nil, slog.New(slog.DiscardHandler)).Register(r)

	t.Run("range answers 200 with failed days", func(t *testing.T) {
		rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/reports?start=2024-01-01&end=2024-01-02"))
		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[RangeResponse](t, rr)
		assert.True(t, resp.Partial)
		assert.Equal(t, []string{"2024-01-02"}, resp.FailedDays)
		assert.Equal(t, 1, resp.Total)
	})

	t.Run("export refuses a partial range", func(t *testing.T) {
		rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/reports/export?start=2024-01-01&end=2024-01-02"))
		testutil.AssertStatusAndError(t, rr, http.StatusInternalServerError, "partial_range_failure")
	})
}
