package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"coldcheck/internal/models"
	id "coldcheck/pkg/domain"
	dErrors "coldcheck/pkg/domain-errors"
)

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func resolvedEntry(section, unit string, compliant bool) *models.Entry {
	s := &models.Section{ID: id.NewSectionID(), Name: section}
	u := &models.Unit{ID: id.NewUnitID(), SectionID: s.ID, Name: unit}
	return &models.Entry{ID: id.NewEntryID(), UnitID: u.ID, Compliant: compliant, Unit: u, Section: s}
}

func kitchenReport(t *testing.T) *models.Report {
	return &models.Report{
		ID:            id.NewReportID(),
		Date:          mustDate(t, "2024-01-01"),
		Slot:          models.Slot0200,
		SubmitterName: "Aida",
		Entries: []*models.Entry{
			resolvedEntry("Kitchen", "Fridge 01", true),
			resolvedEntry("Kitchen", "Fridge 02", false),
		},
	}
}

func TestToTable(t *testing.T) {
	t.Run("one row per entry", func(t *testing.T) {
		rows := ToTable([]*models.Report{kitchenReport(t)})
		require.Len(t, rows, 3)
		assert.Equal(t, Row(Header), rows[0])
		assert.Equal(t, Row{"2024-01-01", "02:00 AM", "Aida", "", "Kitchen", "Fridge 01", "Yes"}, rows[1])
		assert.Equal(t, Row{"2024-01-01", "02:00 AM", "Aida", "", "Kitchen", "Fridge 02", "No"}, rows[2])
	})

	t.Run("report without entries keeps one row", func(t *testing.T) {
		empty := &models.Report{Date: mustDate(t, "2024-01-02"), Slot: models.Slot0000, SubmitterName: "Ben", Remarks: "power cut"}
		rows := ToTable([]*models.Report{empty})
		require.Len(t, rows, 2)
		assert.Equal(t, Row{"2024-01-02", "12:00 AM", "Ben", "power cut", "", "", ""}, rows[1])
		assert.Equal(t, 1, DataRows([]*models.Report{empty}))
	})

	t.Run("dangling unit renders Unknown", func(t *testing.T) {
		r := kitchenReport(t)
		r.Entries[1].Unit, r.Entries[1].Section = nil, nil
		rows := ToTable([]*models.Report{r})
		assert.Equal(t, models.UnknownName, rows[2][4])
		assert.Equal(t, models.UnknownName, rows[2][5])
	})

	t.Run("no reports yields header only", func(t *testing.T) {
		rows := ToTable(nil)
		assert.Equal(t, []Row{Header}, rows)
	})

	t.Run("header is not aliased", func(t *testing.T) {
		rows := ToTable(nil)
		rows[0][0] = "changed"
		assert.Equal(t, "Date", Header[0])
	})
}

func TestCSVRoundTrip(t *testing.T) {
	r := kitchenReport(t)
	r.Remarks = "Fridge 02 door, \"stuck\"\nneeds repair"
	rows := ToTable([]*models.Report{r})

	out, err := CSVString(rows)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Date,Time,Submitted By,Remarks,Section,Unit Name,In Range\n"))
	assert.Contains(t, out, `"Fridge 02 door, ""stuck""`)

	parsed, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, len(rows))
	for i := range rows {
		assert.Equal(t, []string(rows[i]), parsed[i])
	}
}

func TestWriteXLSX(t *testing.T) {
	rows := ToTable([]*models.Report{kitchenReport(t)})

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, len(rows))
	for i := range rows {
		assert.Equal(t, []string(rows[i]), got[i])
	}
}

func TestFilename(t *testing.T) {
	d1, d2 := mustDate(t, "2024-01-01"), mustDate(t, "2024-01-07")
	assert.Equal(t, "temperature-reports-2024-01-01.csv", Filename(d1, d1, FormatCSV))
	assert.Equal(t, "temperature-reports-2024-01-01-to-2024-01-07.xlsx", Filename(d1, d2, FormatXLSX))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatCSV, "csv": FormatCSV, "XLSX": FormatXLSX} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("pdf")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
