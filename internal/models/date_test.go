package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "coldcheck/pkg/domain-errors"
)

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	t.Run("accepts calendar dates", func(t *testing.T) {
		d := mustDate(t, "2024-02-29")
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, time.February, d.Month())
		assert.Equal(t, 29, d.Day())
		assert.Equal(t, "2024-02-29", d.String())
	})

	for _, bad := range []string{"", "2023-02-29", "2024-13-01", "2024-1-1", "01/01/2024", "2024-01-01T00:00:00Z"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := ParseDate(bad)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestNewDateRejectsOverflow(t *testing.T) {
	_, err := NewDate(2023, time.February, 29)
	require.Error(t, err)

	d, err := NewDate(2023, time.December, 31)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", d.AddDays(1).String())
}

func TestDateArithmetic(t *testing.T) {
	start := mustDate(t, "2024-02-27")
	end := mustDate(t, "2024-03-02")

	assert.True(t, start.Before(end))
	assert.True(t, end.After(start))
	assert.Equal(t, 0, start.Compare(mustDate(t, "2024-02-27")))
	assert.Equal(t, 5, start.DaysUntil(end))
	assert.Equal(t, 1, start.DaysUntil(start))
	assert.Equal(t, 0, end.DaysUntil(start))
	assert.Equal(t, "2024-02-29", start.AddDays(2).String())
}

func TestDateJSON(t *testing.T) {
	raw, err := json.Marshal(mustDate(t, "2024-01-01"))
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-01-01"`, string(raw))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-06-30"`), &d))
	assert.Equal(t, "2024-06-30", d.String())

	err = json.Unmarshal([]byte(`"2024-06-31"`), &d)
	require.Error(t, err)
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-06", d.String())

	require.NoError(t, d.Scan([]byte("2024-05-07")))
	assert.Equal(t, "2024-05-07", d.String())

	require.NoError(t, d.Scan("2024-05-08T00:00:00Z"))
	assert.Equal(t, "2024-05-08", d.String())

	require.Error(t, d.Scan(42))

	v, err := mustDate(t, "2024-05-09").Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-05-09", v)
}
