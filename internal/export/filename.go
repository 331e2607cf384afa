package export

import (
	"fmt"
	"strings"

	"coldcheck/internal/models"
	dErrors "coldcheck/pkg/domain-errors"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" or "xlsx" case-insensitively; empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unsupported export format %q: expected csv or xlsx", s))
}

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// BaseName is temperature-reports-<date> for one day and
// temperature-reports-<start>-to-<end> for a longer range.
func BaseName(start, end models.Date) string {
	if start == end {
		return "temperature-reports-" + start.String()
	}
	return "temperature-reports-" + start.String() + "-to-" + end.String()
}

// Filename is BaseName plus the format's extension.
func Filename(start, end models.Date, f Format) string {
	return BaseName(start, end) + f.Extension()
}
