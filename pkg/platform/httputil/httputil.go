// Package httputil holds the JSON response and request-decoding helpers used
// by every handler.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "coldcheck/pkg/domain-errors"
)

const maxBodyBytes = 1 << 20

// Validatable is implemented by request DTOs that normalise and parse
// themselves after decoding.
type Validatable interface {
	Validate() error
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error            string            `json:"error"`
	ErrorDescription string            `json:"error_description,omitempty"`
	Fields           map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err to a status and writes the error envelope. Internal
// errors never leak their description.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)
	if code == dErrors.CodePartialRangeFailure {
		status = http.StatusInternalServerError
	}

	resp := ErrorResponse{Error: string(code)}
	if status < http.StatusInternalServerError {
		resp.ErrorDescription = dErrors.MessageOf(err)
	}
	var fe *fieldErrors
	if errors.As(err, &fe) {
		resp.Fields = fe.fields
	}
	WriteJSON(w, status, resp)
}

// DecodeAndPrepare decodes the JSON body into T, checks `validate` struct
// tags and then calls Validate when T implements Validatable. On failure it
// writes the error response and returns ok=false.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req := new(T)
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(req); err != nil {
		if errors.Is(err, io.EOF) {
			WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request body is required"))
			return nil, false
		}
		logger.WarnContext(ctx, "failed to decode request body",
			"error", err,
			"request_id", requestID,
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON request body"))
		return nil, false
	}

	if err := ValidateStruct(req); err != nil {
		logger.InfoContext(ctx, "request failed validation",
			"error", err,
			"request_id", requestID,
		)
		WriteError(w, err)
		return nil, false
	}

	if v, ok := any(req).(Validatable); ok {
		if err := v.Validate(); err != nil {
			logger.InfoContext(ctx, "request failed validation",
				"error", err,
				"request_id", requestID,
			)
			WriteError(w, err)
			return nil, false
		}
	}
	return req, true
}

// ValidateStruct runs struct-tag validation and returns a CodeValidation
// error listing each failing field.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request")
	}

	fields := make(map[string]string, len(verrs))
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fieldPath(fe)
		fields[name] = fe.Tag()
		names = append(names, name)
	}
	sort.Strings(names)
	return dErrors.Wrap(&fieldErrors{fields: fields}, dErrors.CodeValidation, "invalid fields: "+strings.Join(names, ", "))
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx != -1 {
		return ns[idx+1:]
	}
	return fe.Field()
}

type fieldErrors struct {
	fields map[string]string
}

func (e *fieldErrors) Error() string {
	parts := make([]string, 0, len(e.fields))
	for name, tag := range e.fields {
		parts = append(parts, name+"="+tag)
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
