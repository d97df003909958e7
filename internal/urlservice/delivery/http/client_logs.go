package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"shortlog/internal/eventlog"
	"shortlog/pkg/problemdetails"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
)

const maxClientLogBytes = 64 << 10

// ClientLogRequest is a frontend event relayed through the backend so the
// collector token never reaches the browser. The stack is always frontend.
type ClientLogRequest struct {
	Level   string `json:"level"`
	Package string `json:"package"`
	Message any    `json:"message"`
}

// Validate checks the request shape. Taxonomy membership is checked by
// eventlog.Validate.
func (r ClientLogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Level, validation.Required),
		validation.Field(&r.Package, validation.Required),
		validation.Field(&r.Message, validation.NotNil),
	)
}

// ClientLogResponse acknowledges an accepted client event.
type ClientLogResponse struct {
	Status string `json:"status"`
}

// RelayClientLog handles POST /api/v1/client-logs
func (h *Handler) RelayClientLog(w http.ResponseWriter, r *http.Request) {
	var req ClientLogRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxClientLogBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeInvalidRequest,
			"Invalid Request",
			"Request body must be valid JSON with 'level', 'package' and 'message' fields",
		))
		return
	}

	if err := req.Validate(); err != nil {
		writeProblem(w, problemdetails.NewValidation(fieldErrors(err)))
		return
	}

	if _, err := eventlog.Validate(string(eventlog.StackFrontend), req.Level, req.Package); err != nil {
		h.logger.Debug("client log rejected",
			zap.String("level", req.Level),
			zap.String("package", req.Package),
			zap.Error(err),
		)
		writeProblem(w, problemdetails.NewValidation(fieldErrors(err)))
		return
	}

	h.events.Log(string(eventlog.StackFrontend), req.Level, req.Package, req.Message)
	writeJSON(w, http.StatusAccepted, ClientLogResponse{Status: "accepted"})
}

// fieldErrors flattens ozzo and eventlog validation errors into problem
// detail field errors.
func fieldErrors(err error) []problemdetails.FieldError {
	var (
		errs    validation.Errors
		missing *eventlog.MissingFieldError
		level   *eventlog.InvalidLevelError
		pkg     *eventlog.InvalidPackageError
	)
	switch {
	case errors.As(err, &errs):
		fields := make([]problemdetails.FieldError, 0, len(errs))
		for field, fieldErr := range errs {
			fields = append(fields, problemdetails.FieldError{Field: field, Message: fieldErr.Error()})
		}
		sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
		return fields
	case errors.As(err, &missing):
		return []problemdetails.FieldError{{Field: missing.Field, Message: err.Error()}}
	case errors.As(err, &level):
		return []problemdetails.FieldError{{Field: "level", Message: err.Error()}}
	case errors.As(err, &pkg):
		return []problemdetails.FieldError{{Field: "package", Message: err.Error()}}
	default:
		return []problemdetails.FieldError{{Field: "body", Message: err.Error()}}
	}
}
