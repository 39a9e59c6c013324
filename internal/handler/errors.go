package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

// Error codes carried in ErrorResponse.Error.Code.
const (
	codeBadRequest      = "bad_request"
	codePayloadTooLarge = "payload_too_large"
	codeNotFound        = "not_found"
	codeValidation      = "validation_error"
	codeInvalidDate     = "invalid_date"
	codeDeliveryFailed  = "delivery_failed"
	codeInternal        = "internal_error"
)

func errorBody(code, message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: code, Message: message}}
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the message (e.g. "trip not found") because the handler
// is the layer that knows what was being looked up.
func notFoundBody(message string) gen.ErrorResponse {
	return errorBody(codeNotFound, message)
}

// validationBody returns an ErrorResponse for a domain.ErrValidation failure.
func validationBody(err error) gen.ErrorResponse {
	return errorBody(codeValidation, messageAfter(err, domain.ErrValidation))
}

// invalidDateBody returns an ErrorResponse for a broken trip date rule.
func invalidDateBody(err error) gen.ErrorResponse {
	return errorBody(codeInvalidDate, messageAfter(err, domain.ErrInvalidDate))
}

// deliveryBody returns an ErrorResponse for a failed email send. Relay
// details stay in the server log.
func deliveryBody() gen.ErrorResponse {
	return errorBody(codeDeliveryFailed, domain.ErrDelivery.Error())
}

// messageAfter extracts the human-readable part that follows a sentinel in a
// wrapped error.
// e.g. "service.TripService.Create: invalid date: start in past" → "start in past"
func messageAfter(err, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return sentinel.Error()
}

func writeError(w http.ResponseWriter, status int, body gen.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// requestErrorHandler answers requests the generated code could not decode:
// a malformed path parameter or JSON body, or a body over the size limit.
func requestErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, errorBody(codePayloadTooLarge, "request body too large"))
		return
	}
	writeError(w, http.StatusBadRequest, errorBody(codeBadRequest, err.Error()))
}

// responseErrorHandler answers errors handlers return instead of a typed
// response. Those are unexpected, so the details are logged, not sent.
func responseErrorHandler(log *slog.Logger) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, errorBody(codeInternal, "internal server error"))
	}
}
