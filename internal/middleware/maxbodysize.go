package middleware

import (
	"encoding/json"
	"net/http"
)

// tooLargeBody mirrors the API's error envelope, {"error":{"code","message"}}.
type tooLargeBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewMaxBodySizeHandler returns a middleware that limits incoming request body
// sizes to limit bytes. A request advertising a larger Content-Length is
// rejected with a JSON 413 before the next handler runs. Otherwise the body
// is wrapped in http.MaxBytesReader, so a streamed body fails on read once it
// crosses the limit.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeTooLarge(w)
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeTooLarge(w http.ResponseWriter) {
	var body tooLargeBody
	body.Error.Code = "payload_too_large"
	body.Error.Message = "request body too large"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusRequestEntityTooLarge)
	_ = json.NewEncoder(w).Encode(body)
}
