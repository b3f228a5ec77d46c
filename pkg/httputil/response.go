package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/karyoview/karyoview/pkg/errors"
)

// ErrorBody is the JSON body of an error response.
type ErrorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// WriteError writes err with the status its code maps to. Server errors are
// logged; their messages are not sent.
func WriteError(w http.ResponseWriter, logger *log.Logger, err error) {
	status := errors.HTTPStatus(err)
	body := ErrorBody{Error: errors.UserMessage(err), Code: errors.GetCode(err)}
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		if logger != nil {
			logger.Error("request failed", "status", status, "error", err)
		}
		if body.Code == "" || body.Code == errors.ErrCodeInternal {
			body.Error = http.StatusText(status)
		}
	}
	WriteJSON(w, status, body)
}
