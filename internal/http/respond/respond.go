package respond

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Codes for failures the API layer detects before reaching the service.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInternal       = "INTERNAL_ERROR"
)

// ErrorItem is one entry of the error envelope.
type ErrorItem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the error body shared by every endpoint.
type Envelope struct {
	Errors []ErrorItem `json:"errors"`
}

// JSON writes data as the response body.
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, data)
}

// Error writes a single-item error envelope.
func Error(w http.ResponseWriter, status int, code, message string) {
	Errors(w, status, ErrorItem{Code: code, Message: message})
}

// Errors writes an error envelope carrying all items.
func Errors(w http.ResponseWriter, status int, items ...ErrorItem) {
	if items == nil {
		items = []ErrorItem{}
	}
	write(w, status, Envelope{Errors: items})
}

// Empty writes a status line with no body.
func Empty(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

func write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Warn("respond: encode payload failed")
	}
}
