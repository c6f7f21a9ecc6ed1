package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Leopold1975/signage_control/internal/signage/services/contentservice"
)

// Envelope wraps every Content API response body.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

type ValidationErrorBody struct {
	Message string                      `json:"message"`
	Fields  []contentservice.FieldError `json:"fields"`
}

func (e Envelope) ToJSON() []byte {
	b, err := json.Marshal(e)
	if err != nil {
		b, err := json.Marshal(Envelope{Success: false, Error: err.Error()}) //nolint:exhaustruct
		if err != nil {
			return []byte(`{"success":false,"error":"marshal error"}`)
		}

		return b
	}

	return b
}

func writeData(w http.ResponseWriter, code int, data interface{}) {
	w.WriteHeader(code)
	w.Write(Envelope{Success: true, Data: data}.ToJSON()) //nolint:errcheck,exhaustruct
}

func handleError(w http.ResponseWriter, err error, code int) {
	e := Envelope{Success: false, Error: err.Error()} //nolint:exhaustruct

	var ve *contentservice.ValidationError
	if errors.As(err, &ve) {
		e.Error = ValidationErrorBody{Message: "validation failed", Fields: ve.Fields}
	}

	w.WriteHeader(code)
	w.Write(e.ToJSON()) //nolint:errcheck
}

func contentErrorCode(err error) int {
	var ve *contentservice.ValidationError

	switch {
	case errors.As(err, &ve), errors.Is(err, contentservice.ErrInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, contentservice.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
