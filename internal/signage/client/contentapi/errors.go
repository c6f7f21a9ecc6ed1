package contentapi

import (
	"errors"
	"strings"
)

var (
	ErrRequestFailed = errors.New("content api request failed")
	ErrNotFound      = errors.New("record not found")
)

type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationError is returned for a 400 answer that carries per-field details.
type ValidationError struct {
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields"`
}

func (ve *ValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return ve.Message
	}

	msgs := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		msgs = append(msgs, f.Message)
	}

	return ve.Message + ": " + strings.Join(msgs, "; ")
}
