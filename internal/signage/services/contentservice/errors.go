package contentservice

import "errors"

var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidBody = errors.New("invalid request body")
)
