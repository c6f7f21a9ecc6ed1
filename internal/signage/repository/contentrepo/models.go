package contentrepo

import "errors"

var ErrNotFound = errors.New("record not found")

type ListRequest struct {
	OnlyActive bool
}
