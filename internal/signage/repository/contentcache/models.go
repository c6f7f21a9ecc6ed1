package contentcache

import "errors"

var ErrMiss = errors.New("cache miss")
