package service

import (
	"errors"
	"fmt"
)

// ErrStore marks any persistence failure. Validation failures never wrap it.
var ErrStore = errors.New("store error")

var (
	ErrLogAlreadyExists  = fmt.Errorf("log already exists: %w", ErrStore)
	ErrCannotCreateLog   = fmt.Errorf("cannot create log: %w", ErrStore)
	ErrCannotGetLogs     = fmt.Errorf("cannot get logs: %w", ErrStore)
	ErrInvalidPagination = fmt.Errorf("limit and offset must not be negative: %w", ErrStore)
	ErrCannotGetMetrics  = fmt.Errorf("cannot get metrics: %w", ErrStore)
)
