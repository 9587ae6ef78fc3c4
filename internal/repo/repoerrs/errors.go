package repoerrs

import "errors"

var (
	ErrAlreadyExists     = errors.New("already exists")
	ErrInvalidPagination = errors.New("invalid pagination")
)
