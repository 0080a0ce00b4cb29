package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrMissingUser  = errors.New("user does not exist")
)
