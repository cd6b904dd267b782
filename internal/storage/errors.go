package storage

import "errors"

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrParse          = errors.New("config file is not valid JSON")
	ErrNotObject      = errors.New("config root is not a JSON object")
	ErrWrite          = errors.New("failed to write config file")
	ErrUnrecoverable  = errors.New("config file could not be restored after a failed write")
)
