package repository

import "errors"

// Storage outcomes the service layer branches on. Raw driver errors never
// cross this boundary; anything unrecognized is wrapped with context and
// treated as a storage fault by callers.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	ErrInvalidID = errors.New("invalid id format")
)
