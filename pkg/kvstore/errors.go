package kvstore

import "errors"

var (
	ErrNotFound = errors.New("[kvstore] key not found")
	ErrConflict = errors.New("[kvstore] transaction conflict")
	ErrReadOnly = errors.New("[kvstore] read-only access")
)
