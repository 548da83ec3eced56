package delivery

import "errors"

var (
	ErrNoMessages = errors.New("no messages")
)
