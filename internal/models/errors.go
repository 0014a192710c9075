package models

import "errors"

var (
	ErrEventNotFound         = errors.New("emergency event not found")
	ErrDuplicateResponse     = errors.New("you have already responded to this emergency")
	ErrInvalidResponseStatus = errors.New("invalid response status")
)
