package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrNotOwner = errors.New("not the owner of this listing")
	ErrConflict = errors.New("already exists")
)
