package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNoSource    = errors.New("catalog has no source file")
	ErrInvalidItem = errors.New("invalid catalog item")
	ErrDuplicateID = errors.New("duplicate catalog item id")
	ErrEmptyFile   = errors.New("catalog file has no items")
)
