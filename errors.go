package main

import "errors"

var (
	ErrCatalogNotFound = errors.New("catalog not found")
	ErrInvalidCatalog  = errors.New("invalid catalog")
	ErrInvalidLocale   = errors.New("invalid locale code")
	ErrUnknownFormat   = errors.New("unknown catalog format")
)
