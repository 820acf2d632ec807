package domain

import "errors"

// Builder mutation errors
var (
	ErrUnitLimit            = errors.New("composition already has the maximum number of units")
	ErrItemLimit            = errors.New("unit already holds the maximum number of items")
	ErrUnknownUnit          = errors.New("unit not found in catalog")
	ErrSelectedUnitNotFound = errors.New("selected unit not found")
	ErrInvalidStarLevel     = errors.New("star level must be 1, 2 or 3")
	ErrEmptyValue           = errors.New("value must not be empty")
	ErrIndexOutOfRange      = errors.New("index out of range")
)

// Catalog errors
var (
	ErrCatalogSetMissing = errors.New("game data set not found")
	ErrCatalogEmpty      = errors.New("game data set has no units")
)
