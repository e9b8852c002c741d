package domain

import "errors"

// Определяем переменные-ошибки, которые могут быть возвращены из Use Cases.
var (
	ErrInvalidSearchQuery = errors.New("at least one search parameter is required")
	ErrUnknownSource      = errors.New("unknown source id")
	ErrListingNotFound    = errors.New("listing not found")
	ErrDetailsUnavailable = errors.New("failed to get equipment details")
)
