package usecase

import (
	"context"
	"time"
)

// JSONCache stores JSON-encoded values for the matching and catalog
// usecases. GetJSON reports false on a miss.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SearchCache adds the short lock that lets one caller fill a cold career
// search key while concurrent identical searches go to the database.
type SearchCache interface {
	JSONCache
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

// CatalogInvalidator drops cached values derived from the career catalog:
// search pages, career embeddings and enhanced match views.
type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context) error
}
