package search

import (
	"context"

	"github.com/translate/ptlsearch/internal/repository/popular"
)

// PopularStore records and ranks encoded queries per environment.
type PopularStore interface {
	Record(ctx context.Context, environment, encoded string) error
	Top(ctx context.Context, environment string, limit int) ([]popular.Entry, error)
}
