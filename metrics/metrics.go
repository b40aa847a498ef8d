package metrics

import (
	"context"
	"time"
)

// Metrics represents the current state of the reading plan.
type Metrics struct {
	// StatusCounts maps status name to the number of books in that status
	StatusCounts map[string]int64 `json:"status_counts"`

	// TotalBooks is the number of tracked books
	TotalBooks int64 `json:"total_books"`

	// PagesRead is the sum of pagina_atual across all books
	PagesRead int64 `json:"pages_read"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for collecting metrics from the book store.
type Collector interface {
	// Collect gathers current metrics from the system
	Collect(ctx context.Context) (Metrics, error)

	// GetStatusCounts returns the count of books by status
	GetStatusCounts(ctx context.Context) (map[string]int64, error)

	// GetTotalBooks returns the number of tracked books
	GetTotalBooks(ctx context.Context) (int64, error)

	// GetPagesRead returns the total of pages read across all books
	GetPagesRead(ctx context.Context) (int64, error)
}
