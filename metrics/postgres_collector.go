package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/marcelsud/plano-leitura/book"
)

// PostgresCollector implements the Collector interface with read-only
// aggregate queries over the livros table
type PostgresCollector struct {
	db *sql.DB
}

// NewPostgresCollector creates a new postgres metrics collector
func NewPostgresCollector(db *sql.DB) *PostgresCollector {
	return &PostgresCollector{
		db: db,
	}
}

// Collect gathers all metrics in one pass
func (c *PostgresCollector) Collect(ctx context.Context) (Metrics, error) {
	statusCounts, err := c.GetStatusCounts(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting status counts: %w", err)
	}

	totalBooks, err := c.GetTotalBooks(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting total books: %w", err)
	}

	pagesRead, err := c.GetPagesRead(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting pages read: %w", err)
	}

	return Metrics{
		StatusCounts: statusCounts,
		TotalBooks:   totalBooks,
		PagesRead:    pagesRead,
		Timestamp:    time.Now(),
	}, nil
}

// GetStatusCounts returns counts of books grouped by status.
// Statuses with no books still appear, zeroed.
func (c *PostgresCollector) GetStatusCounts(ctx context.Context) (map[string]int64, error) {
	statusCounts := map[string]int64{
		book.Pending.String():  0,
		book.Reading.String():  0,
		book.Finished.String(): 0,
	}

	rows, err := c.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM livros GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("counting books by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}
		statusCounts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status counts: %w", err)
	}

	return statusCounts, nil
}

// GetTotalBooks returns the number of tracked books
func (c *PostgresCollector) GetTotalBooks(ctx context.Context) (int64, error) {
	var total int64
	err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM livros").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("counting books: %w", err)
	}
	return total, nil
}

// GetPagesRead returns the total of pages read across all books
func (c *PostgresCollector) GetPagesRead(ctx context.Context) (int64, error) {
	var pages int64
	err := c.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(pagina_atual), 0) FROM livros").Scan(&pages)
	if err != nil {
		return 0, fmt.Errorf("summing pages read: %w", err)
	}
	return pages, nil
}
