package db

import (
	"context"

	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/models"
)

func (db *DB) LogAccess(ctx context.Context, entry *models.AccessLog) error {
	query := `
        INSERT INTO access_logs (endpoint, method, caller_key, status_code, response_time_ms, request_size, response_size)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

	_, err := db.Pool.Exec(ctx, query,
		entry.Endpoint,
		entry.Method,
		entry.CallerKey,
		entry.StatusCode,
		entry.ResponseTimeMs,
		entry.RequestSize,
		entry.ResponseSize,
	)

	return err
}

// RecentDenials returns how many requests were rejected (429 or 403) in the
// trailing interval. Backs the admin stats view.
func (db *DB) RecentDenials(ctx context.Context, hours int) (int64, error) {
	query := `
        SELECT COUNT(*)
        FROM access_logs
        WHERE status_code IN (403, 429)
          AND timestamp > NOW() - make_interval(hours => $1)
    `

	var count int64
	err := db.Pool.QueryRow(ctx, query, hours).Scan(&count)
	return count, err
}
