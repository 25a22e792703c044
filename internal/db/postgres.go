// Package db is the optional Postgres audit trail for API requests. The
// site runs fine without it; when DATABASE_URL is unset the nop store is
// wired instead. Rows carry no lead or conversation content.
package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/models"
)

// AccessStore records one request outcome. Implementations must be safe for
// concurrent use.
type AccessStore interface {
	LogAccess(ctx context.Context, entry *models.AccessLog) error
	Close()
}

type DB struct {
	Pool *pgxpool.Pool
}

func NewDB(databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	return &DB{Pool: pool}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
}

// NopStore discards access logs. Wired when no database is configured.
type NopStore struct{}

func (NopStore) LogAccess(context.Context, *models.AccessLog) error { return nil }
func (NopStore) Close()                                             {}
