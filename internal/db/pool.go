package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const connectAttempts = 6

// NewPool connects to Postgres with startup retries and doubling backoff, so
// the server survives a database container that is still coming up.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = 16
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = time.Minute

	backoff := time.Second
	for attempt := 1; ; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, config)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				log.Println("database connected")
				return pool, nil
			}
			pool.Close()
		}

		if attempt == connectAttempts {
			return nil, fmt.Errorf("database connection failed after %d attempts: %w", connectAttempts, err)
		}
		log.Printf("database connection attempt %d/%d failed, retrying in %s: %v",
			attempt, connectAttempts, backoff, err)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		backoff *= 2
	}
}
