package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Postgres driver
)

// Connect opens a pooled Postgres handle and verifies it with bounded
// retries: up to maxAttempts pings, one per retryDelay, then give up. The
// database container regularly comes up a few seconds after the service in
// compose environments, so a single ping is not enough.
func Connect(dsn string, maxAttempts int, retryDelay time.Duration) (*sql.DB, error) {
	dbConn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	dbConn.SetMaxOpenConns(25)
	dbConn.SetMaxIdleConns(25)
	dbConn.SetConnMaxLifetime(5 * time.Minute)

	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var pingErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), retryDelay)
		pingErr = dbConn.PingContext(ctx)
		cancel()
		if pingErr == nil {
			return dbConn, nil
		}
		if attempt < maxAttempts {
			time.Sleep(retryDelay)
		}
	}

	if closeErr := dbConn.Close(); closeErr != nil {
		return nil, fmt.Errorf("failed to ping database after %d attempts: %w (close also failed: %v)", maxAttempts, pingErr, closeErr)
	}
	return nil, fmt.Errorf("failed to ping database after %d attempts: %w", maxAttempts, pingErr)
}
