package database

import (
	"database/sql"
	"fmt"
	"time"

	"personalportal/pkg/logger"

	_ "github.com/lib/pq"
)

var retryDelay = 2 * time.Second

// Connect opens the Postgres pool for dsn and pings it, retrying a few
// times in case of temporary DNS/network blips.
func Connect(dsn string, retries int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := ping(db, retries); err != nil {
		db.Close()
		return nil, err
	}
	logger.Sugar.Info("Successfully connected to the database")
	return db, nil
}

func ping(db *sql.DB, retries int) error {
	if retries < 1 {
		retries = 1
	}
	var err error
	for i := 0; i < retries; i++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		logger.Sugar.Infof("Database connection failed, retrying in %s... (%v)", retryDelay, err)
		if i < retries-1 {
			time.Sleep(retryDelay)
		}
	}
	return fmt.Errorf("could not connect to database after %d attempts: %w", retries, err)
}
