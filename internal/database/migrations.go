package database

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Schema creates the hotel catalog tables
const Schema = `
CREATE TABLE IF NOT EXISTS hotels (
	id UUID PRIMARY KEY,
	name VARCHAR(255) UNIQUE NOT NULL,
	city VARCHAR(255) NOT NULL,
	country VARCHAR(255) NOT NULL DEFAULT '',
	rank INTEGER NOT NULL DEFAULT 0,
	price_from INTEGER NOT NULL,
	currency VARCHAR(3) NOT NULL,
	amenities TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_hotels_city ON hotels(lower(city));
`

// RunMigrations creates the necessary database tables
func RunMigrations(log logrus.FieldLogger) error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}
	if err := Migrate(DB); err != nil {
		return err
	}
	log.Info("Database migrations completed successfully")
	return nil
}

// Migrate applies Schema to db
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create hotels table: %w", err)
	}
	return nil
}
