package database

import (
	"baristasalary/config"

	"gorm.io/gorm"
)

// OpenInMemory returns a fresh, migrated in-memory SQLite database. The pool
// is capped at one connection, so every call yields an isolated database.
func OpenInMemory() (*gorm.DB, error) {
	return Open(&config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseDSN:    ":memory:?_pragma=foreign_keys(1)",
		DBLogLevel:     "silent",
	})
}
