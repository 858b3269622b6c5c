package database

import (
	"fmt"

	"study-game/internal/config"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// NewSQLiteConnection opens the entitlement database and verifies the
// connection with a ping.
func NewSQLiteConnection(dbCfg config.DBConfig) (*sqlx.DB, error) {
	if dbCfg.Path == "" {
		return nil, fmt.Errorf("database configuration is missing or path is empty")
	}

	db, err := sqlx.Connect("sqlite", dbCfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database at %s: %w", dbCfg.Path, err)
	}

	// modernc's driver serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	return db, nil
}
