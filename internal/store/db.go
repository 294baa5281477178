package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2"
)

const (
	inMemory = ":memory:"
	dbFile   = "agent.duckdb"
)

// NewDB opens a DuckDB database at the given path.
// Use ":memory:" for an in-memory database (useful for testing).
func NewDB(path string) (*sql.DB, error) {
	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	// DuckDB is single-writer.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	// keep extensions next to the database instead of ~/.duckdb
	if path != inMemory {
		extDir := filepath.Dir(path)
		if _, err := conn.Exec(fmt.Sprintf("SET extension_directory = '%s'", extDir)); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("setting extension directory: %w", err)
		}
	}

	return conn, nil
}

// DBPath returns the database path for a data folder. An empty folder means in-memory.
func DBPath(dataFolder string) (string, error) {
	if dataFolder == "" {
		return inMemory, nil
	}
	if err := os.MkdirAll(dataFolder, 0o750); err != nil {
		return "", fmt.Errorf("creating data folder: %w", err)
	}
	return filepath.Join(dataFolder, dbFile), nil
}
