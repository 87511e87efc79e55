package infra

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const sqliteDriverName = "sqlite3"

// AccessMode controls whether store file may be created and written
type AccessMode int

const (
	// ReadWriteCreate opens file for writing and creates it if absent
	ReadWriteCreate AccessMode = iota
	// ReadOnly opens existing file without write access
	ReadOnly
)

var pathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// SQLiteDSN builds URI for the store file, foreign keys are enforced on every connection
func SQLiteDSN(path string, mode AccessMode) string {
	params := "_pragma=foreign_keys(1)"
	switch mode {
	case ReadOnly:
		params += "&mode=ro"
	default:
		params += "&mode=rwc"
	}
	return fmt.Sprintf("file:%s?%s", pathEscaper.Replace(path), params)
}

// OpenSQLite prepares handle to the store file without touching it, the file is opened on first query.
// The store is used by one process at a time, so one connection is enough
func OpenSQLite(path string, mode AccessMode) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, SQLiteDSN(path, mode))
	if err != nil {
		return nil, fmt.Errorf("failed to open database file %s - %w", path, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// SQLite opens the store file and makes sure it is accessible
func SQLite(ctx context.Context, path string, mode AccessMode) (*sql.DB, error) {
	db, err := OpenSQLite(path, mode)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to access database file %s - %w", path, err)
	}
	return db, nil
}
