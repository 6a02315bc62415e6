package sqlitestore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) a SQLite database at the given path and enables WAL
// journal mode for read-heavy dashboard traffic.
func Open(path string) (*sql.DB, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// schema mirrors the spreadsheet tabs; one table per tab, dates kept as the
// opaque strings the ingestion pipeline writes.
const schema = `
CREATE TABLE IF NOT EXISTS patients (
    user_id         TEXT PRIMARY KEY,
    name            TEXT NOT NULL DEFAULT '',
    height          REAL NOT NULL DEFAULT 0,
    weight          REAL NOT NULL DEFAULT 0,
    age             INTEGER NOT NULL DEFAULT 0,
    calories_target REAL NOT NULL DEFAULT 0,
    protein_target  REAL NOT NULL DEFAULT 0,
    carbs_target    REAL NOT NULL DEFAULT 0,
    fat_target      REAL NOT NULL DEFAULT 0,
    weight_target   REAL NOT NULL DEFAULT 0,
    email           TEXT,
    password        TEXT,
    created_at      TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS meals (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    owner_id    TEXT NOT NULL,
    date        TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    calories    REAL NOT NULL DEFAULT 0,
    protein     REAL NOT NULL DEFAULT 0,
    carbs       REAL NOT NULL DEFAULT 0,
    fat         REAL NOT NULL DEFAULT 0,
    category_id TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS water (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    owner_id  TEXT NOT NULL,
    date      TEXT NOT NULL DEFAULT '',
    amount_ml REAL NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS alarms (
    unique_id        TEXT PRIMARY KEY,
    owner_id         TEXT NOT NULL,
    date             TEXT NOT NULL DEFAULT '',
    text             TEXT NOT NULL DEFAULT '',
    time_of_day      TEXT NOT NULL DEFAULT '',
    interval_minutes INTEGER NOT NULL DEFAULT 0,
    active           INTEGER NOT NULL DEFAULT 1,
    last_sent        TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS categories (
    category_id TEXT PRIMARY KEY,
    name        TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT ''
);
`

// InitSchema creates the tables when they do not exist yet.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
