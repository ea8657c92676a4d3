package storage

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// timeLayout is the layout used for every timestamp column written by this package.
// Timestamps are stored as UTC TEXT so range filters can compare strings directly
// and the driver never converts them to time.Time on its own.
const timeLayout = "2006-01-02 15:04:05"

// New opens a SQLite database connection at the given path.
// It sets a busy timeout and connection pool settings.
func New(path string) (*sql.DB, error) {
	dsn := path
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	// Concurrent appends wait for the write lock instead of failing with SQLITE_BUSY
	dsn += sep + "_busy_timeout=5000"

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS persona_prompts (
			prompt_id INTEGER PRIMARY KEY AUTOINCREMENT,
			persona_code TEXT NOT NULL,
			prompt_type TEXT NOT NULL DEFAULT 'PERSONA',
			prompt TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_persona_prompts_code_type
			ON persona_prompts (persona_code, prompt_type, prompt_id);`,
		`CREATE TABLE IF NOT EXISTS conversations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			persona_code TEXT NOT NULL,
			user_query TEXT NOT NULL DEFAULT '',
			ai_response TEXT NOT NULL DEFAULT '',
			user_id TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_created
			ON conversations (created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_persona
			ON conversations (persona_code, created_at);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime parses a timestamp string written by this package.
func parseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		// Try alternative format (SQLite might use different format)
		return time.Parse(time.RFC3339, s)
	}
	return t, nil
}
