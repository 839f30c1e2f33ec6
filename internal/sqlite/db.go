package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection serializes writers and keeps in-memory databases
	// coherent across the pool.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
func (db *DB) RunMigrations() error {
	migration := `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    fcm_token TEXT,
    created_at TIMESTAMP NOT NULL
);

-- Restaurant cache, keyed to the external discovery source
CREATE TABLE IF NOT EXISTS restaurants (
    id TEXT PRIMARY KEY,
    place_id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    address TEXT,
    latitude REAL NOT NULL,
    longitude REAL NOT NULL,
    price_level INTEGER NOT NULL DEFAULT 0,
    rating REAL NOT NULL DEFAULT 0,
    image_url TEXT,
    created_at TIMESTAMP NOT NULL
);

-- Sessions
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    join_code TEXT NOT NULL,
    creator_id TEXT NOT NULL REFERENCES users(id),
    status TEXT NOT NULL CHECK(status IN ('CREATED', 'MATCHING', 'COMPLETED')),
    latitude REAL NOT NULL,
    longitude REAL NOT NULL,
    radius REAL NOT NULL,
    final_restaurant_id TEXT REFERENCES restaurants(id),
    selected_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL,
    expires_at TIMESTAMP NOT NULL
);
-- Join codes are unique among sessions that can still be joined.
CREATE UNIQUE INDEX IF NOT EXISTS idx_active_join_code
    ON sessions(join_code) WHERE status != 'COMPLETED';
CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status);
CREATE INDEX IF NOT EXISTS idx_sessions_creator ON sessions(creator_id);

CREATE TABLE IF NOT EXISTS session_participants (
    session_id TEXT NOT NULL REFERENCES sessions(id),
    user_id TEXT NOT NULL REFERENCES users(id),
    done_swiping INTEGER NOT NULL DEFAULT 0,
    joined_at TIMESTAMP NOT NULL,
    PRIMARY KEY (session_id, user_id)
);

CREATE TABLE IF NOT EXISTS session_invitations (
    session_id TEXT NOT NULL REFERENCES sessions(id),
    user_id TEXT NOT NULL REFERENCES users(id),
    invited_at TIMESTAMP NOT NULL,
    PRIMARY KEY (session_id, user_id)
);

-- Candidate list with per-restaurant tallies; position preserves candidate
-- order for deterministic tie-breaking.
CREATE TABLE IF NOT EXISTS session_restaurants (
    session_id TEXT NOT NULL REFERENCES sessions(id),
    restaurant_id TEXT NOT NULL REFERENCES restaurants(id),
    position INTEGER NOT NULL,
    total_votes INTEGER NOT NULL DEFAULT 0,
    positive_votes INTEGER NOT NULL DEFAULT 0,
    score REAL NOT NULL DEFAULT 0,
    PRIMARY KEY (session_id, restaurant_id)
);

-- The primary key enforces at-most-once per (session, user, restaurant).
CREATE TABLE IF NOT EXISTS session_votes (
    session_id TEXT NOT NULL REFERENCES sessions(id),
    user_id TEXT NOT NULL REFERENCES users(id),
    restaurant_id TEXT NOT NULL REFERENCES restaurants(id),
    liked INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (session_id, user_id, restaurant_id)
);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
