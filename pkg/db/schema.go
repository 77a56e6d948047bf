package db

const (
	// SchemaV1 defines the SQL statements for version 1 of the database schema.
	// This schema pertains to the 'jubilanddb' component.
	//
	// Rows are keyed by position rather than id: collections keep insertion
	// order and do not enforce unique ids.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS jubiland_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS mood_entries (
    position INTEGER PRIMARY KEY,
    id UUID NOT NULL,
    date TEXT NOT NULL,
    rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
    note TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_mood_entries_id ON mood_entries(id);

CREATE TABLE IF NOT EXISTS celebrations (
    position INTEGER PRIMARY KEY,
    id UUID NOT NULL,
    title VARCHAR(256) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL,
    category VARCHAR(32) NOT NULL,
    media_urls TEXT NOT NULL DEFAULT '[]',
    is_starred BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_celebrations_id ON celebrations(id);
`
)
