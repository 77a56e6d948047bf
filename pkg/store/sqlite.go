package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/unowned-ai/jubiland/pkg/journal"
)

const (
	listMoodEntriesStatement = `
	SELECT id, date, rating, note
	FROM mood_entries
	ORDER BY position
	`

	deleteMoodEntriesStatement = `
	DELETE FROM mood_entries
	`

	insertMoodEntryStatement = `
	INSERT INTO mood_entries (position, id, date, rating, note)
	VALUES (?, ?, ?, ?, ?)
	`

	listCelebrationsStatement = `
	SELECT id, title, description, date, category, media_urls, is_starred
	FROM celebrations
	ORDER BY position
	`

	deleteCelebrationsStatement = `
	DELETE FROM celebrations
	`

	insertCelebrationStatement = `
	INSERT INTO celebrations (position, id, title, description, date, category, media_urls, is_starred)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
)

// SQLite stores each collection in a table ordered by position. The schema
// must already be in place (see db.UpgradeDB).
type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) LoadMoodEntries() ([]journal.MoodEntry, error) {
	rows, err := s.db.Query(listMoodEntriesStatement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []journal.MoodEntry
	for rows.Next() {
		var entry journal.MoodEntry
		var date string

		err := rows.Scan(
			&entry.ID,
			&date,
			&entry.Rating,
			&entry.Note,
		)
		if err != nil {
			return nil, err
		}

		if entry.Date, err = journal.ParseDate(date); err != nil {
			return nil, err
		}
		entry.Rating = journal.ClampRating(entry.Rating)

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *SQLite) SaveMoodEntries(entries []journal.MoodEntry) error {
	return s.replaceAll(deleteMoodEntriesStatement, insertMoodEntryStatement, len(entries), func(i int) ([]any, error) {
		e := entries[i]
		return []any{i, e.ID, journal.FormatDate(e.Date), e.Rating, e.Note}, nil
	})
}

func (s *SQLite) LoadCelebrations() ([]journal.Celebration, error) {
	rows, err := s.db.Query(listCelebrationsStatement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var celebrations []journal.Celebration
	for rows.Next() {
		var c journal.Celebration
		var date, category, media string

		err := rows.Scan(
			&c.ID,
			&c.Title,
			&c.Description,
			&date,
			&category,
			&media,
			&c.IsStarred,
		)
		if err != nil {
			return nil, err
		}

		if c.Date, err = journal.ParseDate(date); err != nil {
			return nil, err
		}
		if c.Category, err = journal.ParseCategory(category); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(media), &c.MediaURLs); err != nil {
			return nil, fmt.Errorf("invalid media_urls for celebration %s: %w", c.ID, err)
		}
		if len(c.MediaURLs) == 0 {
			c.MediaURLs = nil
		}

		celebrations = append(celebrations, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return celebrations, nil
}

func (s *SQLite) SaveCelebrations(celebrations []journal.Celebration) error {
	return s.replaceAll(deleteCelebrationsStatement, insertCelebrationStatement, len(celebrations), func(i int) ([]any, error) {
		c := celebrations[i]
		media := c.MediaURLs
		if media == nil {
			media = []string{}
		}
		mediaJSON, err := json.Marshal(media)
		if err != nil {
			return nil, err
		}
		return []any{i, c.ID, c.Title, c.Description, journal.FormatDate(c.Date), string(c.Category), string(mediaJSON), c.IsStarred}, nil
	})
}

// replaceAll clears a table and inserts n rows in one transaction, so a
// failed save leaves the previous contents untouched.
func (s *SQLite) replaceAll(deleteStmt, insertStmt string, n int, row func(i int) ([]any, error)) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteStmt); err != nil {
		return err
	}

	insert, err := tx.Prepare(insertStmt)
	if err != nil {
		return err
	}
	defer insert.Close()

	for i := 0; i < n; i++ {
		args, err := row(i)
		if err != nil {
			return err
		}
		if _, err := insert.Exec(args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Close checkpoints the WAL (if any) back into the main database and closes
// the connection.
func (s *SQLite) Close() error {
	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
		s.db.Close()
		return fmt.Errorf("WAL checkpoint failed during close: %w", err)
	}
	return s.db.Close()
}
