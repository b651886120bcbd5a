package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/papercomputeco/chatmodel/pkg/llm"
)

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	hash       TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS responses_created_at ON responses (created_at);
`

// SQLiteStorer is a Storer backed by a SQLite database.
type SQLiteStorer struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStorer opens (creating if needed) the database at path.
// Use ":memory:" for an in-memory database.
func NewSQLiteStorer(path string) (*SQLiteStorer, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite database: %w", err)
	}

	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create schema: %w", err)
	}

	return &SQLiteStorer{db: db, now: time.Now}, nil
}

func (s *SQLiteStorer) Put(ctx context.Context, resp *llm.ChatResponse) (string, bool, error) {
	hash, body, err := snapshot(resp)
	if err != nil {
		return "", false, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO responses (hash, body, created_at) VALUES (?, ?, ?)`,
		hash, body, s.now().UTC().UnixNano(),
	)
	if err != nil {
		return "", false, fmt.Errorf("could not insert response %s: %w", hash, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return "", false, fmt.Errorf("could not read affected rows: %w", err)
	}

	return hash, n > 0, nil
}

func (s *SQLiteStorer) Get(ctx context.Context, hash string) (*Entry, error) {
	var (
		body      []byte
		createdAt int64
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT body, created_at FROM responses WHERE hash = ?`, hash,
	).Scan(&body, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound{Hash: hash}
	}
	if err != nil {
		return nil, fmt.Errorf("could not query response %s: %w", hash, err)
	}

	return decodeEntry(hash, body, time.Unix(0, createdAt).UTC())
}

func (s *SQLiteStorer) Has(ctx context.Context, hash string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM responses WHERE hash = ?)`, hash,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("could not query response %s: %w", hash, err)
	}

	return exists, nil
}

func (s *SQLiteStorer) List(ctx context.Context) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT hash, body, created_at FROM responses ORDER BY created_at, hash`)
	if err != nil {
		return nil, fmt.Errorf("could not list responses: %w", err)
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		var (
			hash      string
			body      []byte
			createdAt int64
		)
		if err := rows.Scan(&hash, &body, &createdAt); err != nil {
			return nil, fmt.Errorf("could not scan response: %w", err)
		}

		e, err := decodeEntry(hash, body, time.Unix(0, createdAt).UTC())
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *SQLiteStorer) Close() error {
	return s.db.Close()
}
