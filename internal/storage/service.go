package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Service is the sqlite-backed session store. One row per username per table.
type Service struct {
	db *sql.DB
}

var tables = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		username TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transcripts (
		username TEXT PRIMARY KEY,
		body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS question_counters (
		username TEXT PRIMARY KEY,
		qno INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS score_history (
		username TEXT PRIMARY KEY,
		scores TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS profile_images (
		username TEXT PRIMARY KEY,
		image TEXT NOT NULL
	)`,
}

// Open connects to the sqlite database at path and creates the schema.
func Open(path string) (*Service, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	s := &Service{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Service) createSchema() error {
	for _, tableSQL := range tables {
		if _, err := s.db.Exec(tableSQL); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Service) Close() error {
	return s.db.Close()
}

// CreateAccount inserts a new account. Returns ErrDuplicate if the username
// is already taken; the existing account is left untouched.
func (s *Service) CreateAccount(ctx context.Context, username, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (username, password_hash, created_at)
		 SELECT ?, ?, ? WHERE NOT EXISTS (SELECT 1 FROM accounts WHERE username = ?)`,
		username, passwordHash, time.Now().UTC(), username)
	if err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking insert result: %w", err)
	}
	if n == 0 {
		return ErrDuplicate
	}

	return nil
}

// GetAccount loads an account by username.
func (s *Service) GetAccount(ctx context.Context, username string) (*Account, error) {
	var acc Account
	err := s.db.QueryRowContext(ctx,
		`SELECT username, password_hash, created_at FROM accounts WHERE username = ?`,
		username).Scan(&acc.Username, &acc.PasswordHash, &acc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting account: %w", err)
	}

	return &acc, nil
}

// GetTranscript loads the current transcript for username.
func (s *Service) GetTranscript(ctx context.Context, username string) (*Transcript, error) {
	var tr Transcript
	err := s.db.QueryRowContext(ctx,
		`SELECT username, body FROM transcripts WHERE username = ?`,
		username).Scan(&tr.Username, &tr.Body)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting transcript: %w", err)
	}

	return &tr, nil
}

// SaveTranscript upserts the transcript body for username.
func (s *Service) SaveTranscript(ctx context.Context, username, body string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transcripts (username, body) VALUES (?, ?)
		 ON CONFLICT(username) DO UPDATE SET body = excluded.body`,
		username, body)
	if err != nil {
		return fmt.Errorf("saving transcript: %w", err)
	}
	return nil
}

// DeleteTranscript removes the transcript for username. Absence is not an error.
func (s *Service) DeleteTranscript(ctx context.Context, username string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM transcripts WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("deleting transcript: %w", err)
	}
	return nil
}

// GetCounter loads the question counter for username.
func (s *Service) GetCounter(ctx context.Context, username string) (*QuestionCounter, error) {
	var qc QuestionCounter
	err := s.db.QueryRowContext(ctx,
		`SELECT username, qno FROM question_counters WHERE username = ?`,
		username).Scan(&qc.Username, &qc.Qno)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting counter: %w", err)
	}

	return &qc, nil
}

// SaveCounter upserts the question counter for username.
func (s *Service) SaveCounter(ctx context.Context, username string, qno int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO question_counters (username, qno) VALUES (?, ?)
		 ON CONFLICT(username) DO UPDATE SET qno = excluded.qno`,
		username, qno)
	if err != nil {
		return fmt.Errorf("saving counter: %w", err)
	}
	return nil
}

// DeleteCounter removes the counter for username. Absence is not an error.
func (s *Service) DeleteCounter(ctx context.Context, username string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM question_counters WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("deleting counter: %w", err)
	}
	return nil
}

// GetScoreHistory loads the score history for username.
func (s *Service) GetScoreHistory(ctx context.Context, username string) (*ScoreHistory, error) {
	var sh ScoreHistory
	err := s.db.QueryRowContext(ctx,
		`SELECT username, scores FROM score_history WHERE username = ?`,
		username).Scan(&sh.Username, &sh.Scores)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting score history: %w", err)
	}

	return &sh, nil
}

// SaveScoreHistory upserts the serialized score sequence for username.
func (s *Service) SaveScoreHistory(ctx context.Context, username, scores string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO score_history (username, scores) VALUES (?, ?)
		 ON CONFLICT(username) DO UPDATE SET scores = excluded.scores`,
		username, scores)
	if err != nil {
		return fmt.Errorf("saving score history: %w", err)
	}
	return nil
}

// GetImage loads the profile image for username.
func (s *Service) GetImage(ctx context.Context, username string) (*ProfileImage, error) {
	var img ProfileImage
	err := s.db.QueryRowContext(ctx,
		`SELECT username, image FROM profile_images WHERE username = ?`,
		username).Scan(&img.Username, &img.Image)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting image: %w", err)
	}

	return &img, nil
}

// SaveImage upserts the profile image for username.
func (s *Service) SaveImage(ctx context.Context, username, image string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profile_images (username, image) VALUES (?, ?)
		 ON CONFLICT(username) DO UPDATE SET image = excluded.image`,
		username, image)
	if err != nil {
		return fmt.Errorf("saving image: %w", err)
	}
	return nil
}
