package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const schemaQuery = `
	CREATE TABLE IF NOT EXISTS documents (
		doc_key    VARCHAR(191) NOT NULL PRIMARY KEY,
		body       JSON         NOT NULL,
		updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

const upsertDocumentQuery = `
	INSERT INTO documents (doc_key, body) VALUES (?, ?)
	ON DUPLICATE KEY UPDATE body = VALUES(body)`

// NewDB opens a MySQL connection pool and verifies it is reachable.
func NewDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql ping: %w", err)
	}

	return db, nil
}

// MySQLStore keeps documents as rows of a single documents table.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// EnsureSchema creates the documents table if it does not exist.
func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schemaQuery)
	return err
}

func (s *MySQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, "SELECT body FROM documents WHERE doc_key = ?", key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return body, nil
}

func (s *MySQLStore) Set(ctx context.Context, key string, body []byte) error {
	if _, err := s.db.ExecContext(ctx, upsertDocumentQuery, key, body); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Update locks the rows of keys with SELECT ... FOR UPDATE for the duration
// of the transaction.
func (s *MySQLStore) Update(ctx context.Context, keys []string, fn UpdateFunc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	docs := make(map[string][]byte, len(keys))
	for _, key := range keys {
		var body []byte
		err := tx.QueryRowContext(ctx, "SELECT body FROM documents WHERE doc_key = ? FOR UPDATE", key).Scan(&body)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			docs[key] = nil
		case err != nil:
			return fmt.Errorf("lock %s: %w", key, err)
		default:
			docs[key] = body
		}
	}

	writes, err := fn(docs)
	if err != nil {
		return err
	}

	for key, body := range writes {
		if _, err := tx.ExecContext(ctx, upsertDocumentQuery, key, body); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}

	return tx.Commit()
}

func (s *MySQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *MySQLStore) Close() error {
	return s.db.Close()
}
