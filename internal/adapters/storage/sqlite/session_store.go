package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

// SessionStore implementa sessionstore.Store sobre un archivo SQLite local.
// Pensado para desarrollo o despliegues de un solo nodo sin Redis.
type SessionStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// Open abre (o crea) la base en path. ttl=0 significa sin expiración.
func Open(ctx context.Context, path string, ttl time.Duration) (*SessionStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// un solo writer; evita SQLITE_BUSY entre goroutines
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS session_kv (
			namespace  TEXT NOT NULL,
			key        TEXT NOT NULL,
			value      BLOB NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (namespace, key)
		)`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SessionStore{db: db, ttl: ttl, now: time.Now}, nil
}

func (s *SessionStore) Put(ctx context.Context, namespace, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_kv (namespace, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, namespace, key, value, s.now().UnixNano())
	return err
}

func (s *SessionStore) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	var (
		value     []byte
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, updated_at FROM session_kv WHERE namespace = ? AND key = ?`,
		namespace, key,
	).Scan(&value, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if s.ttl > 0 && s.now().Sub(time.Unix(0, updatedAt)) > s.ttl {
		// vencida: se borra en la lectura
		_ = s.Delete(ctx, namespace, key)
		return nil, false, nil
	}
	return value, true, nil
}

func (s *SessionStore) Delete(ctx context.Context, namespace, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session_kv WHERE namespace = ? AND key = ?`, namespace, key)
	return err
}

func (s *SessionStore) Close() error {
	return s.db.Close()
}
