package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
// El ping inicial se reintenta con backoff fibonacci.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	b := retry.WithMaxRetries(4, retry.NewFibonacci(500*time.Millisecond))
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := db.PingContext(pctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS pets (
	id                 TEXT PRIMARY KEY,
	owner_user_id      TEXT NOT NULL,
	name               TEXT NOT NULL,
	species            TEXT NOT NULL,
	breed              TEXT NOT NULL DEFAULT '',
	sex                TEXT NOT NULL DEFAULT 'unknown',
	age                TEXT NOT NULL DEFAULT '',
	weight             TEXT NOT NULL DEFAULT '',
	notes              TEXT NOT NULL DEFAULT '',
	image_url          TEXT NOT NULL DEFAULT '',
	medical_report_url TEXT NOT NULL DEFAULT '',
	created_at         TIMESTAMPTZ NOT NULL,
	updated_at         TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS pets_owner_idx ON pets (owner_user_id, created_at);
CREATE INDEX IF NOT EXISTS pets_owner_species_idx ON pets (owner_user_id, species);

CREATE TABLE IF NOT EXISTS pet_scans (
	id            TEXT PRIMARY KEY,
	pet_id        TEXT NOT NULL REFERENCES pets (id),
	owner_user_id TEXT NOT NULL,
	kind          TEXT NOT NULL,
	media_kind    TEXT NOT NULL,
	endpoint      TEXT NOT NULL,
	label         TEXT NOT NULL,
	confidence    DOUBLE PRECISION NOT NULL,
	advice        TEXT NOT NULL DEFAULT '',
	escalated     BOOLEAN NOT NULL DEFAULT FALSE,
	scanned_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS pet_scans_pet_idx ON pet_scans (pet_id, scanned_at DESC);
`

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
