package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures the schema exists. The handle is constructed
// once at startup and passed by injection; nothing caches it globally.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:appraisal.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/appraisal?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS users (
  username TEXT PRIMARY KEY,          -- faculty email
  password_hash TEXT NOT NULL,        -- bcrypt
  role TEXT NOT NULL,                 -- faculty|reviewer|admin
  name TEXT NOT NULL DEFAULT '',
  department TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS submissions (
  id TEXT PRIMARY KEY,
  faculty_email TEXT NOT NULL,
  academic_year INTEGER NOT NULL,
  steps_json TEXT NOT NULL,
  completed_steps_json TEXT NOT NULL,
  status TEXT NOT NULL,
  scorecard_json TEXT NOT NULL DEFAULT '',
  last_updated INTEGER NOT NULL,
  submitted_at INTEGER,
  UNIQUE (faculty_email, academic_year)
);

CREATE TABLE IF NOT EXISTS event_log (
  "offset" INTEGER PRIMARY KEY AUTOINCREMENT,
  typ TEXT NOT NULL,                  -- e.g., StepSaved, AppraisalSubmitted
  key TEXT NOT NULL,                  -- natural key: email/year
  data TEXT NOT NULL,                 -- JSON payload
  created_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS users (
  username TEXT PRIMARY KEY,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  department TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS submissions (
  id TEXT PRIMARY KEY,
  faculty_email TEXT NOT NULL,
  academic_year INTEGER NOT NULL,
  steps_json TEXT NOT NULL,
  completed_steps_json TEXT NOT NULL,
  status TEXT NOT NULL,
  scorecard_json TEXT NOT NULL DEFAULT '',
  last_updated BIGINT NOT NULL,
  submitted_at BIGINT,
  UNIQUE (faculty_email, academic_year)
);

CREATE TABLE IF NOT EXISTS event_log (
  "offset" BIGSERIAL PRIMARY KEY,
  typ TEXT NOT NULL,
  key TEXT NOT NULL,
  data TEXT NOT NULL,
  created_at BIGINT NOT NULL
);
`
