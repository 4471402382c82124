// Package sqlitestore is the record store: inventory items in a single
// SQLite table, plus CSV export and import.
//
// Every operation checks out one connection for its unit of work and
// returns it before the call ends, whatever the outcome. Errors come back
// as values; nothing here panics or exits.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/idilsaglam/inventory/internal/model"
)

// SchemaVersion is written to PRAGMA user_version on first open.
const SchemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS inventory (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT    NOT NULL,
	category TEXT,
	quantity INTEGER NOT NULL DEFAULT 0,
	price    REAL    NOT NULL DEFAULT 0.0
);
CREATE INDEX IF NOT EXISTS idx_inventory_name ON inventory(name);
`

var (
	// ErrNotFound means no item has the requested id.
	ErrNotFound = errors.New("item not found")
	// ErrEmptySource means an import source had no header line.
	ErrEmptySource = errors.New("import source is empty")
)

// Store is the record store. It is meant for one process; callers do not
// share a Store across goroutines.
type Store struct {
	db   *sql.DB
	path string
	log  *zap.Logger
}

// Option tunes a Store at Open time.
type Option func(*Store)

// WithLogger routes store diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Open opens the database file at path, creating it and the table when
// missing. ":memory:" gives a private in-memory database.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{path: path, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}

	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite has one writer; a single pooled connection also keeps
	// ":memory:" databases alive between calls.
	db.SetMaxOpenConns(1)
	s.db = db

	if err := s.initialize(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	s.log.Debug("store opened", zap.String("path", path))
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path is the database location the store was opened with.
func (s *Store) Path() string { return s.path }

func (s *Store) initialize(ctx context.Context) error {
	return s.withConn(ctx, "initialize", func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
		var version int
		if err := conn.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}
		switch {
		case version == 0:
			if _, err := conn.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
				return fmt.Errorf("write schema version: %w", err)
			}
		case version > SchemaVersion:
			return fmt.Errorf("schema version %d is newer than supported version %d", version, SchemaVersion)
		}
		return nil
	})
}

// withConn runs fn on a dedicated connection and hands the connection
// back to the pool on every exit path, panics included.
func (s *Store) withConn(ctx context.Context, op string, fn func(*sql.Conn) error) (err error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return s.fail(op, fmt.Errorf("acquire connection: %w", err))
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = s.fail(op, fmt.Errorf("release connection: %w", cerr))
		}
	}()

	if err := fn(conn); err != nil {
		return s.fail(op, err)
	}
	return nil
}

// withTx is withConn plus a transaction: committed when fn returns nil,
// rolled back otherwise.
func (s *Store) withTx(ctx context.Context, op string, fn func(*sql.Tx) error) error {
	return s.withConn(ctx, op, func(conn *sql.Conn) (err error) {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		defer func() {
			if err == nil {
				return
			}
			if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
				s.log.Warn("rollback failed", zap.String("op", op), zap.Error(rerr))
			}
		}()

		if err = fn(tx); err != nil {
			return err
		}
		if err = tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
}

// fail logs err under op and returns it wrapped. Outcomes the caller
// reports to the user anyway (unknown id, bad input, unreadable file) are
// logged at debug level; only storage faults are errors.
func (s *Store) fail(op string, err error) error {
	if callerError(err) {
		s.log.Debug("store operation rejected", zap.String("op", op), zap.Error(err))
	} else {
		s.log.Error("store operation failed", zap.String("op", op), zap.Error(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func callerError(err error) bool {
	for _, target := range []error{
		ErrNotFound,
		ErrEmptySource,
		model.ErrEmptyName,
		model.ErrNegativeQuantity,
		model.ErrNegativePrice,
		model.ErrInvalidQuantity,
		model.ErrInvalidPrice,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	var pathErr *fs.PathError
	var parseErr *csv.ParseError
	return errors.As(err, &pathErr) || errors.As(err, &parseErr)
}
