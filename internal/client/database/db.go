// Package database opens the client's storage backends and runs their
// schema migrations.
//
// The local SQLite file always exists: it carries the secure tier and the
// keyring metadata. The general tier is chosen by configuration and can be
// the same SQLite file, a PostgreSQL database or an S3 bucket.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/vigilkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/vigilkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/vigilkeeper/internal/client/repositories/pgkv"
	"github.com/dmitrijs2005/vigilkeeper/internal/client/repositories/s3kv"
	"github.com/dmitrijs2005/vigilkeeper/internal/client/repositories/securekv"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"

	// LocalFileName is the SQLite file created inside the data directory.
	LocalFileName = "vigil.db"
)

var ErrUnknownBackend = errors.New("unknown general backend")

// Options selects and configures the general tier backend.
type Options struct {
	DataDir     string
	Backend     string
	DatabaseDSN string
	S3          s3kv.Options
	S3Bucket    string
	S3Prefix    string
}

// Stores is the set of opened backends.
type Stores struct {
	// Local is the on-device SQLite database.
	Local *sql.DB
	// LocalKV is the plaintext table of Local; the keyring keeps its
	// metadata here regardless of the configured general backend.
	LocalKV kv.Repository
	General kv.Repository
	Secure  *securekv.SQLiteRepository

	remote *sql.DB
}

// Close closes the databases opened by Open.
func (s *Stores) Close() error {
	var errs []error
	if s.remote != nil {
		errs = append(errs, s.remote.Close())
	}
	if s.Local != nil {
		errs = append(errs, s.Local.Close())
	}
	return errors.Join(errs...)
}

// RunMigrations applies every pending migration found in fsys.
func RunMigrations(ctx context.Context, db *sql.DB, dialect goose.Dialect, fsys fs.FS) error {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// OpenSQLite opens (creating if needed) the SQLite database at dsn and
// migrates it.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// modernc sqlite serialises writers; one connection avoids SQLITE_BUSY
	// and keeps ":memory:" databases consistent.
	db.SetMaxOpenConns(1)

	fsys, err := fs.Sub(migrations.SQLite, "sqlite")
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := RunMigrations(ctx, db, goose.DialectSQLite3, fsys); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenPostgres connects through pgx and migrates the kv schema.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	fsys, err := fs.Sub(migrations.Postgres, "postgres")
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := RunMigrations(ctx, db, goose.DialectPostgres, fsys); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// newS3Client is a test seam.
var newS3Client = func(ctx context.Context, o s3kv.Options) (s3kv.ObjectAPI, error) {
	return s3kv.NewClient(ctx, o)
}

// Open opens the local database in o.DataDir and the configured general
// backend.
func Open(ctx context.Context, o Options) (*Stores, error) {
	local, err := OpenSQLite(ctx, filepath.Join(o.DataDir, LocalFileName))
	if err != nil {
		return nil, fmt.Errorf("local database: %w", err)
	}

	s := &Stores{
		Local:   local,
		LocalKV: kv.NewSQLiteRepository(local),
		Secure:  securekv.NewSQLiteRepository(local),
	}

	switch o.Backend {
	case "", BackendSQLite:
		s.General = s.LocalKV

	case BackendPostgres:
		remote, err := OpenPostgres(ctx, o.DatabaseDSN)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.remote = remote
		s.General = pgkv.NewPostgresRepository(remote)

	case BackendS3:
		api, err := newS3Client(ctx, o.S3)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.General = s3kv.NewRepository(api, o.S3Bucket, o.S3Prefix)

	default:
		_ = s.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, o.Backend)
	}

	return s, nil
}
