// Package storage persists sheet snapshots in SQLite so the dashboard can
// serve data between refreshes without touching the upstream spreadsheet.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dstmrk/kanso/internal/core"
)

// ErrSnapshotNotFound is returned when no snapshot exists for the
// requested user and sheet kind.
var ErrSnapshotNotFound = errors.New("sheet snapshot not found")

// Snapshot is one persisted sheet together with its fetch metadata.
type Snapshot struct {
	UserKey     string
	Table       *core.RawTable
	ContentHash string
	FetchedAt   time.Time
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveTable upserts the snapshot for (userKey, table.Kind) and returns its
// content hash.
func (r *SQLiteRepository) SaveTable(ctx context.Context, userKey string, table *core.RawTable) (string, error) {
	if table == nil {
		return "", errors.New("cannot save nil table")
	}

	payload, err := json.Marshal(table)
	if err != nil {
		return "", fmt.Errorf("marshal table: %w", err)
	}
	hash := table.Hash()

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sheet_snapshots (user_key, sheet_kind, payload, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_key, sheet_kind) DO UPDATE SET
			payload      = excluded.payload,
			content_hash = excluded.content_hash,
			fetched_at   = excluded.fetched_at`,
		userKey, string(table.Kind), string(payload), hash, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	return hash, nil
}

// LoadTable returns one user's snapshot for a sheet kind.
func (r *SQLiteRepository) LoadTable(ctx context.Context, userKey string, kind core.SheetKind) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT payload, content_hash, fetched_at
		FROM sheet_snapshots
		WHERE user_key = ? AND sheet_kind = ?`,
		userKey, string(kind))

	var payload, hash string
	var fetchedAt time.Time
	if err := row.Scan(&payload, &hash, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var table core.RawTable
	if err := json.Unmarshal([]byte(payload), &table); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot payload: %w", err)
	}

	return &Snapshot{
		UserKey:     userKey,
		Table:       &table,
		ContentHash: hash,
		FetchedAt:   fetchedAt,
	}, nil
}

// LoadTables returns every stored sheet of one user, keyed by kind.
func (r *SQLiteRepository) LoadTables(ctx context.Context, userKey string) (map[core.SheetKind]*core.RawTable, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sheet_kind, payload
		FROM sheet_snapshots
		WHERE user_key = ?`,
		userKey)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	defer rows.Close()

	tables := make(map[core.SheetKind]*core.RawTable)
	for rows.Next() {
		var kind, payload string
		if err := rows.Scan(&kind, &payload); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		var table core.RawTable
		if err := json.Unmarshal([]byte(payload), &table); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot payload: %w", err)
		}
		tables[core.SheetKind(kind)] = &table
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return tables, nil
}

// CombinedHash concatenates the stored content hashes of one user in sheet
// kind order. It changes whenever any sheet's content changes, which makes
// it a cheap cache-key component.
func (r *SQLiteRepository) CombinedHash(ctx context.Context, userKey string) (string, error) {
	hashes := make(map[core.SheetKind]string)
	rows, err := r.db.QueryContext(ctx, `
		SELECT sheet_kind, content_hash
		FROM sheet_snapshots
		WHERE user_key = ?`,
		userKey)
	if err != nil {
		return "", fmt.Errorf("load content hashes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, hash string
		if err := rows.Scan(&kind, &hash); err != nil {
			return "", fmt.Errorf("scan content hash: %w", err)
		}
		hashes[core.SheetKind(kind)] = hash
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate content hashes: %w", err)
	}

	var combined string
	for _, kind := range core.SheetKinds() {
		combined += hashes[kind] + ";"
	}
	return combined, nil
}
