package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS save_blobs (
	key         TEXT PRIMARY KEY,
	data        BLOB NOT NULL,
	modified_at INTEGER NOT NULL
)`

// SQLiteBackend хранит блобы в одной таблице. Каждая запись — одна транзакция.
type SQLiteBackend struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// OpenSQLite открывает базу (WAL) и создаёт схему.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("sqlite path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, ioFailure(err, "create sqlite dir")
		}
	}
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, ioFailure(err, "open sqlite db")
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, ioFailure(err, "ping sqlite db")
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, ioFailure(err, "create schema")
	}
	return &SQLiteBackend{sqlDB: sqlDB}, nil
}

func (b *SQLiteBackend) Read(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := b.sqlDB.QueryRowContext(ctx, `SELECT data FROM save_blobs WHERE key = ?`, key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("%s not found", key)
		}
		return nil, ioFailure(err, "select "+key)
	}
	return data, nil
}

func (b *SQLiteBackend) Write(ctx context.Context, key string, data []byte) error {
	_, err := b.sqlDB.ExecContext(ctx,
		`INSERT INTO save_blobs (key, data, modified_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, modified_at = excluded.modified_at`,
		key, data, toMillis(time.Now()),
	)
	if err != nil {
		return ioFailure(err, "upsert "+key)
	}
	return nil
}

func (b *SQLiteBackend) Delete(ctx context.Context, key string) error {
	if _, err := b.sqlDB.ExecContext(ctx, `DELETE FROM save_blobs WHERE key = ?`, key); err != nil {
		return ioFailure(err, "delete "+key)
	}
	return nil
}

func (b *SQLiteBackend) List(ctx context.Context, prefix string) ([]Entry, error) {
	rows, err := b.sqlDB.QueryContext(ctx,
		`SELECT key, length(data), modified_at FROM save_blobs WHERE substr(key, 1, ?) = ?`,
		len(prefix), prefix,
	)
	if err != nil {
		return nil, ioFailure(err, "list "+prefix)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e        Entry
			modified int64
		)
		if err := rows.Scan(&e.Key, &e.Size, &modified); err != nil {
			return nil, ioFailure(err, "scan entry")
		}
		e.Modified = fromMillis(modified)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, ioFailure(err, "list "+prefix)
	}
	return out, nil
}

func (b *SQLiteBackend) Close() error {
	if b == nil || b.sqlDB == nil {
		return nil
	}
	return b.sqlDB.Close()
}
