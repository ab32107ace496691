package storage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

const tempPrefix = ".tmp-"

// FileBackend хранит блобы файлами в каталоге. Запись атомарна:
// временный файл рядом -> fsync -> rename.
type FileBackend struct {
	dir string
}

// NewFileBackend создаёт каталог при необходимости и убирает временные
// файлы, оставшиеся от прерванной записи.
func NewFileBackend(dir string) (*FileBackend, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.InvalidArgument("save dir is required")
	}
	if err := os.MkdirAll(filepath.Join(dir, BackupDir), 0o755); err != nil {
		return nil, ioFailure(err, "create save dir")
	}
	b := &FileBackend{dir: filepath.Clean(dir)}
	if _, err := b.CleanupTemp(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *FileBackend) Dir() string { return b.dir }

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, filepath.FromSlash(key))
}

func (b *FileBackend) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFoundf("%s not found", key)
		}
		return nil, ioFailure(err, "read "+key)
	}
	return data, nil
}

func (b *FileBackend) Write(ctx context.Context, key string, data []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst := b.path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return ioFailure(err, "create dir for "+key)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), tempPrefix+filepath.Base(dst)+"-*")
	if err != nil {
		return ioFailure(err, "create temp for "+key)
	}
	// Временный файл удаляется на любом пути ошибки
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return ioFailure(err, "write "+key)
	}
	if err = tmp.Sync(); err != nil {
		return ioFailure(err, "fsync "+key)
	}
	if err = tmp.Close(); err != nil {
		return ioFailure(err, "close "+key)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return ioFailure(err, "rename "+key)
	}
	return nil
}

func (b *FileBackend) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(b.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ioFailure(err, "delete "+key)
	}
	return nil
}

func (b *FileBackend) List(ctx context.Context, prefix string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []Entry
	err := filepath.WalkDir(b.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), tempPrefix) {
			return nil
		}
		rel, err := filepath.Rel(b.dir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		out = append(out, Entry{Key: key, Size: info.Size(), Modified: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, ioFailure(err, "list "+prefix)
	}
	return out, nil
}

// CleanupTemp удаляет брошенные временные файлы. Возвращает их число.
func (b *FileBackend) CleanupTemp() (int, error) {
	removed := 0
	err := filepath.WalkDir(b.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasPrefix(d.Name(), tempPrefix) {
			if err := os.Remove(path); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return removed, ioFailure(err, "cleanup temp files")
	}
	return removed, nil
}

func (b *FileBackend) Close() error { return nil }

func ioFailure(err error, msg string) error {
	return errors.WrapWithCode(err, errors.CodeSaveIOFailure, msg)
}
