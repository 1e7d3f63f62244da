package clientstate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"fireworks-storefront/internal/domain"
)

var safeName = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

type fileRepo struct {
	dir string
}

// NewFile stores each record as <dir>/<scope>/<key>.json.
func NewFile(dir, scope string) (Repository, error) {
	if dir == "" {
		return nil, errors.New("state dir required")
	}
	full := filepath.Join(dir, safeName.ReplaceAllString(scopeOrDefault(scope), "_"))
	if err := os.MkdirAll(full, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &fileRepo{dir: full}, nil
}

func (r *fileRepo) path(key string) string {
	return filepath.Join(r.dir, safeName.ReplaceAllString(key, "_")+".json")
}

func (r *fileRepo) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(r.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Save writes through a temp file and rename so a crash never leaves a torn record.
func (r *fileRepo) Save(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(r.dir, ".state-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path(key))
}

func (r *fileRepo) Delete(_ context.Context, key string) error {
	if err := os.Remove(r.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func scopeOrDefault(scope string) string {
	if scope == "" {
		return "default"
	}
	return scope
}
