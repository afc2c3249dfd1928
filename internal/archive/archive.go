// Package archive keeps a copy of every processed upload outside the process.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Archiver stores a processed file and returns where it went.
type Archiver interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// Nop discards files.
type Nop struct{}

// Save implements Archiver.
func (Nop) Save(context.Context, string, []byte) (string, error) { return "", nil }

// LocalDir writes files into a directory on disk.
type LocalDir struct {
	dir string
}

// NewLocalDir creates dir if needed and returns an archiver writing into it.
func NewLocalDir(dir string) (*LocalDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	return &LocalDir{dir: dir}, nil
}

// Save writes data to a uniquely named file and returns its path.
func (l *LocalDir) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(l.dir, objectName(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// objectName makes name unique and strips any directory part.
// "processed_views.csv" becomes "processed_<uuid>_views.csv".
func objectName(name string) string {
	base := filepath.Base(name)
	prefix, rest, ok := strings.Cut(base, "_")
	if !ok {
		return uuid.NewString() + "_" + base
	}
	return prefix + "_" + uuid.NewString() + "_" + rest
}
