package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local keeps product images on disk under BaseDir and serves them
// from the static uploads route.
type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: urlPrefix}
}

func (l *Local) Put(_ context.Context, r io.Reader, in PutInput) (PutResult, error) {
	if err := os.MkdirAll(l.BaseDir, 0o755); err != nil {
		return PutResult{}, err
	}

	key := uuid.NewString() + safeExt(in.Filename)
	dst := filepath.Join(l.BaseDir, key)

	f, err := os.Create(dst)
	if err != nil {
		return PutResult{}, err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst) // no partial files
		return PutResult{}, err
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return PutResult{}, err
	}

	return PutResult{Key: key, URL: strings.TrimRight(l.URLPrefix, "/") + "/" + key}, nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	// Base strips any path traversal out of stored keys.
	return os.Remove(filepath.Join(l.BaseDir, filepath.Base(key)))
}

// safeExt whitelists image extensions; anything else is stored without
// an extension.
func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return ext
	default:
		return ""
	}
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
