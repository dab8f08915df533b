package libs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrMediaNotFound is returned by Delete when the named file is already gone.
var ErrMediaNotFound = errors.New("media not found")

// MediaStore keeps uploaded files under server-generated names.
type MediaStore interface {
	Store(ctx context.Context, field, ext string, r io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
}

// NewStoredName builds a unique bare filename, e.g. "image2-<uuid>.jpg".
func NewStoredName(field, ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("%s-%s%s", sanitizeField(field), uuid.NewString(), ext)
}

func sanitizeField(field string) string {
	var b strings.Builder
	for _, r := range field {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}

type LocalMediaStore struct {
	Root string
}

func NewLocalMediaStore(root string) (*LocalMediaStore, error) {
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalMediaStore{Root: root}, nil
}

func (s *LocalMediaStore) Store(ctx context.Context, field, ext string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := NewStoredName(field, ext)
	path := filepath.Join(s.Root, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	return name, nil
}

func (s *LocalMediaStore) Delete(ctx context.Context, name string) error {
	if !validName(name) {
		return fmt.Errorf("invalid media name %q", name)
	}

	err := os.Remove(filepath.Join(s.Root, name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMediaNotFound, name)
	}
	return err
}
