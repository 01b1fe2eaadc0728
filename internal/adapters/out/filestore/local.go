// Package filestore keeps uploaded document contents in a local directory.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/clock"
	"procurement/internal/pkg/errs"
)

const maxExtensionLength = 10

// LocalFileStore implements ports.FileStore. References are slash-separated
// paths relative to the root, "2026/10/<uuid>.pdf", so the client-supplied
// name never reaches the file system.
type LocalFileStore struct {
	root  string
	clock clock.Clock
}

// NewLocalFileStore creates root when it does not exist.
func NewLocalFileStore(root string, clk clock.Clock) (*LocalFileStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errs.NewValueIsRequiredError("upload directory")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalFileStore{root: root, clock: clk}, nil
}

func (s *LocalFileStore) Save(ctx context.Context, suggestedName string, content io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	now := s.clock.Now()
	ref := path.Join(now.Format("2006"), now.Format("01"), kernel.NewUUID().String()+extension(suggestedName))
	target := s.resolve(ref)
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return "", 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	size, err := io.Copy(tmp, contextReader{ctx: ctx, r: content})
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", 0, err
	}

	if err = os.Rename(tmp.Name(), target); err != nil {
		return "", 0, err
	}
	return ref, size, nil
}

// Delete removes the file behind ref. A missing file is not an error.
func (s *LocalFileStore) Delete(_ context.Context, ref string) error {
	if !isLocalRef(ref) {
		return errs.NewValueIsInvalidError("file reference " + ref)
	}

	err := os.Remove(s.resolve(ref))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Open returns the contents behind ref.
func (s *LocalFileStore) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	if !isLocalRef(ref) {
		return nil, errs.NewValueIsInvalidError("file reference " + ref)
	}

	f, err := os.Open(s.resolve(ref))
	if errors.Is(err, os.ErrNotExist) {
		return nil, errs.NewObjectNotFoundError("file", ref)
	}
	return f, err
}

func (s *LocalFileStore) resolve(ref string) string {
	return filepath.Join(s.root, filepath.FromSlash(ref))
}

func isLocalRef(ref string) bool {
	return ref != "" && filepath.IsLocal(filepath.FromSlash(ref))
}

// extension keeps a short, lower-case, alphanumeric extension of name.
func extension(name string) string {
	ext := strings.ToLower(path.Ext(filepath.Base(name)))
	if len(ext) < 2 || len(ext) > maxExtensionLength {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
