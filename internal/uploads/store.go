// Package uploads stores user-submitted images on local disk and serves them
// by public URL path.
package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// allowedTypes is the image MIME allowlist for uploads.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// ErrUnsupportedType is returned for uploads outside the image allowlist.
type ErrUnsupportedType struct {
	ContentType string
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported upload type %q: only JPEG and PNG images are accepted", e.ContentType)
}

// Store writes uploaded files under a base directory. Stored names are
// timestamp-prefixed so re-uploads never collide.
type Store struct {
	dir       string
	urlPrefix string
}

// NewStore creates the base directory if needed. urlPrefix is the public path
// uploads are served under, e.g. "/uploads".
func NewStore(dir, urlPrefix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Dir returns the base directory, for static file serving.
func (s *Store) Dir() string {
	return s.dir
}

// CheckType rejects content types outside the image allowlist. Callers
// handling multi-part requests use it to vet every part before any file is
// written.
func CheckType(contentType string) error {
	if !allowedTypes[strings.ToLower(contentType)] {
		return &ErrUnsupportedType{ContentType: contentType}
	}
	return nil
}

// Save writes an upload and returns its stored filename. The content type
// must be on the image allowlist.
func (s *Store) Save(name, contentType string, r io.Reader) (string, error) {
	if err := CheckType(contentType); err != nil {
		return "", err
	}

	stored := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeBase(name))
	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return stored, nil
}

// SaveBytes writes generated content (thumbnails) without the MIME check.
func (s *Store) SaveBytes(name string, data []byte) (string, error) {
	stored := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeBase(name))
	if err := os.WriteFile(filepath.Join(s.dir, stored), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return stored, nil
}

// Remove deletes a stored file by its public URL or stored name. Best effort:
// a missing file is not an error.
func (s *Store) Remove(nameOrURL string) error {
	base := filepath.Base(nameOrURL)
	if base == "." || base == "/" || base == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, base))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}

// PublicURL returns the path a stored file is served under.
func (s *Store) PublicURL(stored string) string {
	return s.urlPrefix + "/" + stored
}

// sanitizeBase strips any path components and characters that do not belong
// in a filename.
func sanitizeBase(name string) string {
	base := filepath.Base(name)
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
