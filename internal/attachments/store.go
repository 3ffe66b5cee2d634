// Package attachments persists uploaded images on disk under generated
// filenames. Records reference attachments by filename only; the directory
// is served read-only at /images.
package attachments

import (
	"bytes"
	"image"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	// Register decoders for format sniffing. GIF and WebP are not part of
	// the stdlib image default set in this binary otherwise.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// allowedMIME lists accepted image types, matched against the sniffed
// content, not the client-declared header.
var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Upload is one raw attachment as received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Save writes each accepted upload under a collision-resistant generated
// filename that preserves the original extension, and returns the names of
// the files actually written. A bad or unwritable upload is logged and
// dropped; it never aborts the batch. Callers enforce the per-submission cap
// before calling.
func (s *Store) Save(uploads []Upload, prefix string) []string {
	saved := make([]string, 0, len(uploads))
	for _, up := range uploads {
		if up.Filename == "" {
			continue
		}

		sniffed := http.DetectContentType(up.Data)
		if !allowedMIME[sniffed] {
			slog.Warn("attachment rejected", "filename", up.Filename, "declared", up.ContentType, "sniffed", sniffed)
			continue
		}
		cfg, format, err := image.DecodeConfig(bytes.NewReader(up.Data))
		if err != nil {
			slog.Warn("attachment not decodable", "filename", up.Filename, "error", err)
			continue
		}

		name := prefix + uuid.NewString() + normalizeExt(up.Filename)
		path := filepath.Join(s.dir, name)
		if err := os.WriteFile(path, up.Data, 0o644); err != nil {
			slog.Error("attachment write failed", "filename", name, "error", err)
			continue
		}
		saved = append(saved, name)
		slog.Info("attachment saved", "filename", name, "format", format, "width", cfg.Width, "height", cfg.Height)
	}
	return saved
}

// Delete removes one stored attachment, best effort. It returns whether the
// file existed; failures are logged, never propagated.
func (s *Store) Delete(filename string) bool {
	// Records only hold generated basenames, but never trust them as paths.
	path := filepath.Join(s.dir, filepath.Base(filename))
	err := os.Remove(path)
	if err == nil {
		return true
	}
	if !os.IsNotExist(err) {
		slog.Error("attachment delete failed", "filename", filename, "error", err)
	}
	return false
}

func normalizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 8 {
		ext = ext[:8]
	}
	return ext
}
