package cvstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"urswat-backend/internal/domain"
	"urswat-backend/pkg/apperror"

	"github.com/google/uuid"
)

const (
	// MaxFileSize caps CV uploads at 5 MB, checked before any bytes hit disk.
	MaxFileSize = 5 << 20

	// Declared content-type allow-list, deliberately not content sniffing:
	// a mislabeled file will pass, matching the intake form contract.
	allowedContentType = "application/pdf"
)

// Store keeps uploaded CVs on the local filesystem under baseDir and maps
// stored names to URLs under urlPrefix. Files are the source of truth;
// deleting a talent never removes its CV.
type Store struct {
	baseDir   string
	urlPrefix string
}

func New(baseDir, urlPrefix string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	return &Store{
		baseDir:   baseDir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}, nil
}

// Save validates and persists one CV upload, returning the generated
// filename. Validation failures surface before anything is written.
func (s *Store) Save(ctx context.Context, file *domain.CVUpload) (string, error) {
	if file.ContentType != allowedContentType {
		return "", apperror.BadRequest("Only PDF files are allowed")
	}
	if file.Size > MaxFileSize {
		return "", apperror.BadRequest("CV file exceeds the 5MB limit")
	}

	name := generateName(file.Filename)
	dst, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("create cv file: %w", err))
	}
	defer dst.Close()

	// Guard the declared size against the actual stream as well.
	written, err := io.Copy(dst, io.LimitReader(file.Reader, MaxFileSize+1))
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("write cv file: %w", err))
	}
	if written > MaxFileSize {
		_ = os.Remove(filepath.Join(s.baseDir, name))
		return "", apperror.BadRequest("CV file exceeds the 5MB limit")
	}

	return name, nil
}

// PublicURL maps a stored filename to its static-serving path.
func (s *Store) PublicURL(name string) string {
	return s.urlPrefix + "/" + name
}

// Dir returns the directory static file serving should be mounted on.
func (s *Store) Dir() string {
	return s.baseDir
}

// generateName builds a collision-resistant filename preserving the
// original extension: <unix-ms>-<random><ext>.
func generateName(original string) string {
	ext := strings.ToLower(path.Ext(original))
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}
