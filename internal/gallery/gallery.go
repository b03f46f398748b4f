// Package gallery stores employee photos in one flat directory served as static files.
package gallery

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"unicode"

	"employee-list/internal/apperror"
	"employee-list/pkg/config"
	"employee-list/prometheus"

	"go.uber.org/zap"
)

const sniffLength = 512

//go:embed assets/profile_placeholder.png
var defaultPlaceholder []byte

// accepted content types and the extensions allowed for each; the first is canonical
var allowedTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/gif":  {".gif"},
}

type Store struct {
	dir         string
	urlPrefix   string
	maxBytes    int64
	placeholder string
	logger      *zap.Logger
}

// NewStore creates the directory and the default placeholder image when missing
func NewStore(cfg config.GalleryConfig, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create gallery directory: %w", err)
	}
	s := &Store{
		dir:         cfg.Dir,
		urlPrefix:   "/" + strings.Trim(cfg.URLPrefix, "/"),
		maxBytes:    cfg.MaxUploadBytes,
		placeholder: cfg.PlaceholderFile,
		logger:      logger,
	}
	if err := s.ensurePlaceholder(); err != nil {
		return nil, fmt.Errorf("create placeholder image: %w", err)
	}
	return s, nil
}

// ensurePlaceholder writes the built-in profile picture unless a file of that name exists
func (s *Store) ensurePlaceholder() error {
	if s.placeholder == "" || s.placeholder != filepath.Base(s.placeholder) {
		return fmt.Errorf("invalid placeholder file name %q", s.placeholder)
	}
	target := filepath.Join(s.dir, s.placeholder)
	if _, err := os.Stat(target); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.WriteFile(target, defaultPlaceholder, 0o644); err != nil {
		return err
	}
	s.logger.Info("Default placeholder image created", zap.String("file", s.placeholder))
	return nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) URLPrefix() string {
	return s.urlPrefix
}

// PlaceholderURL is the default profile picture
func (s *Store) PlaceholderURL() string {
	return s.urlFor(s.placeholder)
}

// ListImageURLs returns the URL of every regular file, sorted by file name. Dot files
// such as in-flight uploads are skipped.
func (s *Store) ListImageURLs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read gallery directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() && !isHidden(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	urls := make([]string, 0, len(names))
	for _, name := range names {
		urls = append(urls, s.urlFor(name))
	}
	return urls, nil
}

// UploadImages stores every acceptable file and returns the URLs written. Each file is
// handled on its own: unsupported types and oversized files are skipped. With both names
// given the file is stored as lastname-firstname.ext, replacing an earlier upload.
// A non-nil error reports files that could not be written.
func (s *Store) UploadImages(files []*multipart.FileHeader, firstName, lastName string) ([]string, error) {
	var (
		urls []string
		errs []error
	)
	for _, fh := range files {
		name, err := s.saveFile(fh, firstName, lastName)
		if err != nil {
			prometheus.RecordUpload("failed")
			s.logger.Error("Failed to store uploaded image", zap.String("file", fh.Filename), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		if name == "" {
			continue
		}
		prometheus.RecordUpload("accepted")
		s.logger.Info("Image uploaded", zap.String("file", name), zap.Int64("size", fh.Size))
		urls = append(urls, s.urlFor(name))
	}
	return urls, errors.Join(errs...)
}

// saveFile returns an empty name for files that were skipped
func (s *Store) saveFile(fh *multipart.FileHeader, firstName, lastName string) (string, error) {
	if fh.Size > s.maxBytes {
		prometheus.RecordUpload("too_large")
		s.logger.Warn("Skipping oversized image", zap.String("file", fh.Filename), zap.Int64("size", fh.Size))
		return "", nil
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	head := make([]byte, sniffLength)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	extensions, ok := allowedTypes[contentType]
	if !ok {
		prometheus.RecordUpload("invalid_type")
		s.logger.Warn("Skipping unsupported image type",
			zap.String("file", fh.Filename),
			zap.String("content_type", contentType))
		return "", nil
	}

	name := targetName(fh.Filename, firstName, lastName, extensions)

	// written to a temporary file first so readers never see a partial image
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, io.LimitReader(io.MultiReader(bytes.NewReader(head), src), s.maxBytes+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", err
	}
	if written > s.maxBytes {
		prometheus.RecordUpload("too_large")
		return "", nil
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// DeleteImage removes the file behind rawURL and returns its name. Only files directly
// inside the gallery directory can be addressed.
func (s *Store) DeleteImage(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", apperror.Wrap(apperror.CodeValidation, "invalid image url", err)
	}

	name, ok := strings.CutPrefix(u.Path, s.urlPrefix+"/")
	if !ok || name == "" || name != path.Base(name) || isHidden(name) || strings.ContainsRune(name, '\\') {
		return "", apperror.New(apperror.CodeValidation, "image url is outside the gallery")
	}
	if name == s.placeholder {
		return "", apperror.New(apperror.CodeValidation, "the placeholder image cannot be deleted")
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", apperror.New(apperror.CodeNotFound, "image not found")
		}
		return "", fmt.Errorf("delete image: %w", err)
	}
	s.logger.Info("Image deleted", zap.String("file", name))
	return name, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func (s *Store) urlFor(name string) string {
	return s.urlPrefix + "/" + url.PathEscape(name)
}

func targetName(original, firstName, lastName string, extensions []string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if !slices.Contains(extensions, ext) {
		ext = extensions[0]
	}

	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName != "" && lastName != "" {
		return sanitize(strings.ToLower(lastName+"-"+firstName)) + ext
	}

	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	return sanitize(base) + ext
}

// sanitize keeps letters, digits, dot, underscore and dash; everything else becomes a dash
func sanitize(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-' {
			return r
		}
		return '-'
	}, name)
	cleaned = strings.Trim(cleaned, ".-")
	if cleaned == "" {
		return "image"
	}
	return cleaned
}
