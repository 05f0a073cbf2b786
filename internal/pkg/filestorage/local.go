package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"github.com/coeptech/unimis/internal/pkg/apperrors"
	"github.com/coeptech/unimis/internal/pkg/logger"
)

// LocalStorage stores applicant documents on the local filesystem under a
// per-user directory. Stored paths are persisted as strings and served back
// as static files.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a new LocalStorage instance. basePath is the root
// directory on disk; baseURL, if set, is prepended to returned paths.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// BasePath returns the storage root on disk.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// SaveApplicationDocument stores an uploaded PDF under
// applications/<userID>/<field><ext> and returns the stored relative path.
// Only PDF uploads are accepted.
func (ls *LocalStorage) SaveApplicationDocument(fileHeader *multipart.FileHeader, userID int64, field string) (string, error) {
	if fileHeader == nil {
		return "", nil // field not uploaded
	}

	if fileHeader.Header.Get("Content-Type") != "application/pdf" {
		return "", apperrors.ErrInvalidFileType
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	userDir := filepath.Join(ls.basePath, "applications", strconv.FormatInt(userID, 10))
	if err := os.MkdirAll(userDir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", userDir).Msg("Failed to create user upload directory")
		return "", fmt.Errorf("failed to create user upload directory: %w", err)
	}

	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" {
		ext = ".pdf"
	}
	dstPath := filepath.Join(userDir, field+ext)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}

	rel, err := filepath.Rel(ls.basePath, dstPath)
	if err != nil {
		rel = dstPath
	}

	if ls.baseURL != "" {
		return ls.baseURL + "/" + filepath.ToSlash(rel), nil
	}
	return filepath.ToSlash(rel), nil
}
