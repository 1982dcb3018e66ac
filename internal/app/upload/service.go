package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/amaryllis-studio/florist/internal/adapter/logger"
	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/imaging"
)

var allowedMIMETypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type Service struct {
	dir        string
	publicPath string
	maxBytes   int64
	logger     logger.Logger
}

func NewService(dir, publicPath string, maxBytes int64, lgr logger.Logger) *Service {
	return &Service{
		dir:        dir,
		publicPath: strings.TrimRight(publicPath, "/"),
		maxBytes:   maxBytes,
		logger:     lgr,
	}
}

// Save validates the file content and writes it under a generated name,
// returning the public URL. With compress set the file is re-encoded as WebP
// under the size cap before being stored.
func (s *Service) Save(ctx context.Context, filename string, data []byte, compress bool) (string, error) {
	if int64(len(data)) > s.maxBytes {
		return "", domain.NewValidationError("file", fmt.Sprintf(
			"%s exceeds the maximum size of %d bytes", filename, s.maxBytes))
	}

	mime := mimetype.Detect(data)
	ext, ok := allowedMIMETypes[mime.String()]
	if !ok {
		return "", domain.NewValidationError("file", fmt.Sprintf(
			"%s has unsupported type %s, only jpeg, png and webp are accepted", filename, mime.String()))
	}

	if compress {
		compressed, err := imaging.CompressToWebP(data, int(s.maxBytes))
		if err != nil {
			return "", domain.NewValidationError("file", fmt.Sprintf(
				"%s could not be compressed: %v", filename, err))
		}
		data = compressed
		ext = ".webp"
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	s.logger.Info("file_uploaded", "File stored", "", map[string]interface{}{
		"original": filename,
		"stored":   name,
		"bytes":    len(data),
	})
	return s.publicPath + "/" + name, nil
}
