package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"fonda-catalogo/config"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrFileTooLarge         = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedImageType = errors.New("unsupported image type")
)

// allowedImageTypes are the MIME types the catalog accepts for product images.
var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// UploadService owns the lifecycle of uploaded image files. The rest of the
// system only ever sees the filename it returns, as an opaque reference.
type UploadService struct {
	dir     string
	maxSize int64
	log     *logrus.Logger
}

func NewUploadService(cfg config.UploadConfig, log *logrus.Logger) (*UploadService, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &UploadService{
		dir:     cfg.Dir,
		maxSize: cfg.MaxSize,
		log:     log,
	}, nil
}

// Store writes an uploaded image under the upload directory and returns the
// generated filename. The content type is sniffed from the bytes, the
// client-declared header is not trusted.
func (s *UploadService) Store(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxSize {
		return "", ErrFileTooLarge
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}
	if !isAllowedImageType(mtype) {
		return "", ErrUnsupportedImageType
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	filename := uuid.NewString() + mtype.Extension()
	path := filepath.Join(s.dir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create stored file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, s.maxSize)); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write stored file: %w", err)
	}

	s.log.Infof("Stored uploaded image as %s (%s, %d bytes)", filename, mtype.String(), header.Size)
	return filename, nil
}

// Dir is where stored images live, used by the router to serve them.
func (s *UploadService) Dir() string {
	return s.dir
}

func isAllowedImageType(mtype *mimetype.MIME) bool {
	for _, allowed := range allowedImageTypes {
		if mtype.Is(allowed) {
			return true
		}
	}
	return false
}
