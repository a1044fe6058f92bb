package document

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	bucketTools        = "tools"
	bucketMedical      = "medical"
	bucketCertificates = "certificates"
)

// Store writes uploaded and generated binary assets under the configured
// upload dir and hands back web paths ("/uploads/..."). Rows reference assets
// by these paths; nothing cleans an asset up if its owning insert later fails.
type Store struct {
	baseDir string
	logger  *zap.Logger
}

func NewStore(baseDir string, logger ...*zap.Logger) (*Store, error) {
	l := zap.L().Named("document.store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.store")
	}

	for _, bucket := range []string{bucketTools, bucketMedical, bucketCertificates} {
		if err := os.MkdirAll(filepath.Join(baseDir, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("document store: create %s bucket: %w", bucket, err)
		}
	}
	return &Store{baseDir: baseDir, logger: l}, nil
}

// BaseDir is the filesystem root served under /uploads.
func (s *Store) BaseDir() string { return s.baseDir }

// SaveToolPhoto stores a tool-evidence photo and returns its web path.
func (s *Store) SaveToolPhoto(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	return s.save(c, fh, bucketTools)
}

// SaveMedicalCertificate stores a leave-request document and returns its web path.
func (s *Store) SaveMedicalCertificate(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	return s.save(c, fh, bucketMedical)
}

func (s *Store) save(c *gin.Context, fh *multipart.FileHeader, bucket string) (string, error) {
	name := uuid.New().String() + sanitizeExt(fh.Filename)
	dst := filepath.Join(s.baseDir, bucket, name)

	if err := c.SaveUploadedFile(fh, dst); err != nil {
		s.logger.Error("upload save failed",
			zap.String("bucket", bucket),
			zap.Error(err),
		)
		return "", fmt.Errorf("document store: save upload: %w", err)
	}

	s.logger.Debug("upload stored",
		zap.String("bucket", bucket),
		zap.String("file", name),
	)
	return "/uploads/" + bucket + "/" + name, nil
}

// WriteCertificatePDF generates an employment-certificate PDF and returns its
// web path.
func (s *Store) WriteCertificatePDF(lines []string) (string, error) {
	data, err := buildCertificatePDF(lines)
	if err != nil {
		return "", err
	}

	name := uuid.New().String() + ".pdf"
	dst := filepath.Join(s.baseDir, bucketCertificates, name)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("document store: write certificate: %w", err)
	}

	return "/uploads/" + bucketCertificates + "/" + name, nil
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
