// internal/services/storage_service.go
package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/catalog"
	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/utils"
)

const storageTokenLength = 8

type StorageService struct {
	s3Client s3iface.S3API
	config   *config.Config
	now      func() time.Time
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

// NewStorageService uses S3 when credentials are configured and the local
// upload directory otherwise.
func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		logrus.WithField("dir", cfg.Upload.LocalDir).Info("AWS credentials not set, storing uploads locally")
		return &StorageService{config: cfg, now: time.Now}, nil
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	}
	if cfg.AWS.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWS.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return NewStorageServiceWithClient(s3.New(sess), cfg), nil
}

func NewStorageServiceWithClient(client s3iface.S3API, cfg *config.Config) *StorageService {
	return &StorageService{s3Client: client, config: cfg, now: time.Now}
}

// IsLocal reports whether uploads are written to the local upload directory.
func (s *StorageService) IsLocal() bool {
	return s.s3Client == nil
}

// UploadFiles stores every file and returns public URLs in input order.
// Sizes are checked for the whole batch before anything is stored.
// baseName replaces the stored base name when exactly one file is sent.
func (s *StorageService) UploadFiles(ctx context.Context, headers []*multipart.FileHeader, baseName string) ([]string, error) {
	if len(headers) == 0 {
		return nil, ErrNoFiles
	}

	maxSize := s.config.Upload.MaxFileBytes()
	for _, header := range headers {
		if header.Size > maxSize {
			return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrFileTooLarge, header.Filename, header.Size, maxSize)
		}
	}
	if len(headers) > 1 {
		baseName = ""
	}

	urls := make([]string, 0, len(headers))
	for _, header := range headers {
		result, err := s.UploadFile(ctx, header, baseName)
		if err != nil {
			return nil, err
		}
		urls = append(urls, result.URL)
	}
	return urls, nil
}

func (s *StorageService) UploadFile(ctx context.Context, header *multipart.FileHeader, baseName string) (*UploadResult, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", header.Filename, err)
	}
	defer file.Close()

	key, err := s.generateFileName(header.Filename, baseName)
	if err != nil {
		return nil, err
	}
	contentType := detectContentType(header)

	if s.s3Client != nil {
		return s.uploadToS3(ctx, file, header.Size, key, contentType)
	}
	return s.uploadToLocal(file, key, contentType)
}

func (s *StorageService) uploadToS3(ctx context.Context, body io.ReadSeeker, size int64, key, contentType string) (*UploadResult, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     size,
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(body io.Reader, key, contentType string) (*UploadResult, error) {
	if err := os.MkdirAll(s.config.Upload.LocalDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(filepath.Join(s.config.Upload.LocalDir, key))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", key, err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, body)
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", key, err)
	}

	return &UploadResult{
		URL:      strings.TrimRight(s.config.Upload.PublicBaseURL, "/") + "/" + key,
		Key:      key,
		Size:     size,
		MimeType: contentType,
	}, nil
}

func (s *StorageService) generateFileName(originalName, baseName string) (string, error) {
	token, err := utils.GenerateRandomString(storageTokenLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate storage token: %w", err)
	}
	return catalog.StorageKey(s.now(), token, originalName, baseName), nil
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.AWS.PublicURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.config.AWS.PublicURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

func detectContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(header.Filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
