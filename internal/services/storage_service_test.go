package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront/internal/config"
)

type fakeS3 struct {
	s3iface.S3API
	mu      sync.Mutex
	keys    []string
	bodies  [][]byte
	types   []string
	failOn  int
	callNum int
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callNum++
	if f.failOn == f.callNum {
		return nil, errors.New("access denied")
	}
	body, _ := io.ReadAll(in.Body)
	f.keys = append(f.keys, aws.StringValue(in.Key))
	f.bodies = append(f.bodies, body)
	f.types = append(f.types, aws.StringValue(in.ContentType))
	return &s3.PutObjectOutput{}, nil
}

type testFile struct {
	field, name, contentType string
	body                     []byte
}

func multipartHeaders(t *testing.T, files ...testFile) map[string][]*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="` + f.field + `"; filename="` + f.name + `"`}
		if f.contentType != "" {
			h["Content-Type"] = []string{f.contentType}
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.body)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File
}

func storageConfig(dir string) *config.Config {
	return &config.Config{
		AWS: config.AWSConfig{
			Region:   "ap-southeast-1",
			S3Bucket: "media",
		},
		Upload: config.UploadConfig{
			MaxFileMB:     1,
			LocalDir:      dir,
			PublicBaseURL: "http://localhost:8080/uploads/",
		},
	}
}

func TestStorageServiceUploadFilesToS3(t *testing.T) {
	fake := &fakeS3{}
	svc := NewStorageServiceWithClient(fake, storageConfig(t.TempDir()))
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	headers := multipartHeaders(t,
		testFile{"files", "Red Dress.JPG", "image/jpeg", []byte("one")},
		testFile{"files", "red dress.jpg", "", []byte("two")},
	)["files"]

	urls, err := svc.UploadFiles(context.Background(), headers, "ignored-for-batches")
	require.NoError(t, err)
	require.Len(t, urls, 2)

	assert.Regexp(t, `^https://media\.s3\.ap-southeast-1\.amazonaws\.com/1700000000000-[a-z0-9]{8}-reddress\.jpg$`, urls[0])
	assert.NotEqual(t, urls[0], urls[1])
	assert.Equal(t, [][]byte{[]byte("one"), []byte("two")}, fake.bodies)
	assert.Equal(t, []string{"image/jpeg", "image/jpeg"}, fake.types)
}

func TestStorageServiceUploadUsesBaseNameForSingleFile(t *testing.T) {
	fake := &fakeS3{}
	cfg := storageConfig(t.TempDir())
	cfg.AWS.PublicURL = "https://cdn.example.com/"
	svc := NewStorageServiceWithClient(fake, cfg)

	headers := multipartHeaders(t, testFile{"file", "IMG_0001.png", "image/png", []byte("png")})["file"]

	urls, err := svc.UploadFiles(context.Background(), headers, "Cover Photo")
	require.NoError(t, err)
	assert.Regexp(t, `^https://cdn\.example\.com/\d+-[a-z0-9]{8}-coverphoto\.png$`, urls[0])
}

func TestStorageServiceRejectsBeforeStoring(t *testing.T) {
	fake := &fakeS3{}
	svc := NewStorageServiceWithClient(fake, storageConfig(t.TempDir()))

	_, err := svc.UploadFiles(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrNoFiles)

	headers := multipartHeaders(t,
		testFile{"files", "small.jpg", "image/jpeg", []byte("ok")},
		testFile{"files", "huge.mp4", "video/mp4", []byte("big")},
	)["files"]
	headers[1].Size = 2 << 20

	_, err = svc.UploadFiles(context.Background(), headers, "")
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Contains(t, err.Error(), "huge.mp4")
	assert.Empty(t, fake.keys)
}

func TestStorageServiceS3Failure(t *testing.T) {
	fake := &fakeS3{failOn: 2}
	svc := NewStorageServiceWithClient(fake, storageConfig(t.TempDir()))

	headers := multipartHeaders(t,
		testFile{"files", "a.jpg", "image/jpeg", []byte("a")},
		testFile{"files", "b.jpg", "image/jpeg", []byte("b")},
	)["files"]

	_, err := svc.UploadFiles(context.Background(), headers, "")
	assert.Error(t, err)
	assert.Len(t, fake.keys, 1)
}

func TestStorageServiceLocalFallback(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewStorageService(storageConfig(dir))
	require.NoError(t, err)

	headers := multipartHeaders(t, testFile{"file", "clip.mp4", "", []byte("video-bytes")})["file"]

	urls, err := svc.UploadFiles(context.Background(), headers, "")
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.Regexp(t, `^http://localhost:8080/uploads/\d+-[a-z0-9]{8}-clip\.mp4$`, urls[0])

	stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(urls[0])))
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(stored))
}
