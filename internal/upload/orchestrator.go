// internal/upload/orchestrator.go
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/catalog"
	"github.com/javajoker/storefront/internal/client"
)

// ErrUploadInFlight is returned when a batch starts while another one is
// still running for the same form.
var ErrUploadInFlight = errors.New("an upload is already in progress")

// Uploader stores one file and returns its public URL.
type Uploader interface {
	UploadFile(ctx context.Context, upload client.UploadRequest, progress client.ProgressFunc) (string, error)
}

// File is one selected file. ContentType may be empty.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Observer is told about every progress change, keyed by the generated
// upload name.
type Observer func(key string, percent float64)

// Orchestrator validates and uploads batches of files for one product form.
type Orchestrator struct {
	uploader Uploader
	progress *Progress
	observer Observer
	now      func() time.Time

	mu      sync.Mutex
	running bool
}

type Option func(*Orchestrator)

func WithObserver(observer Observer) Option {
	return func(o *Orchestrator) {
		o.observer = observer
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

func NewOrchestrator(uploader Uploader, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		uploader: uploader,
		progress: NewProgress(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) Progress() *Progress {
	return o.progress
}

// Busy reports whether upload controls should be disabled.
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running || o.progress.Active() > 0
}

// Upload validates the whole batch, then uploads the files one at a time in
// order, adding each URL to media as it arrives. The first failure stops
// the batch; files already uploaded stay in media.
func (o *Orchestrator) Upload(ctx context.Context, kind Kind, files []File, media *Media) ([]string, error) {
	if err := Validate(kind, files); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return nil, ErrUploadInFlight
	}
	o.running = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.running = false
		o.mu.Unlock()
	}()

	keys := make([]string, len(files))
	for i, file := range files {
		keys[i] = o.uploadKey(file.Name)
	}
	o.progress.track(keys)

	urls := make([]string, 0, len(files))
	for i, file := range files {
		url, err := o.uploadOne(ctx, keys[i], file)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"file":     file.Name,
				"uploaded": len(urls),
				"total":    len(files),
			}).Warn("Upload batch stopped")
			return urls, fmt.Errorf("failed to upload %s: %w", file.Name, err)
		}

		urls = append(urls, url)
		if media != nil {
			media.Add(kind, url)
		}
	}
	return urls, nil
}

func (o *Orchestrator) uploadOne(ctx context.Context, key string, file File) (string, error) {
	o.progress.Increment()
	defer o.progress.Decrement()

	o.report(key, 0)
	url, err := o.uploader.UploadFile(ctx, client.UploadRequest{
		Filename:    file.Name,
		ContentType: file.ContentType,
		Size:        file.Size,
		Body:        file.Body,
	}, func(percent float64) {
		o.report(key, percent)
	})
	if err != nil {
		return "", err
	}

	o.report(key, 100)
	return url, nil
}

func (o *Orchestrator) report(key string, percent float64) {
	o.progress.set(key, percent)
	if o.observer != nil {
		o.observer(key, percent)
	}
}

// uploadKey is unique per selected file even when names repeat.
func (o *Orchestrator) uploadKey(name string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return catalog.StorageKey(o.now(), token, name, "")
}

// Validate checks every file against kind before anything is sent. The
// error names the first offending file.
func Validate(kind Kind, files []File) error {
	if _, err := ParseKind(string(kind)); err != nil {
		return &client.ValidationError{Reason: err.Error()}
	}

	limitMB := kind.MaxBytes() / (1024 * 1024)
	for _, file := range files {
		switch {
		case !kind.accepts(file.Name, file.ContentType):
			return &client.ValidationError{Field: file.Name, Reason: fmt.Sprintf("not a supported %s file", kind.label())}
		case file.Size <= 0:
			return &client.ValidationError{Field: file.Name, Reason: "file is empty"}
		case file.Size > kind.MaxBytes():
			return &client.ValidationError{Field: file.Name, Reason: fmt.Sprintf("larger than %dMB", limitMB)}
		case file.Body == nil:
			return &client.ValidationError{Field: file.Name, Reason: "file cannot be read"}
		}
	}
	if kind == KindVideo && len(files) > 1 {
		return &client.ValidationError{Field: files[1].Name, Reason: "only one video can be attached"}
	}
	return nil
}
