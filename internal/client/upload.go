// internal/client/upload.go
package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// ProgressFunc receives the share of the file sent so far, from 0 to 100.
type ProgressFunc func(percent float64)

// UploadRequest describes one file to store.
type UploadRequest struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader

	// BaseName replaces the stored base name, keeping the extension.
	BaseName string
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadFile streams one file to /api/upload and returns its public URL.
// progress may be nil.
func (c *Client) UploadFile(ctx context.Context, upload UploadRequest, progress ProgressFunc) (string, error) {
	if upload.Body == nil {
		return "", &ValidationError{Field: upload.Filename, Reason: "no file content"}
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUploadForm(mw, upload, progress))
	}()

	query := url.Values{}
	if upload.BaseName != "" {
		query.Set("filename", upload.BaseName)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/upload", query), pr)
	if err != nil {
		pr.Close()
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	env, err := c.do(c.uploadClient, req)
	if err != nil {
		return "", err
	}

	var urls []string
	if err := decodeData(env, &urls); err != nil {
		return "", err
	}
	if len(urls) == 0 || urls[0] == "" {
		return "", ErrMalformedResponse
	}
	return urls[0], nil
}

func writeUploadForm(mw *multipart.Writer, upload UploadRequest, progress ProgressFunc) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(upload.Filename)))
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}

	reader := &progressReader{r: upload.Body, total: upload.Size, report: progress}
	if _, err := io.Copy(part, reader); err != nil {
		return err
	}
	if progress != nil {
		progress(100)
	}
	return mw.Close()
}

// progressReader reports whole-percent steps as the body is consumed.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   int
	report ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	p.read += int64(n)

	if p.report != nil && p.total > 0 && n > 0 {
		percent := int(p.read * 100 / p.total)
		if percent > 99 {
			// 100 is reported once the whole form is written
			percent = 99
		}
		if percent > p.last {
			p.last = percent
			p.report(float64(percent))
		}
	}
	return n, err
}
