// internal/upload/kind.go
package upload

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/javajoker/storefront/internal/models"
)

// Kind is the form slot a batch of files is destined for.
type Kind string

const (
	KindImage            Kind = "image"
	KindDescriptionImage Kind = "description-image"
	KindVideo            Kind = "video"
)

const (
	MaxImageBytes int64 = 10 * 1024 * 1024
	MaxVideoBytes int64 = 100 * 1024 * 1024
)

var (
	imageExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
		".bmp": true, ".heic": true, ".heif": true, ".avif": true,
	}
	videoExtensions = map[string]bool{
		".mp4": true, ".mov": true, ".m4v": true, ".webm": true, ".3gp": true,
		".mkv": true, ".avi": true,
	}
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindImage, KindDescriptionImage, KindVideo:
		return k, nil
	}
	return "", fmt.Errorf("unknown upload kind %q", s)
}

// MaxBytes is the size ceiling for one file of this kind.
func (k Kind) MaxBytes() int64 {
	if k == KindVideo {
		return MaxVideoBytes
	}
	return MaxImageBytes
}

// Capacity is how many URLs the form keeps for this kind.
func (k Kind) Capacity() int {
	switch k {
	case KindImage:
		return models.MaxGalleryImages
	case KindDescriptionImage:
		return models.MaxDescriptionImages
	default:
		return 1
	}
}

// accepts checks the declared MIME type first and falls back to the
// extension, since some pickers report no type at all.
func (k Kind) accepts(name, contentType string) bool {
	major := "image/"
	extensions := imageExtensions
	if k == KindVideo {
		major = "video/"
		extensions = videoExtensions
	}

	if ct := strings.ToLower(strings.TrimSpace(contentType)); strings.HasPrefix(ct, major) {
		return true
	}
	return extensions[strings.ToLower(filepath.Ext(name))]
}

func (k Kind) label() string {
	if k == KindVideo {
		return "video"
	}
	return "image"
}
