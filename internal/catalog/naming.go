// internal/catalog/naming.go
package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

const (
	maxBaseNameLength  = 60
	maxExtensionLength = 8
)

// SanitizeBaseName lowercases name, strips everything that is not a
// letter or digit and caps the result. An empty result becomes "file".
func SanitizeBaseName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r > unicode.MaxASCII {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			if b.Len() == maxBaseNameLength {
				break
			}
		}
	}

	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

// SplitFilename returns the base name and lowercased extension of a file name.
func SplitFilename(filename string) (string, string) {
	filename = filepath.Base(filename)
	if filename == "." || filename == string(filepath.Separator) {
		return "", ""
	}
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext), strings.ToLower(ext)
}

// sanitizeExtension keeps the ASCII letters and digits of ext, lowercased
// and capped, with a leading dot. Nothing left means no extension.
func sanitizeExtension(ext string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(ext) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == maxExtensionLength {
				break
			}
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "." + b.String()
}

// StorageKey builds an object key from the upload time, a random token and
// the sanitized original name. baseOverride replaces the base name when set.
func StorageKey(at time.Time, token, original, baseOverride string) string {
	base, ext := SplitFilename(original)
	if baseOverride != "" {
		overrideBase, overrideExt := SplitFilename(baseOverride)
		base = overrideBase
		if ext == "" {
			ext = overrideExt
		}
	}
	return fmt.Sprintf("%d-%s-%s%s", at.UnixMilli(), token, SanitizeBaseName(base), sanitizeExtension(ext))
}
