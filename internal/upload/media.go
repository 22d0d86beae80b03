// internal/upload/media.go
package upload

import "strings"

// Media is the uploaded-URL part of the product form.
type Media struct {
	Images            []string
	DescriptionImages []string
	VideoURL          string
}

// Add files url under kind. Lists stop growing at their capacity and keep
// the earliest entries; a video replaces the previous one.
func (m *Media) Add(kind Kind, url string) {
	url = strings.TrimSpace(url)
	if url == "" {
		return
	}

	switch kind {
	case KindImage:
		m.Images = appendCapped(m.Images, url, kind.Capacity())
	case KindDescriptionImage:
		m.DescriptionImages = appendCapped(m.DescriptionImages, url, kind.Capacity())
	case KindVideo:
		m.VideoURL = url
	}
}

// Remove drops the entry at index from a list kind, or clears the video.
func (m *Media) Remove(kind Kind, index int) {
	switch kind {
	case KindImage:
		m.Images = removeAt(m.Images, index)
	case KindDescriptionImage:
		m.DescriptionImages = removeAt(m.DescriptionImages, index)
	case KindVideo:
		m.VideoURL = ""
	}
}

// Remaining is how many more URLs kind accepts before truncation.
func (m *Media) Remaining(kind Kind) int {
	switch kind {
	case KindImage:
		return kind.Capacity() - len(m.Images)
	case KindDescriptionImage:
		return kind.Capacity() - len(m.DescriptionImages)
	default:
		return kind.Capacity()
	}
}

func appendCapped(list []string, url string, capacity int) []string {
	if len(list) >= capacity {
		return list
	}
	return append(list, url)
}

func removeAt(list []string, index int) []string {
	if index < 0 || index >= len(list) {
		return list
	}
	return append(list[:index:index], list[index+1:]...)
}
