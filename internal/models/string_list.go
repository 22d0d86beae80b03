// internal/models/string_list.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// StringList is an ordered list of strings persisted as serialized JSON text.
// Reads never fail: absent or malformed column values decode to an empty list.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		*l = ParseStringList(string(v))
	case string:
		*l = ParseStringList(v)
	default:
		*l = StringList{}
	}
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Truncate keeps the first max entries.
func (l StringList) Truncate(max int) StringList {
	if len(l) <= max {
		return l
	}
	return l[:max]
}

// ParseStringList decodes a serialized array, dropping empty entries.
func ParseStringList(raw string) StringList {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return StringList{}
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return StringList{}
	}

	list := make(StringList, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
