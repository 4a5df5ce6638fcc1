package entities

import (
	"bytes"
	"encoding/json"
	"strings"
)

// StringList is a list of short text items (service features, case study
// results, technologies). It always encodes as a JSON array and decodes from
// either an array or a newline separated string, dropping blank entries.
type StringList []string

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = SplitLines(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = clean(items)
	return nil
}

// SplitLines splits s on newlines, trimming each line and dropping blanks.
func SplitLines(s string) StringList {
	return clean(strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n"))
}

// ParseStringList interprets raw form values: a JSON array, a single
// newline separated value, or repeated values.
func ParseStringList(values []string) StringList {
	if len(values) == 1 {
		v := strings.TrimSpace(values[0])
		if strings.HasPrefix(v, "[") {
			var l StringList
			if err := json.Unmarshal([]byte(v), &l); err == nil {
				return l
			}
		}
		return SplitLines(v)
	}
	return clean(values)
}

// Join renders the list as newline separated text.
func (l StringList) Join() string {
	return strings.Join(l, "\n")
}

func clean(items []string) StringList {
	out := make(StringList, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
