package dto

import (
	"encoding/json"
	"strings"
)

// StringList accepts either a JSON array of strings or a single comma
// separated string. Entries are trimmed and empty ones dropped.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = clean(arr)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*l = clean(strings.Split(s, ","))
	return nil
}

func clean(in []string) StringList {
	out := make(StringList, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
