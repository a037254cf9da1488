package dbtypes

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// StringList stores a list of short strings (image keys, tags) as a
// Postgres-style array literal so the same column works on sqlite.
type StringList []string

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}

	switch v := src.(type) {
	case string:
		return l.parseFromString(v)
	case []byte:
		return l.parseFromString(string(v))
	default:
		return fmt.Errorf("StringList: unsupported Scan type %T", src)
	}
}

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "{}", nil
	}
	parts := make([]string, 0, len(l))
	for _, s := range l {
		if strings.ContainsAny(s, ",{}") {
			return nil, fmt.Errorf("StringList: element %q contains reserved characters", s)
		}
		parts = append(parts, s)
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

func (l *StringList) parseFromString(s string) error {
	s = strings.TrimSpace(s)
	if s == "{}" || s == "" {
		*l = StringList{}
		return nil
	}
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	if strings.TrimSpace(s) == "" {
		*l = StringList{}
		return nil
	}

	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		out = append(out, strings.TrimSpace(strings.Trim(r, `"`)))
	}
	*l = StringList(out)
	return nil
}
