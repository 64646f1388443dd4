package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// List is a string slice that unmarshals from either a YAML sequence or a
// comma-separated scalar. Environment overrides are always comma-separated,
// so both forms have to normalize to the same thing.
type List []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *List) UnmarshalYAML(value *yaml.Node) error {
	var items []string
	if err := value.Decode(&items); err == nil {
		*l = cleanList(items)
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*l = SplitList(s)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (l List) MarshalYAML() (interface{}, error) {
	return []string(l), nil
}

// SplitList splits a comma-separated value, trimming whitespace and
// dropping empty entries.
func SplitList(s string) List {
	return cleanList(strings.Split(s, ","))
}

func cleanList(items []string) List {
	out := make(List, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it != "" {
			out = append(out, it)
		}
	}
	return out
}
