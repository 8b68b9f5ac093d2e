package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SetValue updates one field addressed as "section.key", using the JSON
// field names (e.g. "trackpad.sensitivity"). value is parsed as JSON and
// falls back to a plain string.
func (c *Config) SetValue(key, value string) error {
	section, field, ok := strings.Cut(key, ".")
	if !ok || section == "" || field == "" {
		return fmt.Errorf("%w: key %q must be section.field", ErrInvalid, key)
	}

	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	var tree map[string]map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return err
	}

	sec, ok := tree[section]
	if !ok {
		return fmt.Errorf("%w: unknown section %q", ErrInvalid, section)
	}

	var parsed any
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		parsed = value
	}
	sec[field] = parsed

	data, err = json.Marshal(tree)
	if err != nil {
		return err
	}

	updated := *c
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&updated); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	*c = updated
	return nil
}
