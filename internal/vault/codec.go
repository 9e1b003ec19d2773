package vault

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// wire types mirror the file layout with pointers so missing keys are
// distinguishable from empty strings.
type wireFile struct {
	Passwords *[]wireRecord `json:"passwords"`
}

type wireRecord struct {
	Name      *string `json:"name"`
	Value     *string `json:"value"`
	Website   *string `json:"website"`
	Username  *string `json:"username"`
	Notes     *string `json:"notes"`
	CreatedAt *string `json:"created_at"`
}

// Encode serializes d as indented JSON. An empty database encodes its
// record list as [] rather than null. HTML characters are written as-is.
// The file is UTF-8 text, so a field holding invalid UTF-8 is an error
// rather than being silently replaced with U+FFFD.
func Encode(d Database) ([]byte, error) {
	if d.Passwords == nil {
		d.Passwords = []Record{}
	}

	for i, r := range d.Passwords {
		if field := invalidField(r); field != "" {
			return nil, fmt.Errorf("encode vault: record %d %s: %w", i, field, ErrInvalidText)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode vault: %w", err)
	}

	return buf.Bytes(), nil
}

// Decode parses a vault file. Every record must carry all six keys;
// unknown keys are ignored.
func Decode(data []byte) (Database, error) {
	var f wireFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Database{}, fmt.Errorf("decode vault: %w: %w", ErrMalformedStore, err)
	}

	if f.Passwords == nil {
		return Database{}, fmt.Errorf("decode vault: %w: missing passwords", ErrMalformedStore)
	}

	records := make([]Record, 0, len(*f.Passwords))
	for i, w := range *f.Passwords {
		r, err := w.record()
		if err != nil {
			return Database{}, fmt.Errorf("decode vault: %w: record %d: %w", ErrMalformedStore, i, err)
		}
		records = append(records, r)
	}

	return Database{Passwords: records}, nil
}

func (w wireRecord) record() (Record, error) {
	fields := []struct {
		key string
		val *string
	}{
		{"name", w.Name},
		{"value", w.Value},
		{"website", w.Website},
		{"username", w.Username},
		{"notes", w.Notes},
		{"created_at", w.CreatedAt},
	}
	for _, f := range fields {
		if f.val == nil {
			return Record{}, fmt.Errorf("missing %s", f.key)
		}
	}

	return Record{
		Name:      *w.Name,
		Value:     *w.Value,
		Website:   *w.Website,
		Username:  *w.Username,
		Notes:     *w.Notes,
		CreatedAt: *w.CreatedAt,
	}, nil
}

// invalidField names the first field of r that is not valid UTF-8.
func invalidField(r Record) string {
	fields := []struct{ name, v string }{
		{"name", r.Name},
		{"value", r.Value},
		{"website", r.Website},
		{"username", r.Username},
		{"notes", r.Notes},
		{"created_at", r.CreatedAt},
	}
	for _, f := range fields {
		if !utf8.ValidString(f.v) {
			return f.name
		}
	}
	return ""
}
