package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zarlcorp/saltr/internal/secret"
	"github.com/zarlcorp/saltr/internal/vault"
)

func openTestStore(t *testing.T) *vault.Store {
	t.Helper()
	return vault.Open(filepath.Join(t.TempDir(), vault.DefaultFileName))
}

func stubClipboard(t *testing.T) *string {
	t.Helper()
	var got string
	prev := writeClipboard
	writeClipboard = func(s string) error {
		got = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = prev })
	return &got
}

func TestCheckEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   vault.Entry
		wantErr string
	}{
		{"valid", vault.Entry{Name: "a", Value: "b"}, ""},
		{"empty name", vault.Entry{Value: "b"}, "name is required"},
		{"blank name", vault.Entry{Name: "  ", Value: "b"}, "name is required"},
		{"empty value", vault.Entry{Name: "a"}, "value is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckEntry(tt.entry)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	copied := stubClipboard(t)

	var buf bytes.Buffer
	if err := Generate(&buf, secret.New(), 12, true); err != nil {
		t.Fatalf("generate: %v", err)
	}

	out := strings.TrimSpace(buf.String())
	if len(out) != 12 {
		t.Errorf("output %q, want 12 chars", out)
	}
	if *copied != out {
		t.Errorf("copied %q, printed %q", *copied, out)
	}
}

func TestGenerateCopyFailure(t *testing.T) {
	prev := writeClipboard
	writeClipboard = func(string) error { return errors.New("no display") }
	t.Cleanup(func() { writeClipboard = prev })

	err := Generate(&bytes.Buffer{}, secret.New(), 8, true)
	if err == nil || !strings.Contains(err.Error(), "no display") {
		t.Errorf("err = %v, want copy failure", err)
	}
}

func TestAddAndList(t *testing.T) {
	s := openTestStore(t)

	var buf bytes.Buffer
	if err := Add(&buf, s, vault.Entry{Name: "gh", Value: "abc", Website: "github.com", Username: "me"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(buf.String(), `saved "gh" (1 records)`) {
		t.Errorf("add output = %q", buf.String())
	}

	buf.Reset()
	if err := List(&buf, s, ListOptions{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "github.com") || !strings.Contains(out, "***") {
		t.Errorf("list output = %q", out)
	}
	if strings.Contains(out, "abc") {
		t.Error("list should mask values by default")
	}

	buf.Reset()
	if err := List(&buf, s, ListOptions{Reveal: true}); err != nil {
		t.Fatalf("list reveal: %v", err)
	}
	if !strings.Contains(buf.String(), "abc") {
		t.Errorf("reveal output = %q", buf.String())
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	s := openTestStore(t)

	if err := Add(&bytes.Buffer{}, s, vault.Entry{Name: "x"}); err == nil {
		t.Fatal("expected validation error")
	}

	records, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("invalid entry was stored: %+v", records)
	}
}

func TestListEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := List(&buf, openTestStore(t), ListOptions{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(buf.String(), "no saved records") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestListJSON(t *testing.T) {
	s := openTestStore(t)
	for _, name := range []string{"a", "b"} {
		if _, err := s.Append(vault.Entry{Name: name, Value: "v-" + name}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := List(&buf, s, ListOptions{JSON: true, Reveal: true}); err != nil {
		t.Fatalf("list: %v", err)
	}

	var got []vault.Record
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal %s: %v", buf.String(), err)
	}
	if len(got) != 2 || got[0].Name != "a" || got[1].Value != "v-b" {
		t.Errorf("json records = %+v", got)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Append(vault.Entry{Name: "x", Value: "1"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	var buf bytes.Buffer
	if err := Delete(&buf, s, "x"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(buf.String(), `deleted "x"`) {
		t.Errorf("output = %q", buf.String())
	}

	if err := Delete(&buf, s, "x"); !errors.Is(err, ErrNoMatch) {
		t.Errorf("second delete err = %v, want ErrNoMatch", err)
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "***"},
		{"pässwörd", "********"},
	}
	for _, tt := range tests {
		if got := Mask(tt.in); got != tt.want {
			t.Errorf("Mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
