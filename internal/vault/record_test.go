package vault

import (
	"testing"
	"time"
)

func TestNewRecordStampsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2025, 3, 9, 14, 5, 6, 999, loc)

	r := NewRecord(Entry{Name: "n", Value: "v"}, at)
	if r.CreatedAt != "2025-03-09 12:05:06 UTC" {
		t.Errorf("CreatedAt = %q", r.CreatedAt)
	}

	got, err := r.Created()
	if err != nil {
		t.Fatalf("created: %v", err)
	}
	if !got.Equal(at.Truncate(time.Second)) {
		t.Errorf("Created() = %v, want %v", got, at.Truncate(time.Second))
	}
}

func TestCreatedForeignFormat(t *testing.T) {
	r := Record{CreatedAt: "yesterday"}
	if _, err := r.Created(); err == nil {
		t.Error("expected parse error for foreign timestamp")
	}
}

func TestCountName(t *testing.T) {
	db := Database{Passwords: []Record{{Name: "X"}, {Name: "Y"}, {Name: "X"}}}
	if n := db.CountName("X"); n != 2 {
		t.Errorf("CountName(X) = %d, want 2", n)
	}
	if n := db.CountName("Z"); n != 0 {
		t.Errorf("CountName(Z) = %d, want 0", n)
	}
}

func TestAppendDoesNotAlias(t *testing.T) {
	base := Database{Passwords: make([]Record, 1, 4)}
	a := base.append(Record{Name: "a"})
	b := base.append(Record{Name: "b"})
	if a.Passwords[1].Name != "a" || b.Passwords[1].Name != "b" {
		t.Errorf("append shared backing array: a=%v b=%v", a.Passwords, b.Passwords)
	}
}
