// Package vault stores credential records in a single plaintext JSON file.
//
// The file is the only state: every read decodes it from scratch and every
// mutation rewrites it wholesale. Records are kept in insertion order.
package vault

import "time"

// TimeLayout is the fixed textual format of Record.CreatedAt.
const TimeLayout = "2006-01-02 15:04:05 UTC"

// DefaultFileName is the conventional name of a vault file.
const DefaultFileName = "passwords.json"

// Entry is the caller-supplied part of a record. The store stamps the
// creation time when it turns an Entry into a Record.
type Entry struct {
	Name     string
	Value    string
	Website  string
	Username string
	Notes    string
}

// Record is one named secret plus its metadata.
// Name is the lookup key but is not unique.
type Record struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Website   string `json:"website"`
	Username  string `json:"username"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at"`
}

// NewRecord builds a record from e stamped with t.
func NewRecord(e Entry, t time.Time) Record {
	return Record{
		Name:      e.Name,
		Value:     e.Value,
		Website:   e.Website,
		Username:  e.Username,
		Notes:     e.Notes,
		CreatedAt: Stamp(t),
	}
}

// Stamp formats t in TimeLayout.
func Stamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Created parses CreatedAt. Files written by other tools may carry a
// different format, in which case an error is returned.
func (r Record) Created() (time.Time, error) {
	return time.Parse(TimeLayout, r.CreatedAt)
}

// Database is the ordered collection of records held in one vault file.
type Database struct {
	Passwords []Record `json:"passwords"`
}

// Len returns the number of records.
func (d Database) Len() int {
	return len(d.Passwords)
}

// Records returns the records in insertion order.
func (d Database) Records() []Record {
	return d.Passwords
}

// append returns a copy of d with r added at the end.
func (d Database) append(r Record) Database {
	out := make([]Record, 0, len(d.Passwords)+1)
	out = append(out, d.Passwords...)
	out = append(out, r)
	return Database{Passwords: out}
}

// withoutName returns a copy of d without any record named name.
func (d Database) withoutName(name string) Database {
	out := make([]Record, 0, len(d.Passwords))
	for _, r := range d.Passwords {
		if r.Name != name {
			out = append(out, r)
		}
	}
	return Database{Passwords: out}
}

// CountName returns how many records are named name.
func (d Database) CountName(name string) int {
	n := 0
	for _, r := range d.Passwords {
		if r.Name == name {
			n++
		}
	}
	return n
}
