// Package cli implements saltr's command-line subcommands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/zarlcorp/saltr/internal/secret"
	"github.com/zarlcorp/saltr/internal/vault"
	"golang.org/x/term"
)

// ErrNoMatch is returned by Delete when no record has the given name.
var ErrNoMatch = errors.New("no record with that name")

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// ReadPassword prompts on w and reads a line from stdin without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// CheckEntry rejects entries the vault should not store.
func CheckEntry(e vault.Entry) error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(e.Value) == "" {
		return errors.New("value is required")
	}
	return nil
}

// Generate prints a fresh secret and optionally copies it.
func Generate(w io.Writer, gen *secret.Generator, length int, copyIt bool) error {
	s := gen.Generate(length)
	fmt.Fprintln(w, s)

	if copyIt {
		if err := writeClipboard(s); err != nil {
			return fmt.Errorf("copy: %w", err)
		}
	}
	return nil
}

// Add validates e and appends it to the vault.
func Add(w io.Writer, s *vault.Store, e vault.Entry) error {
	if err := CheckEntry(e); err != nil {
		return err
	}

	db, err := s.Append(e)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "saved %q (%d records)\n", e.Name, db.Len())
	return nil
}

// ListOptions controls List output.
type ListOptions struct {
	JSON   bool
	Reveal bool
}

// List prints every record in insertion order.
func List(w io.Writer, s *vault.Store, opts ListOptions) error {
	records, err := s.List()
	if err != nil {
		return err
	}

	if !opts.Reveal {
		records = masked(records)
	}

	if opts.JSON {
		return printJSON(w, records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "no saved records")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tUSERNAME\tWEBSITE\tVALUE\tCREATED")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Username, r.Website, r.Value, r.CreatedAt)
	}
	return tw.Flush()
}

// Delete removes every record named name.
func Delete(w io.Writer, s *vault.Store, name string) error {
	removed, err := s.DeleteByName(name)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %q", ErrNoMatch, name)
	}

	fmt.Fprintf(w, "deleted %q\n", name)
	return nil
}

// Mask hides a secret behind one asterisk per character.
func Mask(value string) string {
	return strings.Repeat("*", len([]rune(value)))
}

func masked(records []vault.Record) []vault.Record {
	out := make([]vault.Record, len(records))
	for i, r := range records {
		r.Value = Mask(r.Value)
		out[i] = r
	}
	return out
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
