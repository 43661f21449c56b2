// SPDX-License-Identifier: GPL-3.0-or-later

// Package domainlist loads the list of domains to check.
//
// The list is a JSON array, e.g., ["example.com", "example.org"]. Order
// and duplicates are preserved, since each entry is checked once. An
// element that is not a string does not invalidate the list: it becomes
// an [Entry] carrying [ErrNotString], which the caller records as a
// failed check.
package domainlist

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

var (
	// ErrMalformed indicates that the file is not valid JSON.
	ErrMalformed = errors.New("domainlist: malformed JSON")

	// ErrNotArray indicates that the top-level value is not an array.
	ErrNotArray = errors.New("domainlist: not a JSON array")

	// ErrNotString indicates that an element is not a string.
	ErrNotString = errors.New("domainlist: element is not a string")
)

// Entry is an element of the domain list.
type Entry struct {
	// Domain is the domain to check. For elements that are not
	// strings, it contains the element JSON text (e.g., "17").
	Domain string

	// Err is nil for strings and wraps [ErrNotString] otherwise.
	Err error
}

// Domains returns the Domain of each entry, in order.
func Domains(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Domain)
	}
	return out
}

// Load reads and parses the domain list at the given path.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("domainlist: %w", err)
	}
	return Parse(data)
}

// Parse parses a domain list.
func Parse(data []byte) ([]Entry, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformed
	}
	value := gjson.ParseBytes(data)
	if !value.IsArray() {
		return nil, fmt.Errorf("%w: found %s", ErrNotArray, value.Type.String())
	}
	entries := []Entry{}
	for idx, elem := range value.Array() {
		if elem.Type != gjson.String {
			entries = append(entries, Entry{
				Domain: elem.Raw,
				Err:    fmt.Errorf("%w: index %d: %s", ErrNotString, idx, elem.Raw),
			})
			continue
		}
		entries = append(entries, Entry{Domain: elem.Str})
	}
	return entries, nil
}
