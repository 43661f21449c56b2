// SPDX-License-Identifier: GPL-3.0-or-later

// Package resultset aggregates the records of a run and saves them.
//
// Records are kept in memory in the order in which they are added and
// saved exactly once, at the end of the run, replacing the destination
// file atomically. A failed save leaves any existing file untouched.
package resultset

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/google/renameio"
	"github.com/rbmk-project/dnsblock/checker"
)

// Set is an ordered collection of [*checker.Record].
//
// The zero value is ready to use. A [*Set] is not goroutine safe.
type Set struct {
	records []*checker.Record
}

// Summary counts the records by outcome.
type Summary struct {
	Total    int `json:"total"`
	Resolved int `json:"resolved"`
	Blocked  int `json:"blocked"`
	Failed   int `json:"failed"`
}

// Add appends a record to the set.
func (s *Set) Add(rec *checker.Record) {
	s.records = append(s.records, rec)
}

// Len returns the number of records.
func (s *Set) Len() int {
	return len(s.records)
}

// Records returns a copy of the records, in order.
func (s *Set) Records() []*checker.Record {
	return slices.Clone(s.records)
}

// Summary returns the [Summary] of the records.
func (s *Set) Summary() Summary {
	summary := Summary{Total: len(s.records)}
	for _, rec := range s.records {
		switch {
		case rec.Failed():
			summary.Failed++
		case rec.Blocked():
			summary.Resolved++
			summary.Blocked++
		default:
			summary.Resolved++
		}
	}
	return summary
}

// Marshal returns the records serialized as a JSON array indented
// using two spaces, and terminated by a newline.
func (s *Set) Marshal() ([]byte, error) {
	records := s.records
	if records == nil {
		records = []*checker.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save writes the records to path, replacing any existing file.
//
// We first write into a temporary file inside the same directory and
// then rename it over path, so readers observe either the old file or
// the complete new file. On failure, the temporary file is removed.
func (s *Set) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("resultset: %w", err)
	}

	pending, err := renameio.TempFile(filepath.Dir(path), path)
	if err != nil {
		return fmt.Errorf("resultset: %w", err)
	}
	defer pending.Cleanup()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("resultset: %w", err)
	}
	if err := pending.Chmod(0644); err != nil {
		return fmt.Errorf("resultset: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("resultset: %w", err)
	}
	return nil
}
