// SPDX-License-Identifier: GPL-3.0-or-later

package runner

import "fmt"

// StartupError means we could not load the domain list.
type StartupError struct {
	// Path is the path of the domain list.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements error.
func (e *StartupError) Error() string {
	return fmt.Sprintf("cannot load domains from %s: %s", e.Path, e.Err.Error())
}

// Unwrap returns the underlying error.
func (e *StartupError) Unwrap() error {
	return e.Err
}

// PersistenceError means we could not save the results.
type PersistenceError struct {
	// Path is the path of the results.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements error.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("cannot save results to %s: %s", e.Path, e.Err.Error())
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}
