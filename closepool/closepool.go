// SPDX-License-Identifier: GPL-3.0-or-later

// Package closepool allows pooling resources to release and
// releasing them in a single operation.
package closepool

import (
	"errors"
	"io"
	"slices"
	"sync"
)

// Func adapts a function to the [io.Closer] interface, which is
// handy for resources with a Shutdown method (e.g., DNS servers).
type Func func() error

var _ io.Closer = Func(nil)

// Close implements [io.Closer].
func (fx Func) Close() error {
	return fx()
}

// Pool allows pooling a set of [io.Closer].
//
// The zero value is ready to use.
type Pool struct {
	// handles contains the [io.Closer] to close.
	handles []io.Closer

	// mu provides mutual exclusion.
	mu sync.Mutex
}

// Add adds a given [io.Closer] to the pool.
func (p *Pool) Add(conn io.Closer) {
	p.mu.Lock()
	p.handles = append(p.handles, conn)
	p.mu.Unlock()
}

// AddFunc is like [*Pool.Add] but takes a function.
func (p *Pool) AddFunc(fx func() error) {
	p.Add(Func(fx))
}

// Close releases all the resources inside the pool iterating in
// backward order, so a resource registered after the resources it
// depends on is released first. The returned error is the join of
// all the errors that occurred. Calling Close again is a no-op.
func (p *Pool) Close() error {
	p.mu.Lock()
	handles := p.handles
	p.handles = nil
	p.mu.Unlock()

	var errv []error
	for _, handle := range slices.Backward(handles) {
		if err := handle.Close(); err != nil {
			errv = append(errv, err)
		}
	}
	return errors.Join(errv...)
}
