// SPDX-License-Identifier: GPL-3.0-or-later

package closepool_test

import (
	"errors"
	"testing"

	"github.com/rbmk-project/dnsblock/closepool"
	"github.com/stretchr/testify/assert"
)

// recorder records the order in which resources are released.
type recorder struct {
	order []string
}

// closer returns a function releasing the named resource.
func (r *recorder) closer(name string, err error) func() error {
	return func() error {
		r.order = append(r.order, name)
		return err
	}
}

func TestPool(t *testing.T) {
	t.Run("releases in backward order", func(t *testing.T) {
		rec := &recorder{}
		pool := &closepool.Pool{}
		pool.AddFunc(rec.closer("listener", nil))
		pool.Add(closepool.Func(rec.closer("server", nil)))

		assert.NoError(t, pool.Close())
		assert.Equal(t, []string{"server", "listener"}, rec.order)
	})

	t.Run("joins errors and releases everything", func(t *testing.T) {
		rec := &recorder{}
		err1 := errors.New("first error")
		err2 := errors.New("second error")
		pool := &closepool.Pool{}
		pool.AddFunc(rec.closer("a", err1))
		pool.AddFunc(rec.closer("b", nil))
		pool.AddFunc(rec.closer("c", err2))

		err := pool.Close()
		assert.ErrorIs(t, err, err1)
		assert.ErrorIs(t, err, err2)
		assert.Equal(t, []string{"c", "b", "a"}, rec.order)
	})

	t.Run("second close is a no-op", func(t *testing.T) {
		rec := &recorder{}
		pool := &closepool.Pool{}
		pool.AddFunc(rec.closer("a", nil))

		assert.NoError(t, pool.Close())
		assert.NoError(t, pool.Close())
		assert.Equal(t, []string{"a"}, rec.order)
	})

	t.Run("empty pool", func(t *testing.T) {
		pool := &closepool.Pool{}
		assert.NoError(t, pool.Close())
	})
}
