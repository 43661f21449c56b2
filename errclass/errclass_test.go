// SPDX-License-Identifier: GPL-3.0-or-later

package errclass

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rbmk-project/dnscore"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	// testcase is a test case implemented by this function.
	type testcase struct {
		name   string
		input  error
		expect string
	}

	// start with a test case for the nil error
	var tests = []testcase{
		{
			name:   "nil",
			input:  nil,
			expect: "",
		},
	}

	// add tests for the dnscore errors
	for _, entry := range dnsErrors {
		tests = append(tests, testcase{
			name:   fmt.Sprintf("wrapped %v", entry.err),
			input:  fmt.Errorf("lookup example.com on 8.8.8.8:53: %w", entry.err),
			expect: entry.class,
		})
	}

	tests = append(tests, testcase{
		name:   "REFUSED",
		input:  errors.New("lookup example.com on 8.8.8.8:53: query refused"),
		expect: EDNS_REFUSED,
	})

	// add tests for errors classified by the common package
	tests = append(tests, testcase{
		name:   "deadline exceeded",
		input:  fmt.Errorf("lookup example.com on 8.8.8.8:53: %w", context.DeadlineExceeded),
		expect: ETIMEDOUT,
	})

	// add tests for joined errors
	tests = append(tests, testcase{
		name: "joined errors use the first classifiable entry",
		input: errors.Join(
			errors.New("something weird"),
			fmt.Errorf("lookup example.com on 1.1.1.1:53: %w", dnscore.ErrServerTemporarilyMisbehaving),
			fmt.Errorf("lookup example.com on 8.8.8.8:53: %w", dnscore.ErrInvalidResponse),
		),
		expect: EDNS_SERVFAIL,
	})
	tests = append(tests, testcase{
		name:   "joined unknown errors",
		input:  errors.Join(errors.New("a"), errors.New("b")),
		expect: EGENERIC,
	})

	// add test for unknown error
	tests = append(tests, testcase{
		name:   "unknown error",
		input:  errors.New("unknown error"),
		expect: EGENERIC,
	})

	// run all tests
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, New(tt.input))
		})
	}
}

func TestNewDistinguishesResponseCodes(t *testing.T) {
	servfail := fmt.Errorf("x: %w", dnscore.ErrServerTemporarilyMisbehaving)
	notimp := fmt.Errorf("x: %w", dnscore.ErrServerMisbehaving)
	assert.Equal(t, EDNS_SERVFAIL, New(servfail))
	assert.Equal(t, EDNS_BADRCODE, New(notimp))
}
