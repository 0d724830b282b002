// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coins

import "fmt"

// ErrDeserialize signals a malformed record: a truncated buffer, a
// reserved script prefix, or any other defect an untrusted byte slice
// can carry. Callers distinguish it from programmer errors with
// IsDeserializeErr.
type ErrDeserialize string

func (e ErrDeserialize) Error() string {
	return string(e)
}

// IsDeserializeErr returns whether err is an ErrDeserialize.
func IsDeserializeErr(err error) bool {
	_, ok := err.(ErrDeserialize)
	return ok
}

func deserializeErrf(format string, args ...interface{}) error {
	return ErrDeserialize(fmt.Sprintf(format, args...))
}

// AssertError identifies an internal invariant violation — a caller
// misusing the API rather than a data error. It is always returned as
// a normal error value, never panicked, so a caller can recover from
// its own bug without unwinding the stack.
type AssertError string

func (e AssertError) Error() string {
	return "assertion failed: " + string(e)
}

// IsAssertErr returns whether err is an AssertError.
func IsAssertErr(err error) bool {
	_, ok := err.(AssertError)
	return ok
}

func assertf(format string, args ...interface{}) error {
	return AssertError(fmt.Sprintf(format, args...))
}
