// Package lua provides Golua integration for go-minipaint.
// This file defines common error types used throughout the package.
package lua

import "errors"

var (
	// ErrNilRuntime is returned when a nil runtime is passed to a function that requires one.
	ErrNilRuntime = errors.New("runtime cannot be nil")

	// ErrNilSession is returned when a PaintAPI is created without a session.
	ErrNilSession = errors.New("session cannot be nil")

	// ErrResourceLimit is returned when a script exceeds its CPU or memory limit.
	ErrResourceLimit = errors.New("lua resource limit exceeded")
)
