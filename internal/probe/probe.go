// Package probe carries the outcome of a single best-effort measurement.
//
// Every collector in streamdash degrades instead of failing: a missing disk
// mount, a dead process supervisor, or an absent playlist still produce a
// frame. Result keeps that contract while recording why a value is missing,
// so the renderer can show "N/A" and the reason instead of a silent zero.
package probe

import "github.com/rileyhilliard/streamdash/internal/errors"

// Result is either an available value or the reason it is unavailable.
type Result[T any] struct {
	Value T
	Err   error
}

// OK wraps an available value.
func OK[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Unavailable records why a value could not be read. Value is the zero value.
func Unavailable[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Available reports whether the value was read successfully.
func (r Result[T]) Available() bool {
	return r.Err == nil
}

// Or returns the value when available and def otherwise.
func (r Result[T]) Or(def T) T {
	if r.Err != nil {
		return def
	}
	return r.Value
}

// Reason is a one-line description of the failure, or "" when available.
func (r Result[T]) Reason() string {
	return errors.Reason(r.Err)
}
