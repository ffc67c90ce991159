// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

// Package vartype provides value wrappers that track whether a provider
// actually reported a metric. A zero humidity reading and a humidity reading
// that a free API tier simply omits must never be confused.
package vartype

import (
	"fmt"
)

// VarFloat64 is a type alias for Variable[float64], the wrapper used for
// optional numeric weather metrics.
type VarFloat64 = Variable[float64]

// Variable holds a value together with its initialization state.
type Variable[T any] struct {
	value T
	isset bool
}

// NewVariable creates a Variable initialized with the provided value.
func NewVariable[T any](value T) Variable[T] {
	return Variable[T]{
		isset: true,
		value: value,
	}
}

// Reset clears the value and marks the Variable as unreported.
func (v *Variable[T]) Reset() {
	var newVal T
	v.value = newVal
	v.isset = false
}

// Value retrieves the current value stored in the Variable.
func (v Variable[T]) Value() T {
	return v.value
}

// Set assigns the provided value and marks the Variable as reported.
func (v *Variable[T]) Set(val T) {
	v.value = val
	v.isset = true
}

// IsSet returns true if the provider reported a value.
func (v Variable[T]) IsSet() bool {
	return v.isset
}

// String returns the value as a string, or "N/A" when unreported.
func (v Variable[T]) String() string {
	if !v.isset {
		return "N/A"
	}
	return fmt.Sprint(v.value)
}
