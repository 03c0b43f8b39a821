// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer builds and dereferences the optional (*bool, *string) fields
of spell filters and records.
*/
package pointer

// To returns a pointer to v, e.g. pointer.To(true) for a tri-state filter.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
