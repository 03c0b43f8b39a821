// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with generic Map and
Filter helpers.

Both return nil for an empty input, so optional list fields stay absent
instead of serializing as [].
*/
package slice

// Map applies transform to every element of input.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if len(input) == 0 {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Filter returns the elements of input for which keep reports true, in order.
func Filter[T any](input []T, keep func(T) bool) []T {
	var result []T
	for _, v := range input {
		if keep(v) {
			result = append(result, v)
		}
	}

	return result
}

// As converts between string-kinded types, e.g. []string to []RangeCategory.
func As[U ~string, T ~string](input []T) []U {
	return Map(input, func(v T) U { return U(v) })
}
