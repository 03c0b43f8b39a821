// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package predicate

import (
	"reflect"
	"strings"
)

// Record is an in-memory row keyed by logical field name.
//
// Scalars are plain values (string, int, bool) or pointers to them; nil or a
// missing key counts as NULL. Multi-valued fields are slices.
type Record map[string]any

// Match evaluates p against record with the same semantics [SQL] gives the database.
func Match(p Predicate, record Record) bool {
	switch p.Kind {
	case KindAnd:
		for _, child := range p.Children {
			if !Match(child, record) {
				return false
			}
		}
		return true

	case KindOr:
		for _, child := range p.Children {
			if Match(child, record) {
				return true
			}
		}
		return false

	case KindEquals:
		value, ok := scalar(record, p.Field)
		return ok && equal(value, p.Value)

	case KindContains:
		value, ok := scalar(record, p.Field)
		text, isText := value.(string)
		needle, _ := p.Value.(string)
		if !ok || !isText {
			return false
		}
		if p.CaseInsensitive {
			return strings.Contains(strings.ToLower(text), strings.ToLower(needle))
		}
		return strings.Contains(text, needle)

	case KindStartsWith:
		value, ok := scalar(record, p.Field)
		text, isText := value.(string)
		prefix, _ := p.Value.(string)
		return ok && isText && strings.HasPrefix(text, prefix)

	case KindInSet:
		value, ok := scalar(record, p.Field)
		if !ok {
			return false
		}
		for _, candidate := range elements(p.Values) {
			if equal(value, candidate) {
				return true
			}
		}
		return false

	case KindIntersects:
		for _, have := range elements(record[p.Field]) {
			for _, want := range elements(p.Values) {
				if equal(have, want) {
					return true
				}
			}
		}
		return false

	case KindIsEmpty:
		return (len(elements(record[p.Field])) == 0) == p.Expected

	case KindIsNull:
		_, ok := scalar(record, p.Field)
		return !ok == p.Expected
	}

	return false
}

// scalar returns the dereferenced field value, or false when it is NULL.
func scalar(record Record, field string) (any, bool) {
	value, ok := record[field]
	if !ok || value == nil {
		return nil, false
	}

	reflected := reflect.ValueOf(value)
	if reflected.Kind() == reflect.Pointer {
		if reflected.IsNil() {
			return nil, false
		}
		return reflected.Elem().Interface(), true
	}

	return value, true
}

// elements flattens any slice value into []any. Non-slices yield nil.
func elements(values any) []any {
	if values == nil {
		return nil
	}

	reflected := reflect.ValueOf(values)
	if reflected.Kind() != reflect.Slice && reflected.Kind() != reflect.Array {
		return nil
	}

	result := make([]any, reflected.Len())
	for i := range result {
		result[i] = reflected.Index(i).Interface()
	}
	return result
}

// equal compares two operands, treating all integer kinds as the same type.
func equal(a, b any) bool {
	left, leftIsInt := asInt64(a)
	right, rightIsInt := asInt64(b)
	if leftIsInt && rightIsInt {
		return left == right
	}
	return reflect.DeepEqual(a, b)
}

func asInt64(value any) (int64, bool) {
	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflected.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(reflected.Uint()), true
	}
	return 0, false
}
