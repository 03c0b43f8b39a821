// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package predicate defines a small boolean condition tree that search filters
compile into and storage layers execute.

A [Predicate] is a tagged node: seven field conditions (Equals, Contains, InSet,
Intersects, StartsWith, IsEmpty, IsNull) and two combinators (And, Or).

Consumers:

  - SQL: Renders a tree into a parameterised PostgreSQL WHERE expression.
  - Match: Evaluates a tree against an in-memory [Record].

Trees are plain values. They hold no references to shared state and may be
passed between goroutines freely.
*/
package predicate

import (
	"fmt"
	"strings"
)

// # Node Kinds

// Kind identifies the variant of a [Predicate] node.
type Kind uint8

const (
	KindAnd Kind = iota
	KindOr
	KindEquals
	KindContains
	KindInSet
	KindIntersects
	KindStartsWith
	KindIsEmpty
	KindIsNull
)

// String returns the constructor name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAnd:
		return "And"
	case KindOr:
		return "Or"
	case KindEquals:
		return "Equals"
	case KindContains:
		return "Contains"
	case KindInSet:
		return "InSet"
	case KindIntersects:
		return "Intersects"
	case KindStartsWith:
		return "StartsWith"
	case KindIsEmpty:
		return "IsEmpty"
	case KindIsNull:
		return "IsNull"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// # Tree Node

// Predicate is one node of a condition tree.
//
// Only the fields relevant to Kind are populated; the constructors below are
// the supported way to build nodes.
type Predicate struct {
	Kind  Kind
	Field string

	// Value is the operand of Equals, Contains and StartsWith.
	Value any

	// Values is the operand set of InSet and Intersects (a typed slice such as []int or []string).
	Values any

	// CaseInsensitive applies to Contains.
	CaseInsensitive bool

	// Expected is the wanted truth value of IsEmpty and IsNull.
	Expected bool

	// Children of And and Or, in order.
	Children []Predicate
}

// # Constructors

// Equals matches records whose field equals value.
func Equals(field string, value any) Predicate {
	return Predicate{Kind: KindEquals, Field: field, Value: value}
}

// Contains matches records whose string field contains value.
func Contains(field, value string, caseInsensitive bool) Predicate {
	return Predicate{Kind: KindContains, Field: field, Value: value, CaseInsensitive: caseInsensitive}
}

// InSet matches records whose scalar field equals one of values.
func InSet[T any](field string, values []T) Predicate {
	return Predicate{Kind: KindInSet, Field: field, Values: values}
}

// Intersects matches records whose multi-valued field shares at least one element with values.
func Intersects[T any](field string, values []T) Predicate {
	return Predicate{Kind: KindIntersects, Field: field, Values: values}
}

// StartsWith matches records whose string field begins with literal.
func StartsWith(field, literal string) Predicate {
	return Predicate{Kind: KindStartsWith, Field: field, Value: literal}
}

// IsEmpty matches records where the emptiness of a multi-valued field equals expected.
func IsEmpty(field string, expected bool) Predicate {
	return Predicate{Kind: KindIsEmpty, Field: field, Expected: expected}
}

// IsNull matches records where the null-ness of a scalar field equals expected.
func IsNull(field string, expected bool) Predicate {
	return Predicate{Kind: KindIsNull, Field: field, Expected: expected}
}

// And matches when every child matches. And() with no children matches everything.
func And(children ...Predicate) Predicate {
	return Predicate{Kind: KindAnd, Children: normalize(children)}
}

// Or matches when at least one child matches. Or() with no children matches nothing.
func Or(children ...Predicate) Predicate {
	return Predicate{Kind: KindOr, Children: normalize(children)}
}

// normalize keeps empty child lists nil so that And() compares equal to And([]...).
func normalize(children []Predicate) []Predicate {
	if len(children) == 0 {
		return nil
	}
	return children
}

// # Inspection

// IsMatchAll reports whether p is an And node without children.
func (p Predicate) IsMatchAll() bool {
	return p.Kind == KindAnd && len(p.Children) == 0
}

// String renders the tree in constructor notation, e.g.
//
//	And[Contains(name,"fire",ci=true), Or[StartsWith(range,"Self")]]
func (p Predicate) String() string {
	var builder strings.Builder
	p.write(&builder)
	return builder.String()
}

func (p Predicate) write(builder *strings.Builder) {
	switch p.Kind {
	case KindAnd, KindOr:
		builder.WriteString(p.Kind.String())
		builder.WriteByte('[')
		for i, child := range p.Children {
			if i > 0 {
				builder.WriteString(", ")
			}
			child.write(builder)
		}
		builder.WriteByte(']')
	case KindContains:
		fmt.Fprintf(builder, "Contains(%s,%q,ci=%t)", p.Field, p.Value, p.CaseInsensitive)
	case KindInSet, KindIntersects:
		fmt.Fprintf(builder, "%s(%s,%v)", p.Kind, p.Field, p.Values)
	case KindIsEmpty, KindIsNull:
		fmt.Fprintf(builder, "%s(%s,%t)", p.Kind, p.Field, p.Expected)
	case KindStartsWith:
		fmt.Fprintf(builder, "StartsWith(%s,%q)", p.Field, p.Value)
	default:
		fmt.Fprintf(builder, "%s(%s,%v)", p.Kind, p.Field, p.Value)
	}
}

// Fields returns the distinct field names referenced by p, in first-seen order.
func (p Predicate) Fields() []string {
	seen := make(map[string]struct{})
	var fields []string

	var walk func(node Predicate)
	walk = func(node Predicate) {
		if node.Kind == KindAnd || node.Kind == KindOr {
			for _, child := range node.Children {
				walk(child)
			}
			return
		}
		if _, ok := seen[node.Field]; !ok {
			seen[node.Field] = struct{}{}
			fields = append(fields, node.Field)
		}
	}
	walk(p)

	return fields
}
