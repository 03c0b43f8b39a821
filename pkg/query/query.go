// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses URL query parameters into typed values.
//
// Every helper is lenient: malformed entries are dropped instead of failing
// the request.
package query

import (
	"strconv"
	"strings"
)

// IntSlice parses a slice of string values from URL query parameters
// into a slice of integers. Invalid entries are ignored safely.
func IntSlice(vals []string) []int {
	var res []int
	for _, v := range List(vals) {
		if i, err := strconv.Atoi(v); err == nil {
			res = append(res, i)
		}
	}
	return res
}

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// List flattens repeated and comma-separated values:
// ?class=wizard&class=cleric,bard yields [wizard cleric bard].
func List(vals []string) []string {
	var res []string
	for _, v := range vals {
		res = append(res, StringSlice(v)...)
	}
	return res
}

// Bool parses a tri-state flag. A missing or unparseable value returns nil.
func Bool(val string) *bool {
	if val == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		return nil
	}
	return &parsed
}
