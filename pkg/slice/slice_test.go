// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/spellbook/pkg/slice"
)

type school string

/*
TestMap_Filter covers the transform, ordering and empty-input behaviour.
*/
func TestMap_Filter(t *testing.T) {
	names := []string{"Fireball", "Fire Bolt", "Shield"}

	assert.Equal(t, []int{8, 9, 6}, slice.Map(names, func(name string) int { return len(name) }))
	assert.Equal(t, []string{"Fireball", "Fire Bolt"}, slice.Filter(names, func(name string) bool {
		return strings.HasPrefix(name, "Fire")
	}))

	assert.Nil(t, slice.Map([]string{}, strings.ToUpper))
	assert.Nil(t, slice.Filter(names, func(string) bool { return false }))
}

/*
TestAs converts named string slices.
*/
func TestAs(t *testing.T) {
	assert.Equal(t, []school{"evocation", "abjuration"}, slice.As[school]([]string{"evocation", "abjuration"}))
	assert.Nil(t, slice.As[school]([]string(nil)))
}
