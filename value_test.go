package deepmerge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lambda-feedback/deepmerge"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected deepmerge.Kind
	}{
		{"nil", nil, deepmerge.KindScalar},
		{"string", "hello", deepmerge.KindScalar},
		{"bool", true, deepmerge.KindScalar},
		{"int", 42, deepmerge.KindScalar},
		{"int64", int64(42), deepmerge.KindScalar},
		{"uint8", uint8(1), deepmerge.KindScalar},
		{"float64", 4.2, deepmerge.KindScalar},
		{"sequence", []any{1, 2}, deepmerge.KindSequence},
		{"mapping", map[string]any{"a": 1}, deepmerge.KindMapping},
		{"typed slice", []string{"a"}, deepmerge.KindOpaque},
		{"typed map", map[string]int{"a": 1}, deepmerge.KindOpaque},
		{"func", func() {}, deepmerge.KindOpaque},
		{"struct", struct{}{}, deepmerge.KindOpaque},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deepmerge.KindOf(tt.value))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "scalar", deepmerge.KindScalar.String())
	assert.Equal(t, "sequence", deepmerge.KindSequence.String())
	assert.Equal(t, "mapping", deepmerge.KindMapping.String())
	assert.Equal(t, "opaque", deepmerge.KindOpaque.String())
	assert.Equal(t, "Kind(42)", deepmerge.Kind(42).String())
}

func TestSequenceMode_String(t *testing.T) {
	assert.Equal(t, "replace", deepmerge.SequenceReplace.String())
	assert.Equal(t, "merge", deepmerge.SequenceMerge.String())
	assert.Equal(t, "SequenceMode(42)", deepmerge.SequenceMode(42).String())
}
