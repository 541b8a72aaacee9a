package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasguard/oasguard/spec"
)

func uintPtr(v uint64) *uint64    { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestCheckType(t *testing.T) {
	t.Run("empty type set always passes", func(t *testing.T) {
		assert.Nil(t, checkType("f", 42, nil))
	})

	tests := []struct {
		name  string
		value any
		types spec.TypeSet
		ok    bool
	}{
		{name: "string accepts string", value: "a", types: spec.TypeSet{spec.TypeString}, ok: true},
		{name: "string rejects number", value: json.Number("1"), types: spec.TypeSet{spec.TypeString}, ok: false},
		{name: "integer accepts json number", value: json.Number("42"), types: spec.TypeSet{spec.TypeInteger}, ok: true},
		{name: "integer rejects fractional number", value: json.Number("1.5"), types: spec.TypeSet{spec.TypeInteger}, ok: false},
		{name: "integer accepts integral float", value: 3.0, types: spec.TypeSet{spec.TypeInteger}, ok: true},
		{name: "integer coerces numeric string", value: "42", types: spec.TypeSet{spec.TypeInteger}, ok: true},
		{name: "integer rejects word string", value: "lots", types: spec.TypeSet{spec.TypeInteger}, ok: false},
		{name: "number coerces numeric string", value: "1.5", types: spec.TypeSet{spec.TypeNumber}, ok: true},
		{name: "boolean accepts bool", value: true, types: spec.TypeSet{spec.TypeBoolean}, ok: true},
		{name: "boolean coerces literal string", value: "False", types: spec.TypeSet{spec.TypeBoolean}, ok: true},
		{name: "boolean rejects other strings", value: "yes", types: spec.TypeSet{spec.TypeBoolean}, ok: false},
		{name: "array accepts slice", value: []any{1}, types: spec.TypeSet{spec.TypeArray}, ok: true},
		{name: "object accepts map", value: map[string]any{}, types: spec.TypeSet{spec.TypeObject}, ok: true},
		{name: "null accepts nil", value: nil, types: spec.TypeSet{spec.TypeNull}, ok: true},
		{name: "null rejects value", value: "a", types: spec.TypeSet{spec.TypeNull}, ok: false},
		{name: "base64 accepts encoded string", value: "aGVsbG8=", types: spec.TypeSet{spec.TypeBase64}, ok: true},
		{name: "base64 rejects blank string", value: "  ", types: spec.TypeSet{spec.TypeBase64}, ok: false},
		{name: "base64 rejects undecodable string", value: "!!!", types: spec.TypeSet{spec.TypeBase64}, ok: false},
		{name: "binary accepts string", value: "raw", types: spec.TypeSet{spec.TypeBinary}, ok: true},
		{name: "unrecognized tag does not bind", value: 42, types: spec.TypeSet{"custom"}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkType("f", tt.value, tt.types)
			if tt.ok {
				assert.Nil(t, err)
			} else {
				assert.NotNil(t, err)
			}
		})
	}
}

func TestCheckType_Union(t *testing.T) {
	union := spec.TypeSet{spec.TypeString, spec.TypeNull}

	t.Run("matches first branch", func(t *testing.T) {
		assert.Nil(t, checkType("f", "a", union))
	})

	t.Run("matches second branch", func(t *testing.T) {
		assert.Nil(t, checkType("f", nil, union))
	})

	t.Run("matches no branch", func(t *testing.T) {
		err := checkType("f", json.Number("1"), union)
		require.NotNil(t, err)
		assert.Contains(t, err.Message, "union types [string, null]")
	})

	t.Run("union membership is strict", func(t *testing.T) {
		// String coercion applies to single tags only; "42" does not
		// satisfy an integer branch of a union.
		err := checkType("f", "42", spec.TypeSet{spec.TypeInteger, spec.TypeNull})
		assert.NotNil(t, err)
	})
}

func TestCheckStringLength(t *testing.T) {
	assert.Nil(t, checkStringLength("f", "example", uintPtr(1), uintPtr(7)))
	assert.Nil(t, checkStringLength("f", "example", nil, nil))

	err := checkStringLength("f", "", uintPtr(1), nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "at least 1")

	err = checkStringLength("f", "example-100", nil, uintPtr(7))
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "at most 7")
}

func TestCheckNumericRange(t *testing.T) {
	assert.Nil(t, checkNumericRange("f", 5, floatPtr(1), floatPtr(10)))
	assert.Nil(t, checkNumericRange("f", 1, floatPtr(1), nil))
	assert.Nil(t, checkNumericRange("f", 10, nil, floatPtr(10)))

	err := checkNumericRange("f", 0.5, floatPtr(1), nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, ">= 1")

	err = checkNumericRange("f", 10.5, nil, floatPtr(10))
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "<= 10")
}

func TestCheckArrayLength(t *testing.T) {
	assert.Nil(t, checkArrayLength("f", 2, uintPtr(1), uintPtr(2)))

	err := checkArrayLength("f", 0, uintPtr(1), nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "at least 1")

	err = checkArrayLength("f", 3, nil, uintPtr(2))
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "at most 2")
}
