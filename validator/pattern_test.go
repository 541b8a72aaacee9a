package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasguard/oasguard/guarderrors"
)

func TestCheckPattern(t *testing.T) {
	v := mustValidator(t, widgetsAPI)

	t.Run("absent pattern passes", func(t *testing.T) {
		assert.Nil(t, v.checkPattern("f", "anything", ""))
	})

	t.Run("matching string passes", func(t *testing.T) {
		assert.Nil(t, v.checkPattern("f", "abc", `^[a-z]+$`))
	})

	t.Run("unanchored pattern matches a substring", func(t *testing.T) {
		assert.Nil(t, v.checkPattern("f", "xx123yy", `[0-9]+`))
	})

	t.Run("mismatching string fails", func(t *testing.T) {
		err := v.checkPattern("f", "ABC", `^[a-z]+$`)
		require.NotNil(t, err)
		assert.Equal(t, guarderrors.KindPatternViolation, err.Kind)
		assert.Equal(t, "value 'ABC' for field 'f' does not match the required pattern '^[a-z]+$'", err.Message)
	})

	t.Run("non-string values are not subject to patterns", func(t *testing.T) {
		assert.Nil(t, v.checkPattern("f", 42, `^[a-z]+$`))
		assert.Nil(t, v.checkPattern("f", true, `^[a-z]+$`))
		assert.Nil(t, v.checkPattern("f", nil, `^[a-z]+$`))
	})

	t.Run("uncompilable pattern reports the contract defect", func(t *testing.T) {
		err := v.checkPattern("f", "abc", `[unclosed`)
		require.NotNil(t, err)
		assert.Equal(t, guarderrors.KindPatternCompileError, err.Kind)
		assert.Contains(t, err.Message, "[unclosed")
		assert.Contains(t, err.Message, "'f'")
	})

	t.Run("compiled patterns are cached", func(t *testing.T) {
		require.Nil(t, v.checkPattern("f", "abc", `^abc$`))
		_, ok := v.patterns.Load(`^abc$`)
		assert.True(t, ok)
	})
}
