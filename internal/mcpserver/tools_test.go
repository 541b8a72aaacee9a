package mcpserver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstore = `
openapi: "3.0.0"
info:
  title: Petstore
  version: "1.0"
paths:
  /pets/{petId}:
    get:
      parameters:
        - name: petId
          in: path
          required: true
          schema:
            type: string
            format: uuid
  /pets:
    post:
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/Pet"
components:
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name:
          type: string
`

func TestHandleCheckSpec(t *testing.T) {
	t.Run("inline content parses", func(t *testing.T) {
		result, out, err := handleCheckSpec(context.Background(), nil, checkSpecInput{
			Spec: specInput{Content: petstore},
		})
		require.NoError(t, err)
		require.Nil(t, result)
		assert.True(t, out.Valid)
		assert.Equal(t, "3.0.0", out.Version)
		assert.Equal(t, 2, out.Paths)
	})

	t.Run("file path parses", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "petstore.yaml")
		require.NoError(t, os.WriteFile(path, []byte(petstore), 0o600))

		result, out, err := handleCheckSpec(context.Background(), nil, checkSpecInput{
			Spec: specInput{Path: path},
		})
		require.NoError(t, err)
		require.Nil(t, result)
		assert.True(t, out.Valid)
	})

	t.Run("incomplete document reports the field", func(t *testing.T) {
		result, out, err := handleCheckSpec(context.Background(), nil, checkSpecInput{
			Spec: specInput{Content: `{"openapi": "3.0.0", "info": {"title": "x", "version": "1"}}`},
		})
		require.NoError(t, err)
		require.Nil(t, result)
		assert.False(t, out.Valid)
		assert.Equal(t, "paths", out.Field)
		assert.NotEmpty(t, out.Error)
	})

	t.Run("missing spec input is a tool error", func(t *testing.T) {
		result, _, err := handleCheckSpec(context.Background(), nil, checkSpecInput{})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
	})

	t.Run("both path and content is a tool error", func(t *testing.T) {
		result, _, err := handleCheckSpec(context.Background(), nil, checkSpecInput{
			Spec: specInput{Path: "x.yaml", Content: petstore},
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
	})
}

func TestHandleCheckRequest(t *testing.T) {
	check := func(t *testing.T, input checkRequestInput) checkRequestOutput {
		t.Helper()
		input.Spec = specInput{Content: petstore}
		result, out, err := handleCheckRequest(context.Background(), nil, input)
		require.NoError(t, err)
		require.Nil(t, result)
		return out
	}

	t.Run("valid request passes", func(t *testing.T) {
		out := check(t, checkRequestInput{
			Method:      "GET",
			Path:        "/pets/{petId}",
			LastSegment: "3c879336-6e95-4b26-ae6a-bc48a4f417b5",
		})
		assert.True(t, out.Valid)
		assert.Empty(t, out.Phase)
	})

	t.Run("path phase failure is reported", func(t *testing.T) {
		out := check(t, checkRequestInput{
			Method:      "GET",
			Path:        "/pets/{petId}",
			LastSegment: "not-a-uuid",
		})
		assert.False(t, out.Valid)
		assert.Equal(t, "Path", out.Phase)
		assert.Equal(t, "format_violation", out.Kind)
		assert.Equal(t, "petId", out.Field)
	})

	t.Run("body phase failure is reported", func(t *testing.T) {
		out := check(t, checkRequestInput{
			Method: "POST",
			Path:   "/pets",
			Body:   `{"tag": "stray"}`,
		})
		assert.False(t, out.Valid)
		assert.Equal(t, "Body", out.Phase)
		assert.Equal(t, "missing_required_parameter", out.Kind)
	})

	t.Run("unknown path fails in the method phase", func(t *testing.T) {
		out := check(t, checkRequestInput{Method: "GET", Path: "/cars"})
		assert.False(t, out.Valid)
		assert.Equal(t, "Method", out.Phase)
	})
}

func TestSanitizeError(t *testing.T) {
	assert.Equal(t, "", sanitizeError(nil))
	assert.Equal(t, "open <path>: no such file",
		sanitizeError(errors.New("open /home/user/secret/openapi.yaml: no such file")))
}
