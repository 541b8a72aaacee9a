package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasguard/oasguard/guarderrors"
	"github.com/oasguard/oasguard/spec"
)

// widgetsAPI is the shared contract for pipeline tests. It exercises path
// parameters, required and constrained query parameters, referenced
// component schemas, and object and array request bodies.
const widgetsAPI = `
openapi: "3.0.0"
info:
  title: Widgets API
  version: "1.0"
paths:
  /widgets:
    get:
      operationId: listWidgets
      parameters:
        - name: status
          in: query
          required: true
          schema:
            type: string
            enum: [active, retired]
        - name: limit
          in: query
          schema:
            type: integer
            minimum: 1
            maximum: 100
        - name: tag
          in: query
          schema:
            type: string
            pattern: "^[a-z]+$"
            minLength: 1
            maxLength: 7
    post:
      operationId: createWidget
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/Widget"
  /widgets/{widgetId}:
    parameters:
      - name: widgetId
        in: path
        required: true
        schema:
          type: string
          format: uuid
    get:
      operationId: getWidget
    delete:
      operationId: deleteWidget
  /widgets/search:
    get:
      operationId: searchWidgets
      parameters:
        - name: filter
          in: query
          schema:
            $ref: "#/components/schemas/Filter"
  /widgets/batch:
    post:
      operationId: createWidgets
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/WidgetBatch"
  /animals:
    post:
      operationId: createAnimal
      requestBody:
        required: true
        content:
          application/json:
            schema:
              oneOf:
                - $ref: "#/components/schemas/Pet"
                - $ref: "#/components/schemas/Tagged"
  /files/{fileId}/versions/{versionId}:
    parameters:
      - name: fileId
        in: path
        required: true
        schema:
          type: string
          format: uuid
      - name: versionId
        in: path
        required: true
        schema:
          type: string
          format: uuid
    get:
      operationId: getFileVersion
components:
  schemas:
    Widget:
      type: object
      required: [id, name, age]
      properties:
        id:
          type: string
          format: uuid
        name:
          type: string
          minLength: 1
          maxLength: 7
        age:
          type: integer
          minimum: 0
          maximum: 150
        priority:
          type: integer
          enum: [1, 2, 3]
        labels:
          type: array
          minItems: 1
          maxItems: 2
    WidgetBatch:
      type: array
      minItems: 1
      maxItems: 2
      items:
        type: object
        required: [name]
        properties:
          name:
            type: string
    Pet:
      type: object
      required: [kind]
      properties:
        kind:
          type: string
    Tagged:
      type: object
      required: [tag]
      properties:
        tag:
          type: string
    Filter:
      type: object
      required: [q]
      properties:
        q:
          type: string
`

func mustValidator(t *testing.T, document string) *Validator {
	t.Helper()
	doc, err := spec.Parse(spec.WithBytes([]byte(document)))
	require.NoError(t, err)
	v, err := New(doc)
	require.NoError(t, err)
	return v
}

// requireFailure asserts err is a RequestError with the given phase and
// kind, and returns it for message assertions.
func requireFailure(t *testing.T, err error, phase guarderrors.Phase, kind guarderrors.Kind) *guarderrors.RequestError {
	t.Helper()
	require.Error(t, err)
	var reqErr *guarderrors.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, phase, reqErr.Phase)
	assert.Equal(t, kind, reqErr.Kind)
	return reqErr
}

func TestNew(t *testing.T) {
	t.Run("rejects nil document", func(t *testing.T) {
		_, err := New(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, guarderrors.ErrSpec)
	})

	t.Run("rejects incomplete document", func(t *testing.T) {
		_, err := New(&spec.Document{OpenAPI: "3.0.0"})
		require.Error(t, err)
		assert.ErrorIs(t, err, guarderrors.ErrSpec)
	})

	t.Run("rejects nil logger option", func(t *testing.T) {
		doc, err := spec.Parse(spec.WithBytes([]byte(widgetsAPI)))
		require.NoError(t, err)
		_, err = New(doc, WithLogger(nil))
		require.Error(t, err)
	})

	t.Run("exposes the document", func(t *testing.T) {
		v := mustValidator(t, widgetsAPI)
		assert.NotNil(t, v.Document())
		assert.Equal(t, "3.0.0", v.Document().OpenAPI)
	})
}

func TestMethodPhase(t *testing.T) {
	v := mustValidator(t, widgetsAPI)

	t.Run("unknown path", func(t *testing.T) {
		err := v.ValidateRequest(RequestFacts{PathTemplate: "/gadgets", Method: "GET"})
		reqErr := requireFailure(t, err, guarderrors.PhaseMethod, guarderrors.KindPathNotFound)
		assert.Contains(t, reqErr.Error(), "Method validation failed:")
		assert.Contains(t, reqErr.Message, "/gadgets")
		assert.ErrorIs(t, err, guarderrors.ErrPathNotFound)
	})

	t.Run("method not declared on path", func(t *testing.T) {
		err := v.ValidateRequest(RequestFacts{PathTemplate: "/widgets/{widgetId}", Method: "PATCH"})
		reqErr := requireFailure(t, err, guarderrors.PhaseMethod, guarderrors.KindMethodNotAllowed)
		assert.Contains(t, reqErr.Message, "PATCH")
		assert.ErrorIs(t, err, guarderrors.ErrMethodNotAllowed)
	})

	t.Run("method matching is case-insensitive", func(t *testing.T) {
		err := v.ValidateRequest(RequestFacts{
			PathTemplate:    "/widgets/{widgetId}",
			Method:          "get",
			LastPathSegment: "3c879336-6e95-4b26-ae6a-bc48a4f417b5",
		})
		assert.NoError(t, err)
	})

	t.Run("QUERY verb is rejected on a 3.0 document", func(t *testing.T) {
		err := v.ValidateRequest(RequestFacts{PathTemplate: "/widgets", Method: "QUERY"})
		requireFailure(t, err, guarderrors.PhaseMethod, guarderrors.KindMethodNotAllowed)
	})
}

func TestPathPhase(t *testing.T) {
	v := mustValidator(t, widgetsAPI)

	t.Run("valid uuid segment passes", func(t *testing.T) {
		err := v.ValidateRequest(RequestFacts{
			PathTemplate:    "/widgets/{widgetId}",
			Method:          "GET",
			LastPathSegment: "3c879336-6e95-4b26-ae6a-bc48a4f417b5",
		})
		assert.NoError(t, err)
	})

	t.Run("invalid uuid segment fails", func(t *testing.T) {
		err := v.ValidateRequest(RequestFacts{
			PathTemplate:    "/widgets/{widgetId}",
			Method:          "DELETE",
			LastPathSegment: "not-a-uuid",
		})
		reqErr := requireFailure(t, err, guarderrors.PhasePath, guarderrors.KindFormatViolation)
		assert.Contains(t, reqErr.Message, "not-a-uuid")
	})

	t.Run("only the final segment is checked", func(t *testing.T) {
		// Both path parameters validate against the last concrete
		// segment; earlier segments are never decomposed. This pins the
		// documented engine limitation.
		err := v.ValidateRequest(RequestFacts{
			PathTemplate:    "/files/{fileId}/versions/{versionId}",
			Method:          "GET",
			LastPathSegment: "8a6e0804-2bd0-4672-b79d-d97027f9071a",
		})
		assert.NoError(t, err)
	})
}

func TestValidateRequest_Idempotent(t *testing.T) {
	v := mustValidator(t, widgetsAPI)
	facts := RequestFacts{
		PathTemplate:    "/widgets/{widgetId}",
		Method:          "GET",
		LastPathSegment: "not-a-uuid",
	}

	first := v.ValidateRequest(facts)
	second := v.ValidateRequest(facts)
	require.Error(t, first)
	require.Error(t, second)
	assert.Equal(t, first.Error(), second.Error())
}

func TestQueryVerb32(t *testing.T) {
	const doc = `
openapi: "3.2.0"
info:
  title: Search API
  version: "1.0"
paths:
  /search:
    query:
      operationId: search
      parameters:
        - name: q
          in: query
          required: true
          schema:
            type: string
`
	v := mustValidator(t, doc)

	t.Run("QUERY verb resolves the query operation", func(t *testing.T) {
		err := v.ValidateRequest(RequestFacts{
			PathTemplate: "/search",
			Method:       "QUERY",
			QueryPairs:   map[string]string{"q": "widgets"},
		})
		assert.NoError(t, err)
	})

	t.Run("query operation parameters still bind", func(t *testing.T) {
		err := v.ValidateRequest(RequestFacts{PathTemplate: "/search", Method: "QUERY"})
		requireFailure(t, err, guarderrors.PhaseQuery, guarderrors.KindMissingRequiredParameter)
	})

	t.Run("GET is still undeclared", func(t *testing.T) {
		err := v.ValidateRequest(RequestFacts{PathTemplate: "/search", Method: "GET"})
		requireFailure(t, err, guarderrors.PhaseMethod, guarderrors.KindMethodNotAllowed)
	})
}

type stubSource struct {
	method  string
	path    string
	query   map[string]string
	segment string
	body    []byte
	bodyErr error
}

func (s stubSource) Method() string          { return s.method }
func (s stubSource) Path() string            { return s.path }
func (s stubSource) Query() map[string]string { return s.query }
func (s stubSource) LastPathSegment() string { return s.segment }
func (s stubSource) Body() ([]byte, error)   { return s.body, s.bodyErr }

func TestValidateSource(t *testing.T) {
	v := mustValidator(t, widgetsAPI)

	t.Run("valid source passes", func(t *testing.T) {
		err := v.ValidateSource(stubSource{
			method: "GET",
			path:   "/widgets",
			query:  map[string]string{"status": "active"},
		})
		assert.NoError(t, err)
	})

	t.Run("body read failure surfaces as-is", func(t *testing.T) {
		readErr := errors.New("connection reset")
		err := v.ValidateSource(stubSource{
			method:  "POST",
			path:    "/widgets",
			bodyErr: readErr,
		})
		assert.ErrorIs(t, err, readErr)
	})
}
