package spec

import (
	"strings"

	"go.yaml.in/yaml/v4"
)

// Document represents a parsed OpenAPI 3.x contract.
// Supports OAS 3.0.x, 3.1.x, and 3.2.x.
// References:
// - OAS 3.0.0: https://spec.openapis.org/oas/v3.0.0.html
// - OAS 3.1.0: https://spec.openapis.org/oas/v3.1.0.html
// - OAS 3.2.0: https://spec.openapis.org/oas/v3.2.0.html
type Document struct {
	OpenAPI    string               `yaml:"openapi" json:"openapi"` // Required: "3.0.x", "3.1.x", or "3.2.x"
	Info       *Info                `yaml:"info" json:"info"`       // Required
	Servers    []*Server            `yaml:"servers,omitempty" json:"servers,omitempty"` // Informational, unused by validation
	Paths      map[string]*PathItem `yaml:"paths" json:"paths"`                         // Required non-empty
	Components *Components          `yaml:"components,omitempty" json:"components,omitempty"`
	Webhooks   map[string]*PathItem `yaml:"webhooks,omitempty" json:"webhooks,omitempty"` // OAS 3.1+, not consulted by request validation

	// OAS 3.1+ additions
	JSONSchemaDialect string `yaml:"jsonSchemaDialect,omitempty" json:"jsonSchemaDialect,omitempty"`

	// OAS 3.2+ additions
	Self string `yaml:"$self,omitempty" json:"$self,omitempty"` // Document identity/base URI

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Info provides metadata about the API
type Info struct {
	Title       string `yaml:"title" json:"title"`     // Required
	Version     string `yaml:"version" json:"version"` // Required
	Summary     string `yaml:"summary,omitempty" json:"summary,omitempty"` // OAS 3.2+
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Server describes a server hosting the API. Informational only.
type Server struct {
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// httpMethods are the uniform-interface method keys a PathItem may carry.
// QUERY (OAS 3.2) is deliberately not in this set; it parses into
// PathItem.Query because it is not a uniform-interface verb in the
// 3.0/3.1 sense.
var httpMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
	"trace":   true,
}

// PathItem describes the operations available on a single path template.
type PathItem struct {
	// Operations maps lower-cased HTTP method names to their operations.
	Operations map[string]*Operation `yaml:"-" json:"-"`

	// Query is the dedicated QUERY-verb operation (OAS 3.2+).
	Query *Operation `yaml:"-" json:"query,omitempty"`

	// Parameters apply to every operation on this path.
	Parameters []*Parameter `yaml:"-" json:"parameters,omitempty"`

	Summary     string `yaml:"-" json:"summary,omitempty"`
	Description string `yaml:"-" json:"description,omitempty"`

	// Extra captures any remaining fields, including extensions.
	Extra map[string]any `yaml:"-" json:"-"`
}

// UnmarshalYAML pulls the HTTP method keys out of the path item mapping into
// the Operations map, keeping query/parameters/metadata as their own fields.
func (p *PathItem) UnmarshalYAML(unmarshal func(any) error) error {
	var raw map[string]yaml.Node
	if err := unmarshal(&raw); err != nil {
		return err
	}

	for key, node := range raw {
		lower := strings.ToLower(key)
		switch {
		case httpMethods[lower]:
			var op Operation
			if err := node.Decode(&op); err != nil {
				return err
			}
			if p.Operations == nil {
				p.Operations = make(map[string]*Operation, len(raw))
			}
			p.Operations[lower] = &op
		case lower == "query":
			var op Operation
			if err := node.Decode(&op); err != nil {
				return err
			}
			p.Query = &op
		case lower == "parameters":
			if err := node.Decode(&p.Parameters); err != nil {
				return err
			}
		case lower == "summary":
			if err := node.Decode(&p.Summary); err != nil {
				return err
			}
		case lower == "description":
			if err := node.Decode(&p.Description); err != nil {
				return err
			}
		default:
			var v any
			if err := node.Decode(&v); err != nil {
				return err
			}
			if p.Extra == nil {
				p.Extra = make(map[string]any)
			}
			p.Extra[key] = v
		}
	}

	return nil
}

// Operation describes a single API operation on a path
type Operation struct {
	Summary     string       `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	OperationID string       `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Parameters  []*Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody *RequestBody `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Parameter locations.
const (
	InQuery       = "query"
	InHeader      = "header"
	InPath        = "path"
	InCookie      = "cookie"
	InQueryString = "querystring" // OAS 3.2+: a structured, JSON-encoded query value
)

// Parameter declares one input value for an operation.
//
// A parameter is populated one of three ways: an explicit $ref to a
// component parameter, a full nested Schema, or the legacy inline
// type/enum/pattern shorthand. When several are present, the ref drives
// required-field aggregation while any inline schema fields present are
// still checked.
type Parameter struct {
	Ref         string  `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Name        string  `yaml:"name,omitempty" json:"name,omitempty"`
	In          string  `yaml:"in,omitempty" json:"in,omitempty"`
	Required    bool    `yaml:"required,omitempty" json:"required,omitempty"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Example     any     `yaml:"example,omitempty" json:"example,omitempty"`
	Type        TypeSet `yaml:"type,omitempty" json:"type,omitempty"` // legacy inline shorthand
	Enum        []any   `yaml:"enum,omitempty" json:"enum,omitempty"` // legacy inline shorthand
	Pattern     string  `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Schema      *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// RequestBody describes a single request body
type RequestBody struct {
	Required bool                  `yaml:"required,omitempty" json:"required,omitempty"`
	Content  map[string]*MediaType `yaml:"content" json:"content"`
}

// MediaType provides the schema for one request body media type
type MediaType struct {
	Schema *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Components holds reusable objects referenced via $ref path fragments of
// the form "#/components/schemas/<Name>". Only the final path segment after
// the last '/' is used for lookup; this is a deliberate simplification, not
// full JSON Pointer resolution.
type Components struct {
	Schemas       map[string]*ComponentSchema `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	Parameters    map[string]*Parameter       `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBodies map[string]*RequestBody     `yaml:"requestBodies,omitempty" json:"requestBodies,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}
