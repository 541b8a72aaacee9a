package spec

import "fmt"

// Type tags recognized by the validation engine.
const (
	TypeObject  = "object"
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeArray   = "array"
	TypeBoolean = "boolean"
	TypeNull    = "null"
	TypeBinary  = "binary"
	TypeBase64  = "base64"
)

// TypeSet holds a schema's type as either a single tag or a union of tags.
// A union means the value must match at least one listed tag (logical OR).
// An empty TypeSet means no type constraint was declared.
type TypeSet []string

// UnmarshalYAML accepts both the scalar form ("type: string") and the
// union form ("type: [string, "null"]").
func (t *TypeSet) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*t = TypeSet{single}
		return nil
	}

	var union []string
	if err := unmarshal(&union); err != nil {
		return fmt.Errorf("type must be a string or a list of strings: %w", err)
	}
	*t = TypeSet(union)
	return nil
}

// IsUnion reports whether more than one tag was declared.
func (t TypeSet) IsUnion() bool {
	return len(t) > 1
}

// Single returns the sole declared tag, or "" when the set is empty or a union.
func (t TypeSet) Single() string {
	if len(t) == 1 {
		return t[0]
	}
	return ""
}

// Contains reports whether tag is one of the declared tags.
func (t TypeSet) Contains(tag string) bool {
	for _, v := range t {
		if v == tag {
			return true
		}
	}
	return false
}

// Schema describes the shape of a value declared inline on a parameter or a
// request body media type.
type Schema struct {
	Type        TypeSet              `yaml:"type,omitempty" json:"type,omitempty"`
	Format      string               `yaml:"format,omitempty" json:"format,omitempty"`
	Pattern     string               `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Title       string               `yaml:"title,omitempty" json:"title,omitempty"`
	Description string               `yaml:"description,omitempty" json:"description,omitempty"`
	Enum        []any                `yaml:"enum,omitempty" json:"enum,omitempty"`
	Properties  map[string]*Property `yaml:"properties,omitempty" json:"properties,omitempty"`
	Items       *Schema              `yaml:"items,omitempty" json:"items,omitempty"`
	Required    []string             `yaml:"required,omitempty" json:"required,omitempty"`
	Ref         string               `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	OneOf       []*SchemaRef         `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	AllOf       []*SchemaRef         `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	Example     any                  `yaml:"example,omitempty" json:"example,omitempty"`

	MinItems  *uint64  `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	MaxItems  *uint64  `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	MinLength *uint64  `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLength *uint64  `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	Minimum   *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	Maximum   *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
}

// SchemaRef is one entry of a oneOf or allOf list: usually a bare $ref,
// occasionally an inline fragment with its own type and properties.
type SchemaRef struct {
	Ref         string               `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Type        TypeSet              `yaml:"type,omitempty" json:"type,omitempty"`
	Description string               `yaml:"description,omitempty" json:"description,omitempty"`
	Properties  map[string]*Property `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// Property is the recursive per-field shape used inside properties maps,
// both on inline schemas and on component schemas.
type Property struct {
	Type        TypeSet              `yaml:"type,omitempty" json:"type,omitempty"`
	Format      string               `yaml:"format,omitempty" json:"format,omitempty"`
	Pattern     string               `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Description string               `yaml:"description,omitempty" json:"description,omitempty"`
	Enum        []any                `yaml:"enum,omitempty" json:"enum,omitempty"`
	Properties  map[string]*Property `yaml:"properties,omitempty" json:"properties,omitempty"`
	Items       *Property            `yaml:"items,omitempty" json:"items,omitempty"`
	Required    []string             `yaml:"required,omitempty" json:"required,omitempty"`
	Example     any                  `yaml:"example,omitempty" json:"example,omitempty"`

	MinItems  *uint64  `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	MaxItems  *uint64  `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	MinLength *uint64  `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLength *uint64  `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	Minimum   *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	Maximum   *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
}

// ComponentSchema is the simplified shape stored under components.schemas.
type ComponentSchema struct {
	Title       string               `yaml:"title,omitempty" json:"title,omitempty"`
	Description string               `yaml:"description,omitempty" json:"description,omitempty"`
	Type        TypeSet              `yaml:"type,omitempty" json:"type,omitempty"`
	Items       *ComponentSchema     `yaml:"items,omitempty" json:"items,omitempty"`
	Properties  map[string]*Property `yaml:"properties,omitempty" json:"properties,omitempty"`
	Required    []string             `yaml:"required,omitempty" json:"required,omitempty"`
	OneOf       []*SchemaRef         `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	AllOf       []*SchemaRef         `yaml:"allOf,omitempty" json:"allOf,omitempty"`

	MinItems *uint64 `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	MaxItems *uint64 `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
}
