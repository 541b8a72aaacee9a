package validator

import (
	"strings"

	"github.com/oasguard/oasguard/guarderrors"
	"github.com/oasguard/oasguard/spec"
)

// maxNestingDepth bounds recursive property validation. Component graphs
// cannot express reference cycles in this model, but a deeply nested (or
// hostile) body could otherwise recurse without limit.
const maxNestingDepth = 64

// collectRefs extracts every $ref string reachable from a schema node: its
// own $ref plus the $ref of each oneOf and allOf entry, one level deep.
// Refs nested inside a referenced schema resolve lazily when that schema
// is itself looked up, not eagerly flattened.
func collectRefs(schema *spec.Schema) []string {
	if schema == nil {
		return nil
	}

	var refs []string
	if schema.Ref != "" {
		refs = append(refs, schema.Ref)
	}
	for _, entry := range schema.OneOf {
		if entry != nil && entry.Ref != "" {
			refs = append(refs, entry.Ref)
		}
	}
	for _, entry := range schema.AllOf {
		if entry != nil && entry.Ref != "" {
			refs = append(refs, entry.Ref)
		}
	}
	return refs
}

// refName reduces a reference like "#/components/schemas/User" to its
// final path segment. This is a deliberate simplification, not full JSON
// Pointer resolution.
func refName(ref string) string {
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}

// componentSchemaFor returns the first component schema any of the refs
// resolves to, or nil when none do. A nil result means no shape constraint.
func (v *Validator) componentSchemaFor(refs []string) *spec.ComponentSchema {
	if v.doc.Components == nil {
		return nil
	}
	for _, ref := range refs {
		if comp := v.doc.Components.Schemas[refName(ref)]; comp != nil {
			return comp
		}
	}
	return nil
}

// resolveParameter looks a parameter $ref up in the component parameter
// registry by its final path segment.
func (v *Validator) resolveParameter(ref string) *spec.Parameter {
	if v.doc.Components == nil {
		return nil
	}
	return v.doc.Components.Parameters[refName(ref)]
}

// aggregateRequired resolves each ref against the component schemas,
// validates the supplied fields against every resolved schema's own
// properties, and unions the schemas' required lists into one set. For an
// array-shaped component, the items schema's required list and properties
// contribute as well.
//
// oneOf and allOf refs flow through here identically: constraints from
// all referenced branches apply (union semantics), a deliberate deviation
// from JSON Schema composition.
func (v *Validator) aggregateRequired(refs []string, fields map[string]any) (map[string]struct{}, *guarderrors.RequestError) {
	required := make(map[string]struct{})
	if v.doc.Components == nil {
		return required, nil
	}

	for _, ref := range refs {
		comp := v.doc.Components.Schemas[refName(ref)]
		if comp == nil {
			v.logger.Debug("unresolvable schema reference", "ref", ref)
			continue
		}

		for _, name := range comp.Required {
			required[name] = struct{}{}
		}
		if err := v.validateProperties(fields, comp.Properties, 0); err != nil {
			return nil, err
		}

		if comp.Items != nil {
			for _, name := range comp.Items.Required {
				required[name] = struct{}{}
			}
			if err := v.validateProperties(fields, comp.Items.Properties, 0); err != nil {
				return nil, err
			}
		}
	}

	return required, nil
}

// validateProperties checks every declared property that is present in
// fields: type, format (string-typed properties only), enum, pattern, and
// the per-type bounds of checkPropertyBounds. Object-valued fields recurse
// into their own declared properties.
func (v *Validator) validateProperties(fields map[string]any, props map[string]*spec.Property, depth int) *guarderrors.RequestError {
	if len(props) == 0 {
		return nil
	}
	if depth > maxNestingDepth {
		return guarderrors.NewRequestError("", guarderrors.KindRangeViolation, "",
			"property nesting exceeds %d levels", maxNestingDepth)
	}

	for name, prop := range props {
		if prop == nil {
			continue
		}
		value, present := fields[name]
		if !present {
			continue
		}

		if err := checkType(name, value, prop.Type); err != nil {
			return err
		}
		if prop.Type.Single() == spec.TypeString {
			if err := checkFormat(name, value, prop.Format); err != nil {
				return err
			}
		}
		if err := checkEnum(name, value, prop.Enum); err != nil {
			return err
		}
		if err := v.checkPattern(name, value, prop.Pattern); err != nil {
			return err
		}
		if err := v.checkPropertyBounds(name, value, prop); err != nil {
			return err
		}

		if nested, ok := value.(map[string]any); ok && prop.Properties != nil {
			if err := v.validateProperties(nested, prop.Properties, depth+1); err != nil {
				return err
			}
		}
	}

	return nil
}

// checkPropertyBounds applies the length/range/size constraint matching
// the property's declared type. With a union type the value passes when
// any branch accepts it; the failure message lists every branch's
// complaint.
func (v *Validator) checkPropertyBounds(field string, value any, prop *spec.Property) *guarderrors.RequestError {
	if len(prop.Type) == 0 {
		return nil
	}

	if !prop.Type.IsUnion() {
		return v.checkSingleTypeBounds(field, value, prop.Type.Single(), prop)
	}

	var complaints []string
	for _, t := range prop.Type {
		err := v.checkSingleTypeBounds(field, value, t, prop)
		if err == nil {
			return nil
		}
		complaints = append(complaints, err.Message)
	}
	return guarderrors.NewRequestError("", guarderrors.KindTypeMismatch, field,
		"the value of '%s' does not match any of the union types [%s]: %s",
		field, strings.Join(prop.Type, ", "), strings.Join(complaints, "; "))
}

// checkSingleTypeBounds enforces one type tag's kind and its associated
// bounds for a property value.
func (v *Validator) checkSingleTypeBounds(field string, value any, tag string, prop *spec.Property) *guarderrors.RequestError {
	switch tag {
	case spec.TypeString, spec.TypeBase64, spec.TypeBinary:
		str, ok := value.(string)
		if !ok {
			return typeError(field, "a String")
		}
		return checkStringLength(field, str, prop.MinLength, prop.MaxLength)
	case spec.TypeInteger:
		i, ok := asInt(value)
		if !ok {
			return typeError(field, "an Integer")
		}
		return checkNumericRange(field, float64(i), prop.Minimum, prop.Maximum)
	case spec.TypeNumber:
		f, ok := asFloat(value)
		if !ok {
			return typeError(field, "a Number")
		}
		return checkNumericRange(field, f, prop.Minimum, prop.Maximum)
	case spec.TypeArray:
		arr, ok := value.([]any)
		if !ok {
			return typeError(field, "an Array")
		}
		return checkArrayLength(field, len(arr), prop.MinItems, prop.MaxItems)
	case spec.TypeBoolean:
		if _, ok := value.(bool); !ok {
			return typeError(field, "a Boolean")
		}
	case spec.TypeNull:
		if value != nil {
			return typeError(field, "Null")
		}
	case spec.TypeObject:
		if _, ok := value.(map[string]any); !ok {
			return typeError(field, "an Object")
		}
	}
	return nil
}
