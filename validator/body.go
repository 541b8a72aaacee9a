package validator

import (
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/oasguard/oasguard/guarderrors"
	"github.com/oasguard/oasguard/spec"
)

// bodyField names the request body in error messages.
const bodyField = "request_body"

// jsonAPI decodes numbers as json.Number so integer/number distinctions
// survive the round trip.
var jsonAPI = jsoniter.Config{UseNumber: true}.Froze()

func decodeJSON(data []byte) (any, error) {
	var value any
	if err := jsonAPI.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// bodyPhase validates the request body against the matched operation's
// requestBody declaration. Operations without a requestBody accept any
// payload, including none.
func (v *Validator) bodyPhase(facts RequestFacts) error {
	op := v.operationFor(facts)
	if op == nil || op.RequestBody == nil {
		return nil
	}
	body := op.RequestBody

	if len(facts.Body) == 0 {
		if body.Required {
			return tag(guarderrors.PhaseBody, &guarderrors.RequestError{
				Kind:    guarderrors.KindRequiredBodyMissing,
				Field:   bodyField,
				Message: "request body is required but was not provided",
			})
		}
		return nil
	}

	value, err := decodeJSON(facts.Body)
	if err != nil {
		return tag(guarderrors.PhaseBody, &guarderrors.RequestError{
			Kind:    guarderrors.KindMalformedBody,
			Field:   bodyField,
			Message: "request body is not valid JSON",
			Cause:   err,
		})
	}

	refs := bodyRefs(body)
	comp := v.componentSchemaFor(refs)
	var expected spec.TypeSet
	if comp != nil {
		expected = comp.Type
	}

	switch val := value.(type) {
	case map[string]any:
		if err := expectShape(expected, spec.TypeObject); err != nil {
			return tag(guarderrors.PhaseBody, err)
		}
		return tag(guarderrors.PhaseBody, v.validateObjectBody(val, body, refs))

	case []any:
		if err := expectShape(expected, spec.TypeArray); err != nil {
			return tag(guarderrors.PhaseBody, err)
		}
		if comp != nil {
			if err := checkArrayLength(bodyField, len(val), comp.MinItems, comp.MaxItems); err != nil {
				return tag(guarderrors.PhaseBody, err)
			}
		}
		for i, item := range val {
			obj, ok := item.(map[string]any)
			if !ok {
				return tag(guarderrors.PhaseBody, guarderrors.NewRequestError(
					"", guarderrors.KindTypeMismatch, bodyField,
					"request body array item at index %d must be an object", i))
			}
			if err := v.validateObjectBody(obj, body, refs); err != nil {
				return tag(guarderrors.PhaseBody, err)
			}
		}
		return nil

	case nil:
		if body.Required {
			return tag(guarderrors.PhaseBody, &guarderrors.RequestError{
				Kind:    guarderrors.KindRequiredBodyMissing,
				Field:   bodyField,
				Message: "request body is required but null was provided",
			})
		}
		return nil

	default:
		// Scalar payload: validate directly against the declared schemas.
		if err := checkType(bodyField, value, expected); err != nil {
			return tag(guarderrors.PhaseBody, err)
		}
		for _, media := range body.Content {
			if media == nil || media.Schema == nil {
				continue
			}
			if err := checkType(bodyField, value, media.Schema.Type); err != nil {
				return tag(guarderrors.PhaseBody, err)
			}
			if err := checkFormat(bodyField, value, media.Schema.Format); err != nil {
				return tag(guarderrors.PhaseBody, err)
			}
			if err := checkEnum(bodyField, value, media.Schema.Enum); err != nil {
				return tag(guarderrors.PhaseBody, err)
			}
		}
		return nil
	}
}

// bodyRefs collects schema references from every declared media type.
func bodyRefs(body *spec.RequestBody) []string {
	var refs []string
	for _, media := range body.Content {
		if media == nil || media.Schema == nil {
			continue
		}
		refs = append(refs, collectRefs(media.Schema)...)
	}
	return refs
}

// expectShape verifies the decoded body's JSON shape against the
// resolved component type, when one is declared.
func expectShape(declared spec.TypeSet, got string) *guarderrors.RequestError {
	if len(declared) == 0 || declared.Contains(got) {
		return nil
	}
	return guarderrors.NewRequestError("", guarderrors.KindTypeMismatch, bodyField,
		"request body must be of type %s, got %s", strings.Join(declared, " or "), got)
}

// validateObjectBody checks one JSON object against every declared media
// type schema and the aggregated requirements of the referenced
// component schemas.
func (v *Validator) validateObjectBody(fields map[string]any, body *spec.RequestBody, refs []string) *guarderrors.RequestError {
	for _, media := range body.Content {
		if media == nil || media.Schema == nil {
			continue
		}
		if err := v.validateProperties(fields, media.Schema.Properties, 0); err != nil {
			return err
		}
	}

	required, err := v.aggregateRequired(refs, fields)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(required))
	for name := range required {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := fields[name]; !ok {
			return guarderrors.NewRequestError("", guarderrors.KindMissingRequiredParameter, name,
				"missing required request body field: '%s'", name)
		}
	}
	return nil
}
