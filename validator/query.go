package validator

import (
	"sort"
	"strings"

	"github.com/oasguard/oasguard/guarderrors"
	"github.com/oasguard/oasguard/spec"
)

// queryPhase validates every query-located parameter of the matched
// operation and path level, then verifies the aggregated required names
// collected from schema references all appear in the query pairs.
func (v *Validator) queryPhase(facts RequestFacts) error {
	params := v.parametersFor(facts)
	if len(params) == 0 {
		return nil
	}

	// The query map viewed as a JSON-like fields object, for validating
	// referenced component properties against the wire values.
	fields := make(map[string]any, len(facts.QueryPairs))
	for name, value := range facts.QueryPairs {
		fields[name] = value
	}

	required := make(map[string]struct{})

	for _, param := range params {
		if param == nil {
			continue
		}

		if param.Ref != "" {
			if resolved := v.resolveParameter(param.Ref); resolved != nil {
				if err := v.checkQueryParameter(resolved, facts, fields, required); err != nil {
					return tag(guarderrors.PhaseQuery, err)
				}
				continue
			}
			// Not a component parameter: treat the ref as a schema
			// reference and aggregate its required names.
			agg, err := v.aggregateRequired([]string{param.Ref}, fields)
			if err != nil {
				return tag(guarderrors.PhaseQuery, err)
			}
			for name := range agg {
				required[name] = struct{}{}
			}
			continue
		}

		if err := v.checkQueryParameter(param, facts, fields, required); err != nil {
			return tag(guarderrors.PhaseQuery, err)
		}
	}

	// Every aggregated required name must be present as a query key.
	names := make([]string, 0, len(required))
	for name := range required {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := facts.QueryPairs[name]; !ok {
			return tag(guarderrors.PhaseQuery, guarderrors.NewRequestError(
				"", guarderrors.KindMissingRequiredParameter, name,
				"required query parameter '%s' is missing", name))
		}
	}

	return nil
}

// checkQueryParameter validates one declared query or querystring
// parameter against the supplied pairs, adding any required names its
// schema references contribute to the aggregate set.
func (v *Validator) checkQueryParameter(param *spec.Parameter, facts RequestFacts, fields map[string]any, required map[string]struct{}) *guarderrors.RequestError {
	if param.Name == "" {
		return nil
	}
	if param.In != spec.InQuery && param.In != spec.InQueryString {
		return nil
	}

	raw, present := facts.QueryPairs[param.Name]
	if !present {
		if param.Required {
			return guarderrors.NewRequestError("", guarderrors.KindMissingRequiredParameter, param.Name,
				"required query parameter '%s' is missing", param.Name)
		}
		return nil
	}

	if param.Required && strings.TrimSpace(raw) == "" {
		return guarderrors.NewRequestError("", guarderrors.KindMissingRequiredParameter, param.Name,
			"required query parameter '%s' cannot be empty", param.Name)
	}

	// querystring parameters (3.2) carry a structured, JSON-encoded
	// value; plain query parameters stay wire strings.
	var value any = raw
	if param.In == spec.InQueryString {
		decoded, err := decodeJSON([]byte(raw))
		if err != nil {
			return &guarderrors.RequestError{
				Kind:    guarderrors.KindTypeMismatch,
				Field:   param.Name,
				Message: "querystring parameter '" + param.Name + "' must be valid JSON",
				Cause:   err,
			}
		}
		value = decoded
	}

	// Legacy inline shorthand checks.
	if err := checkEnum(param.Name, value, param.Enum); err != nil {
		return err
	}
	if err := checkType(param.Name, value, param.Type); err != nil {
		return err
	}

	if schema := param.Schema; schema != nil {
		if err := checkFormat(param.Name, value, schema.Format); err != nil {
			return err
		}
		if err := checkEnum(param.Name, value, schema.Enum); err != nil {
			return err
		}
		if err := checkType(param.Name, value, schema.Type); err != nil {
			return err
		}
		if err := v.checkPattern(param.Name, value, schema.Pattern); err != nil {
			return err
		}

		agg, err := v.aggregateRequired(collectRefs(schema), fields)
		if err != nil {
			return err
		}
		for name := range agg {
			required[name] = struct{}{}
		}

		if str, ok := value.(string); ok {
			if err := checkStringLength(param.Name, str, schema.MinLength, schema.MaxLength); err != nil {
				return err
			}
		}
		// Range bounds bind numeric values only; wire strings are not
		// coerced for range checks.
		if num, ok := asFloat(value); ok {
			if err := checkNumericRange(param.Name, num, schema.Minimum, schema.Maximum); err != nil {
				return err
			}
		}
	}

	return v.checkPattern(param.Name, value, param.Pattern)
}
