package validator

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/oasguard/oasguard/guarderrors"
)

// floatEpsilon is the tolerance for float equality in enum comparisons.
const floatEpsilon = 2.220446049250313e-16

// checkEnum verifies that value equals at least one allowed member under
// the cross-type equality relation of valuesEqual. An empty allowed list
// always passes.
func checkEnum(field string, value any, allowed []any) *guarderrors.RequestError {
	if len(allowed) == 0 {
		return nil
	}

	for _, member := range allowed {
		if valuesEqual(value, member) {
			return nil
		}
	}

	rendered := make([]string, 0, len(allowed))
	for _, member := range allowed {
		rendered = append(rendered, formatEnumValue(member))
	}

	return guarderrors.NewRequestError("", guarderrors.KindEnumViolation, field,
		"value %s for field '%s' is not in allowed enum values: [%s]",
		formatEnumValue(value), field, strings.Join(rendered, ", "))
}

// valuesEqual implements cross-type enum equality: values that differ in
// wire representation but agree in meaning compare equal. Strings compare
// exactly against strings; against numbers they are parsed first; against
// booleans the literals "true"/"false" match case-insensitively. Numbers
// compare integer-exact when both sides are integral, otherwise as floats
// within epsilon, and against strings by stringification.
func valuesEqual(value, member any) bool {
	// Same-kind comparisons.
	if s1, ok := value.(string); ok {
		if s2, ok := member.(string); ok {
			return s1 == s2
		}
	}
	if b1, ok := value.(bool); ok {
		if b2, ok := member.(bool); ok {
			return b1 == b2
		}
	}
	if value == nil || member == nil {
		return value == nil && member == nil
	}
	if isNumber(value) && isNumber(member) {
		if i1, ok := asInt(value); ok {
			if i2, ok := asInt(member); ok {
				return i1 == i2
			}
		}
		f1, ok1 := asFloat(value)
		f2, ok2 := asFloat(member)
		return ok1 && ok2 && math.Abs(f1-f2) < floatEpsilon
	}

	// String value against a typed member: parse then compare.
	if s, ok := value.(string); ok {
		if isNumber(member) {
			if i2, ok := asInt(member); ok {
				if i1, err := strconv.ParseInt(s, 10, 64); err == nil {
					return i1 == i2
				}
			}
			if f2, ok := asFloat(member); ok {
				if f1, err := strconv.ParseFloat(s, 64); err == nil {
					return math.Abs(f1-f2) < floatEpsilon
				}
			}
			return false
		}
		if b, ok := member.(bool); ok {
			switch strings.ToLower(s) {
			case "true":
				return b
			case "false":
				return !b
			}
			return false
		}
	}

	// Typed value against a string member: stringify then compare.
	if s, ok := member.(string); ok {
		if isNumber(value) {
			return stringifyNumber(value) == s
		}
		if b, ok := value.(bool); ok {
			switch strings.ToLower(s) {
			case "true":
				return b
			case "false":
				return !b
			}
			return false
		}
	}

	return false
}

// stringifyNumber renders a numeric value in its shortest lexical form.
func stringifyNumber(value any) string {
	if i, ok := asInt(value); ok {
		return strconv.FormatInt(i, 10)
	}
	if f, ok := asFloat(value); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprintf("%v", value)
}

// formatEnumValue renders a value in its native lexical form for error
// messages: quoted strings, bare numbers and booleans, and null.
func formatEnumValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return `"` + v + `"`
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	default:
		if isNumber(v) {
			return stringifyNumber(v)
		}
		return fmt.Sprintf("%v", v)
	}
}
