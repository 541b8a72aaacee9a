package validator

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/oasguard/oasguard/guarderrors"
	"github.com/oasguard/oasguard/spec"
)

// typeError builds the standard type-mismatch error for a field.
func typeError(field, want string) *guarderrors.RequestError {
	return guarderrors.NewRequestError("", guarderrors.KindTypeMismatch, field,
		"the value of '%s' must be %s", field, want)
}

// checkType verifies value against a declared type set. An empty set means
// no type constraint and always passes. A union passes when the value
// matches at least one tag.
//
// Wire values from query and path arrive as strings, so the integer,
// number, and boolean tags also accept strings that parse as a 64-bit
// integer, a 64-bit float, or the literals "true"/"false"
// (case-insensitively).
func checkType(field string, value any, types spec.TypeSet) *guarderrors.RequestError {
	if len(types) == 0 {
		return nil
	}

	if types.IsUnion() {
		for _, t := range types {
			if matchesType(value, t) {
				return nil
			}
		}
		return guarderrors.NewRequestError("", guarderrors.KindTypeMismatch, field,
			"the value of '%s' must match one of the union types [%s]", field, strings.Join(types, ", "))
	}

	switch tag := types.Single(); tag {
	case spec.TypeObject:
		if _, ok := value.(map[string]any); !ok {
			return typeError(field, "an Object")
		}
	case spec.TypeString, spec.TypeBinary:
		if _, ok := value.(string); !ok {
			return typeError(field, "a String")
		}
	case spec.TypeInteger:
		if !isInteger(value) {
			if s, ok := value.(string); ok {
				if _, err := strconv.ParseInt(s, 10, 64); err != nil {
					return typeError(field, "an Integer")
				}
			} else {
				return typeError(field, "an Integer")
			}
		}
	case spec.TypeNumber:
		if !isNumber(value) {
			if s, ok := value.(string); ok {
				if _, err := strconv.ParseFloat(s, 64); err != nil {
					return typeError(field, "a Number")
				}
			} else {
				return typeError(field, "a Number")
			}
		}
	case spec.TypeArray:
		if _, ok := value.([]any); !ok {
			return typeError(field, "an Array")
		}
	case spec.TypeBoolean:
		if _, ok := value.(bool); !ok {
			if s, ok := value.(string); ok {
				switch strings.ToLower(s) {
				case "true", "false":
				default:
					return typeError(field, "a Boolean")
				}
			} else {
				return typeError(field, "a Boolean")
			}
		}
	case spec.TypeNull:
		if value != nil {
			return typeError(field, "Null")
		}
	case spec.TypeBase64:
		s, ok := value.(string)
		if !ok {
			return typeError(field, "a String")
		}
		if strings.TrimSpace(s) == "" {
			return guarderrors.NewRequestError("", guarderrors.KindTypeMismatch, field,
				"the value of '%s' must not be empty", field)
		}
		if _, err := base64.StdEncoding.DecodeString(s); err != nil {
			return guarderrors.NewRequestError("", guarderrors.KindTypeMismatch, field,
				"the value of '%s' must be valid Base64", field)
		}
	default:
		// Unrecognized tags are ignored rather than rejected; the type
		// constraint simply does not bind.
	}

	return nil
}

// matchesType reports whether value satisfies a single type tag under
// strict JSON-kind rules. Used for union membership, where string-sourced
// coercion does not apply.
func matchesType(value any, tag string) bool {
	switch tag {
	case spec.TypeObject:
		_, ok := value.(map[string]any)
		return ok
	case spec.TypeString, spec.TypeBinary:
		_, ok := value.(string)
		return ok
	case spec.TypeInteger:
		return isInteger(value)
	case spec.TypeNumber:
		return isNumber(value)
	case spec.TypeArray:
		_, ok := value.([]any)
		return ok
	case spec.TypeBoolean:
		_, ok := value.(bool)
		return ok
	case spec.TypeNull:
		return value == nil
	case spec.TypeBase64:
		s, ok := value.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return false
		}
		_, err := base64.StdEncoding.DecodeString(s)
		return err == nil
	default:
		return false
	}
}

// isInteger reports whether value is a JSON integer. Numbers with a
// fractional part do not qualify.
func isInteger(value any) bool {
	switch n := value.(type) {
	case json.Number:
		_, err := n.Int64()
		return err == nil
	case int, int32, int64:
		return true
	case float64:
		return n == float64(int64(n))
	default:
		return false
	}
}

// isNumber reports whether value is any JSON number.
func isNumber(value any) bool {
	switch value.(type) {
	case json.Number, int, int32, int64, float64:
		return true
	default:
		return false
	}
}

// asFloat extracts a float64 from any numeric representation.
func asFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// asInt extracts an int64 from any integral representation.
func asInt(value any) (int64, bool) {
	switch n := value.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// checkStringLength enforces minLength/maxLength on byte count.
func checkStringLength(field, value string, minLen, maxLen *uint64) *guarderrors.RequestError {
	length := uint64(len(value))
	if minLen != nil && length < *minLen {
		return guarderrors.NewRequestError("", guarderrors.KindRangeViolation, field,
			"the length of '%s' must be at least %d characters, but got %d", field, *minLen, length)
	}
	if maxLen != nil && length > *maxLen {
		return guarderrors.NewRequestError("", guarderrors.KindRangeViolation, field,
			"the length of '%s' must be at most %d characters, but got %d", field, *maxLen, length)
	}
	return nil
}

// checkNumericRange enforces inclusive minimum/maximum bounds, compared as
// floating point regardless of the declared numeric type.
func checkNumericRange(field string, value float64, minimum, maximum *float64) *guarderrors.RequestError {
	if minimum != nil && value < *minimum {
		return guarderrors.NewRequestError("", guarderrors.KindRangeViolation, field,
			"the value of '%s' must be >= %v, but got %v", field, *minimum, value)
	}
	if maximum != nil && value > *maximum {
		return guarderrors.NewRequestError("", guarderrors.KindRangeViolation, field,
			"the value of '%s' must be <= %v, but got %v", field, *maximum, value)
	}
	return nil
}

// checkArrayLength enforces minItems/maxItems on element count.
func checkArrayLength(field string, length int, minItems, maxItems *uint64) *guarderrors.RequestError {
	n := uint64(length)
	if minItems != nil && n < *minItems {
		return guarderrors.NewRequestError("", guarderrors.KindRangeViolation, field,
			"the array '%s' must have at least %d items, but got %d", field, *minItems, n)
	}
	if maxItems != nil && n > *maxItems {
		return guarderrors.NewRequestError("", guarderrors.KindRangeViolation, field,
			"the array '%s' must have at most %d items, but got %d", field, *maxItems, n)
	}
	return nil
}
