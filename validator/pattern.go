package validator

import (
	"regexp"

	"github.com/oasguard/oasguard/guarderrors"
)

// checkPattern verifies a string value against a declared regular
// expression. An absent pattern always passes. A non-string value always
// passes regardless of pattern: non-string values are not subject to
// pattern checks. The match is not anchored; the pattern must match
// anywhere in the string.
//
// A pattern that does not compile is a defect in the contract itself and
// is reported as a pattern compile error naming the offending pattern
// and field.
func (v *Validator) checkPattern(field string, value any, pattern string) *guarderrors.RequestError {
	if pattern == "" {
		return nil
	}

	str, ok := value.(string)
	if !ok {
		return nil
	}

	re, err := v.compilePattern(pattern)
	if err != nil {
		return &guarderrors.RequestError{
			Kind:    guarderrors.KindPatternCompileError,
			Field:   field,
			Message: "invalid regex pattern '" + pattern + "' for field '" + field + "': " + err.Error(),
			Cause:   err,
		}
	}

	if !re.MatchString(str) {
		return guarderrors.NewRequestError("", guarderrors.KindPatternViolation, field,
			"value '%s' for field '%s' does not match the required pattern '%s'", str, field, pattern)
	}
	return nil
}

// compilePattern returns a compiled regexp for pattern, consulting the
// cache first. Compilation is deterministic, so the cache is invisible to
// callers.
func (v *Validator) compilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := v.patterns.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	v.patterns.Store(pattern, re)
	return re, nil
}
