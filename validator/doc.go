// Package validator checks HTTP request facts against a parsed OpenAPI
// document and reports the first contract violation found.
//
// Import path: github.com/oasguard/oasguard/validator
//
// # Pipeline
//
// ValidateRequest runs exactly four phases, strictly in order, stopping at
// the first failure: method, path, query, body. Each phase is a pure
// function of the document and the request facts; there is no shared
// mutable state between phases or calls, so a single Validator may serve
// concurrent requests without locking. Failures are *guarderrors.RequestError
// values whose messages follow the "<Phase> validation failed: <detail>"
// contract.
//
// # Reference resolution
//
// $ref strings are resolved by their final path segment against the
// document's component schemas, one level deep. oneOf and allOf are
// deliberately treated identically: the union of all referenced branches'
// required names and property constraints is applied, rather than
// exclusive-or or full-intersection JSON Schema semantics. Integrations
// that need standards-correct composition should not rely on this engine
// for it.
//
// # Known limitation
//
// Only the final path segment is validated against path-located
// parameters; the engine does not decompose a multi-parameter template
// into its constituent positions. Tests pin this behavior.
package validator
