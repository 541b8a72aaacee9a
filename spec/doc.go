// Package spec parses OpenAPI 3.0/3.1/3.2 documents into an immutable typed
// model suitable for request validation.
//
// Import path: github.com/oasguard/oasguard/spec
//
// The model is a deliberate superset of the three supported specification
// versions: fields that only exist from 3.1 (webhooks, jsonSchemaDialect) or
// 3.2 ($self, info.summary, the QUERY operation, the querystring parameter
// location) parse to their zero values on older documents, so a single
// Document type serves all versions. Version availability is decided by the
// Is31/Is32 predicates, which are string-prefix tests on the openapi field,
// not semantic version comparisons.
//
// # Parsing
//
// Parse accepts YAML, which as a superset also covers JSON:
//
//	doc, err := spec.Parse(spec.WithFilePath("openapi.yaml"))
//
// A document missing its version, info.title, info.version, or paths is
// rejected with a *guarderrors.SpecError at parse time, once, so the
// hosting service can refuse to start instead of failing per request.
//
// # Immutability
//
// While Go does not enforce immutability, callers must treat the returned
// Document as read-only. Validation borrows it without synchronization and
// may run concurrently from many goroutines against the same instance.
package spec
