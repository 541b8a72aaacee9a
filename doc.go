// Package oasguard validates inbound HTTP requests against an OpenAPI
// 3.0/3.1/3.2 contract and reports the first violation found, letting a
// service reject malformed requests before they reach business logic.
//
// # Overview
//
// The library consists of four primary packages:
//
//   - spec: parse OpenAPI documents into an immutable typed model
//   - validator: the fail-fast method/path/query/body validation engine
//   - middleware: a net/http adapter that rejects failing requests with 400
//   - guarderrors: structured error types for programmatic handling
//
// # Quick Start
//
// Parse a contract and validate requests against it:
//
//	doc, err := spec.Parse(spec.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err) // a broken contract is fatal at startup
//	}
//
//	v, err := validator.New(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = v.ValidateRequest(validator.RequestFacts{
//		PathTemplate:    "/users/{id}",
//		Method:          "GET",
//		QueryPairs:      map[string]string{"verbose": "true"},
//		LastPathSegment: "42",
//	})
//
// Or wire the middleware in front of an existing handler:
//
//	r := mux.NewRouter()
//	r.Use(middleware.Validate(v))
//
// The parsed document is immutable and the validator holds no per-request
// state, so a single Validator may serve concurrent requests without
// synchronization.
package oasguard
