// Package middleware adapts the validation engine to net/http.
//
// Validate wraps a handler so that every request is checked against the
// OpenAPI contract before the handler runs. Requests that fail validation
// are rejected with HTTP 400 and never reach the wrapped handler; passing
// requests are forwarded unmodified, with the body restored for downstream
// reads.
//
// When the handler is mounted on a gorilla/mux router, the matched route's
// path template is used to look the operation up, so "/users/42" validates
// against "/users/{id}". Outside mux, the raw URL path is used and must
// equal a declared template literally.
//
//	v, _ := validator.New(doc)
//	r := mux.NewRouter()
//	r.Use(middleware.Validate(v))
//	r.HandleFunc("/users/{id}", getUser).Methods(http.MethodGet)
package middleware
