package validator

// RequestFacts is the neutral bundle of request data the engine validates.
// Framework adapters produce it; the engine never sees a framework type.
type RequestFacts struct {
	// PathTemplate is the matched route's declared template,
	// e.g. "/users/{id}".
	PathTemplate string

	// Method is the HTTP method. Matching against the document is
	// case-insensitive.
	Method string

	// QueryPairs holds the URL-decoded query parameters as wire values.
	QueryPairs map[string]string

	// LastPathSegment is the final non-empty segment of the concrete
	// request path, e.g. "42" for "/users/42".
	LastPathSegment string

	// Body is the buffered request body, or nil when absent.
	Body []byte
}

// Source supplies request facts from some hosting framework. Implement it
// once per framework adapter; the middleware package ships a net/http
// implementation.
type Source interface {
	// Method returns the HTTP method.
	Method() string

	// Path returns the matched route's path template.
	Path() string

	// Query returns the URL-decoded query parameters.
	Query() map[string]string

	// LastPathSegment returns the final non-empty segment of the
	// concrete request path.
	LastPathSegment() string

	// Body returns the buffered request body, or nil when absent.
	// The returned error reports a transport failure reading the body,
	// not a validation failure.
	Body() ([]byte, error)
}

// FactsFromSource collects a Source's values into a RequestFacts bundle.
func FactsFromSource(src Source) (RequestFacts, error) {
	body, err := src.Body()
	if err != nil {
		return RequestFacts{}, err
	}
	return RequestFacts{
		PathTemplate:    src.Path(),
		Method:          src.Method(),
		QueryPairs:      src.Query(),
		LastPathSegment: src.LastPathSegment(),
		Body:            body,
	}, nil
}
