package spec

import "strings"

// Is31 reports whether the document declares an OAS 3.1.x version.
// This is a string-prefix test on the openapi field, not a semantic
// version comparison.
func (d *Document) Is31() bool {
	return strings.HasPrefix(d.OpenAPI, "3.1")
}

// Is32 reports whether the document declares an OAS 3.2.x version.
// Gates the QUERY operation, the querystring parameter location,
// info.summary, and $self.
func (d *Document) Is32() bool {
	return strings.HasPrefix(d.OpenAPI, "3.2")
}
