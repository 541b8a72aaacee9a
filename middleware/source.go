package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oasguard/oasguard/internal/stringutil"
)

// requestSource implements validator.Source over an *http.Request.
// The body is buffered exactly once at construction and restored on the
// request so downstream handlers can read it again.
type requestSource struct {
	req  *http.Request
	body []byte
}

func newRequestSource(r *http.Request) (*requestSource, error) {
	src := &requestSource{req: r}
	if r.Body != nil && r.Body != http.NoBody {
		body, err := io.ReadAll(r.Body)
		r.Body.Close()
		if err != nil {
			return nil, err
		}
		src.body = body
		r.Body = io.NopCloser(bytes.NewReader(body))
	}
	return src, nil
}

func (s *requestSource) Method() string { return s.req.Method }

// Path returns the matched mux route's path template when the request was
// routed through gorilla/mux, and the raw URL path otherwise.
func (s *requestSource) Path() string {
	if route := mux.CurrentRoute(s.req); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return s.req.URL.Path
}

func (s *requestSource) Query() map[string]string {
	values := s.req.URL.Query()
	if len(values) == 0 {
		return nil
	}
	pairs := make(map[string]string, len(values))
	for name, vals := range values {
		if len(vals) > 0 {
			pairs[name] = vals[0]
		} else {
			pairs[name] = ""
		}
	}
	return pairs
}

func (s *requestSource) LastPathSegment() string {
	return stringutil.LastPathSegment(s.req.URL.Path)
}

func (s *requestSource) Body() ([]byte, error) { return s.body, nil }
