package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasguard/oasguard/guarderrors"
	"github.com/oasguard/oasguard/internal/stringutil"
	"github.com/oasguard/oasguard/validator"
)

type checkRequestInput struct {
	Spec        specInput         `json:"spec"                   jsonschema:"The OAS document to validate against"`
	Method      string            `json:"method"                 jsonschema:"HTTP method, e.g. GET or POST"`
	Path        string            `json:"path"                   jsonschema:"Declared path template, e.g. /users/{id}"`
	Query       map[string]string `json:"query,omitempty"        jsonschema:"URL-decoded query parameters"`
	LastSegment string            `json:"last_segment,omitempty" jsonschema:"Last concrete path segment; derived from the template when omitted"`
	Body        string            `json:"body,omitempty"         jsonschema:"JSON request body"`
}

type checkRequestOutput struct {
	Valid bool   `json:"valid"`
	Phase string `json:"phase,omitempty"`
	Kind  string `json:"kind,omitempty"`
	Field string `json:"field,omitempty"`
	Error string `json:"error,omitempty"`
}

func handleCheckRequest(_ context.Context, _ *mcp.CallToolRequest, input checkRequestInput) (*mcp.CallToolResult, checkRequestOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), checkRequestOutput{}, nil
	}

	v, err := validator.New(doc)
	if err != nil {
		return errResult(err), checkRequestOutput{}, nil
	}

	facts := validator.RequestFacts{
		PathTemplate:    input.Path,
		Method:          input.Method,
		QueryPairs:      input.Query,
		LastPathSegment: input.LastSegment,
	}
	if facts.LastPathSegment == "" {
		facts.LastPathSegment = stringutil.LastPathSegment(input.Path)
	}
	if input.Body != "" {
		facts.Body = []byte(input.Body)
	}

	if err := v.ValidateRequest(facts); err != nil {
		out := checkRequestOutput{Valid: false, Error: sanitizeError(err)}
		var reqErr *guarderrors.RequestError
		if errors.As(err, &reqErr) {
			out.Phase = string(reqErr.Phase)
			out.Kind = string(reqErr.Kind)
			out.Field = reqErr.Field
		}
		return nil, out, nil
	}

	return nil, checkRequestOutput{Valid: true}, nil
}
