package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasguard/oasguard/guarderrors"
)

type checkSpecInput struct {
	Spec specInput `json:"spec" jsonschema:"The OAS document to check"`
}

type checkSpecOutput struct {
	Valid   bool   `json:"valid"`
	Version string `json:"version,omitempty"`
	Paths   int    `json:"paths,omitempty"`
	Field   string `json:"field,omitempty"`
	Error   string `json:"error,omitempty"`
}

func handleCheckSpec(_ context.Context, _ *mcp.CallToolRequest, input checkSpecInput) (*mcp.CallToolResult, checkSpecOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		var specErr *guarderrors.SpecError
		if errors.As(err, &specErr) {
			return nil, checkSpecOutput{
				Valid: false,
				Field: specErr.Field,
				Error: sanitizeError(err),
			}, nil
		}
		return errResult(err), checkSpecOutput{}, nil
	}

	return nil, checkSpecOutput{
		Valid:   true,
		Version: doc.OpenAPI,
		Paths:   len(doc.Paths),
	}, nil
}
