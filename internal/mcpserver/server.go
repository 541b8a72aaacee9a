// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes oasguard's contract checks as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasguard/oasguard"
)

const serverInstructions = `oasguard MCP server — checks OpenAPI documents and HTTP request shapes against them.

Configuration: defaults are configurable via OASGUARD_* environment variables set in your MCP client config.

Key settings:
- OASGUARD_SPEC_PATH — default OpenAPI document used when a tool call omits the spec

Tools:
- check_spec: parse an OpenAPI 3.x document and report whether it is complete enough to validate requests against
- check_request: validate one request shape (method, path template, query, body) against a document; reports the failing phase on rejection`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasguard", Version: oasguard.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_spec",
		Description: "Parse an OpenAPI 3.x document (YAML or JSON) and report whether it is complete enough to validate requests against: openapi version, info.title, info.version, and at least one path. Provide the document via path or inline content. Defaults to OASGUARD_SPEC_PATH when both are omitted.",
	}, handleCheckSpec)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_request",
		Description: "Validate one HTTP request shape against an OpenAPI 3.x document. Provide the declared path template (e.g. /users/{id}), the method, URL-decoded query parameters, the last concrete path segment, and optionally a JSON body. Reports pass/fail with the failing validation phase (Method, Path, Query, or Body) and the rejection message.",
	}, handleCheckRequest)
}

// sanitizeError strips absolute filesystem paths from error messages to
// prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
