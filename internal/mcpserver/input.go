package mcpserver

import (
	"fmt"

	"github.com/oasguard/oasguard/spec"
)

// specInput identifies an OpenAPI document by file path or inline content.
// Exactly one of the two may be set; when both are empty the configured
// OASGUARD_SPEC_PATH default applies.
type specInput struct {
	Path    string `json:"path,omitempty"    jsonschema:"Filesystem path to the OAS document"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS document content (YAML or JSON)"`
}

// resolve parses the referenced document.
func (in specInput) resolve() (*spec.Document, error) {
	switch {
	case in.Path != "" && in.Content != "":
		return nil, fmt.Errorf("provide either path or content, not both")
	case in.Path != "":
		return spec.Parse(spec.WithFilePath(in.Path))
	case in.Content != "":
		return spec.Parse(spec.WithBytes([]byte(in.Content)), spec.WithSourceName("inline"))
	case cfg.SpecPath != "":
		return spec.Parse(spec.WithFilePath(cfg.SpecPath))
	default:
		return nil, fmt.Errorf("no specification provided (set path or content, or configure OASGUARD_SPEC_PATH)")
	}
}
