package spec

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/oasguard/oasguard/guarderrors"
)

// Parse reads an OpenAPI document from the configured source and returns a
// typed Document. YAML input covers JSON as well, since YAML is a superset.
//
// Example:
//
//	doc, err := spec.Parse(spec.WithFilePath("openapi.yaml"))
//
// Returns a *guarderrors.SpecError when the text is malformed or when a
// required top-level field (openapi, info.title, info.version, paths) is
// absent or empty. This check happens once, at startup, never per request.
func Parse(opts ...Option) (*Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("spec: invalid options: %w", err)
	}

	source := cfg.sourceName
	var data []byte

	switch {
	case cfg.filePath != nil:
		if source == "" {
			source = *cfg.filePath
		}
		data, err = os.ReadFile(*cfg.filePath)
		if err != nil {
			return nil, &guarderrors.SpecError{
				Source:  source,
				Message: "failed to read document",
				Cause:   err,
			}
		}
	case cfg.reader != nil:
		data, err = io.ReadAll(cfg.reader)
		if err != nil {
			return nil, &guarderrors.SpecError{
				Source:  source,
				Message: "failed to read document",
				Cause:   err,
			}
		}
	default:
		data = cfg.bytes
	}

	cfg.logger.Debug("parsing document", "source", source, "bytes", len(data))

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &guarderrors.SpecError{
			Source:  source,
			Message: "malformed YAML/JSON",
			Cause:   err,
		}
	}

	if err := checkComplete(&doc, source); err != nil {
		return nil, err
	}

	cfg.logger.Info("parsed document",
		"source", source,
		"title", doc.Info.Title,
		"openapi", doc.OpenAPI,
		"paths", len(doc.Paths))

	return &doc, nil
}

// checkComplete rejects documents whose required top-level fields are
// absent or empty. A broken contract is fatal at startup; it never
// surfaces as a per-request failure.
func checkComplete(doc *Document, source string) error {
	specErr := func(field, msg string) error {
		return &guarderrors.SpecError{Source: source, Field: field, Message: msg}
	}

	if doc.OpenAPI == "" {
		return specErr("openapi", "OpenAPI version is required")
	}
	if doc.Info == nil || doc.Info.Title == "" {
		return specErr("info.title", "title is required")
	}
	if doc.Info.Version == "" {
		return specErr("info.version", "version is required")
	}
	if len(doc.Paths) == 0 {
		return specErr("paths", "paths are required")
	}
	return nil
}

// Complete reports whether the document carries every required top-level
// field. The validator re-checks this on construction so a Document built
// by hand (not through Parse) gets the same guarantee.
func (d *Document) Complete() error {
	return checkComplete(d, "")
}
