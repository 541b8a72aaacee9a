package validator

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oasguard/oasguard/guarderrors"
	"github.com/oasguard/oasguard/spec"
)

// Validator validates request facts against one parsed OpenAPI document.
//
// Create a Validator with New:
//
//	doc, _ := spec.Parse(spec.WithFilePath("openapi.yaml"))
//	v, err := validator.New(doc)
//	if err != nil {
//	    log.Fatal(err) // broken contract, refuse to start
//	}
//	if err := v.ValidateRequest(facts); err != nil {
//	    // reject the request with err.Error()
//	}
//
// The document is borrowed read-only; a single Validator is safe for
// concurrent use. The compiled-pattern cache is the only mutable state and
// is a pure performance optimization.
type Validator struct {
	doc    *spec.Document
	logger spec.Logger

	// patterns caches compiled regular expressions keyed by pattern
	// string. Compilation is deterministic, so caching cannot change
	// observable behavior.
	patterns sync.Map
}

// Option is a function that configures a Validator.
type Option func(*Validator) error

// WithLogger sets the structured logger for validation diagnostics.
// If not set, logging is disabled.
func WithLogger(logger spec.Logger) Option {
	return func(v *Validator) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		v.logger = logger
		return nil
	}
}

// New creates a Validator for the given document.
//
// Returns a *guarderrors.SpecError when doc is nil or incomplete, so a
// hand-built Document gets the same startup guarantee as a parsed one.
func New(doc *spec.Document, opts ...Option) (*Validator, error) {
	if doc == nil {
		return nil, &guarderrors.SpecError{Message: "document cannot be nil"}
	}
	if err := doc.Complete(); err != nil {
		return nil, err
	}

	v := &Validator{doc: doc, logger: spec.NopLogger{}}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("validator: invalid options: %w", err)
		}
	}
	return v, nil
}

// ValidateRequest runs the four validation phases in order, stopping at the
// first failure. A nil return means the request satisfies the contract.
func (v *Validator) ValidateRequest(facts RequestFacts) error {
	if err := v.methodPhase(facts); err != nil {
		return err
	}
	if err := v.pathPhase(facts); err != nil {
		return err
	}
	if err := v.queryPhase(facts); err != nil {
		return err
	}
	if err := v.bodyPhase(facts); err != nil {
		return err
	}
	v.logger.Debug("request passed validation",
		"method", facts.Method, "path", facts.PathTemplate)
	return nil
}

// ValidateSource collects facts from src and validates them.
func (v *Validator) ValidateSource(src Source) error {
	facts, err := FactsFromSource(src)
	if err != nil {
		return err
	}
	return v.ValidateRequest(facts)
}

// Document returns the contract this validator checks against.
func (v *Validator) Document() *spec.Document {
	return v.doc
}

// tag stamps a phase onto a checker error. Checkers are phase-agnostic;
// the phase functions own the stamp.
func tag(phase guarderrors.Phase, err *guarderrors.RequestError) error {
	if err == nil {
		return nil
	}
	err.Phase = phase
	return err
}

// operationFor returns the operation matching the facts, or nil.
// The QUERY verb resolves through the dedicated query operation on 3.2
// documents only.
func (v *Validator) operationFor(facts RequestFacts) *spec.Operation {
	item := v.doc.Paths[facts.PathTemplate]
	if item == nil {
		return nil
	}
	method := strings.ToLower(facts.Method)
	if op, ok := item.Operations[method]; ok {
		return op
	}
	if method == "query" && v.doc.Is32() {
		return item.Query
	}
	return nil
}

// parametersFor merges path-level parameters with the matched operation's.
func (v *Validator) parametersFor(facts RequestFacts) []*spec.Parameter {
	item := v.doc.Paths[facts.PathTemplate]
	if item == nil {
		return nil
	}
	params := make([]*spec.Parameter, 0, len(item.Parameters))
	if op := v.operationFor(facts); op != nil {
		params = append(params, op.Parameters...)
	}
	params = append(params, item.Parameters...)
	return params
}

// methodPhase checks that the path template is declared and the method is
// defined on it.
func (v *Validator) methodPhase(facts RequestFacts) error {
	item := v.doc.Paths[facts.PathTemplate]
	if item == nil {
		return tag(guarderrors.PhaseMethod, &guarderrors.RequestError{
			Kind:    guarderrors.KindPathNotFound,
			Message: fmt.Sprintf("path '%s' not found in specification", facts.PathTemplate),
		})
	}
	if v.operationFor(facts) == nil {
		return tag(guarderrors.PhaseMethod, &guarderrors.RequestError{
			Kind:    guarderrors.KindMethodNotAllowed,
			Message: fmt.Sprintf("method '%s' is not defined for path '%s'", facts.Method, facts.PathTemplate),
		})
	}
	return nil
}

// pathPhase validates the final path segment against every path-located
// parameter of the matched operation and the path level.
//
// Only the last segment is checked; templates with several path parameters
// are not decomposed into positions. A regression test pins this.
func (v *Validator) pathPhase(facts RequestFacts) error {
	for _, param := range v.parametersFor(facts) {
		if param == nil || param.Ref != "" {
			continue
		}
		if param.In != spec.InPath || param.Name == "" {
			continue
		}

		if schema := param.Schema; schema != nil {
			if err := checkFormat(param.Name, facts.LastPathSegment, schema.Format); err != nil {
				return tag(guarderrors.PhasePath, err)
			}
			if err := checkType(param.Name, facts.LastPathSegment, schema.Type); err != nil {
				return tag(guarderrors.PhasePath, err)
			}
			if err := v.checkPattern(param.Name, facts.LastPathSegment, schema.Pattern); err != nil {
				return tag(guarderrors.PhasePath, err)
			}
		}
		if err := checkType(param.Name, facts.LastPathSegment, param.Type); err != nil {
			return tag(guarderrors.PhasePath, err)
		}
		if err := v.checkPattern(param.Name, facts.LastPathSegment, param.Pattern); err != nil {
			return tag(guarderrors.PhasePath, err)
		}
	}
	return nil
}
