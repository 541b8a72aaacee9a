package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/oasguard/oasguard/guarderrors"
	"github.com/oasguard/oasguard/internal/stringutil"
	"github.com/oasguard/oasguard/spec"
	"github.com/oasguard/oasguard/validator"
)

// queryFlags collects repeated -query k=v pairs.
type queryFlags map[string]string

func (q queryFlags) String() string {
	pairs := make([]string, 0, len(q))
	for k, v := range q {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, "&")
}

func (q queryFlags) Set(value string) error {
	key, val, found := strings.Cut(value, "=")
	if !found || key == "" {
		return fmt.Errorf("query parameter must be key=value, got %q", value)
	}
	q[key] = val
	return nil
}

// CheckFlags contains flags for the check command
type CheckFlags struct {
	Method      string
	Path        string
	LastSegment string
	Body        string
	BodyFile    string
	Query       queryFlags
	Format      string
}

// SetupCheckFlags creates and configures a FlagSet for the check command.
func SetupCheckFlags() (*flag.FlagSet, *CheckFlags) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	flags := &CheckFlags{Query: queryFlags{}}

	fs.StringVar(&flags.Method, "method", "GET", "HTTP method of the request")
	fs.StringVar(&flags.Path, "path", "", "declared path template, e.g. /users/{id}")
	fs.StringVar(&flags.LastSegment, "segment", "", "last concrete path segment (derived from -path when omitted)")
	fs.StringVar(&flags.Body, "body", "", "JSON request body")
	fs.StringVar(&flags.BodyFile, "body-file", "", "read the JSON request body from a file")
	fs.Var(flags.Query, "query", "query parameter as key=value (repeatable)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasguard check [flags] <spec-file>\n\n")
		Writef(fs.Output(), "Validate one HTTP request shape against an OpenAPI document.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasguard check -method GET -path /pets -query status=active openapi.yaml\n")
		Writef(fs.Output(), "  oasguard check -method POST -path /pets -body '{\"name\":\"rex\"}' openapi.yaml\n")
		Writef(fs.Output(), "  oasguard check -method GET -path '/pets/{petId}' -segment 3c879336-6e95-4b26-ae6a-bc48a4f417b5 openapi.yaml\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Request satisfies the contract\n")
		Writef(fs.Output(), "  1    Request was rejected, or the document is unusable\n")
	}

	return fs, flags
}

// checkResult is the structured output of the check command.
type checkResult struct {
	Valid bool   `json:"valid" yaml:"valid"`
	Phase string `json:"phase,omitempty" yaml:"phase,omitempty"`
	Kind  string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// HandleCheck executes the check command
func HandleCheck(args []string) error {
	fs, flags := SetupCheckFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("check command requires exactly one spec file path")
	}
	if flags.Path == "" {
		return fmt.Errorf("check command requires -path")
	}
	if flags.Body != "" && flags.BodyFile != "" {
		return fmt.Errorf("use either -body or -body-file, not both")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	doc, err := spec.Parse(spec.WithFilePath(fs.Arg(0)))
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}
	v, err := validator.New(doc)
	if err != nil {
		return fmt.Errorf("building validator: %w", err)
	}

	facts := validator.RequestFacts{
		PathTemplate:    flags.Path,
		Method:          flags.Method,
		QueryPairs:      flags.Query,
		LastPathSegment: flags.LastSegment,
	}
	if facts.LastPathSegment == "" {
		facts.LastPathSegment = stringutil.LastPathSegment(flags.Path)
	}
	switch {
	case flags.BodyFile != "":
		body, err := os.ReadFile(flags.BodyFile)
		if err != nil {
			return fmt.Errorf("reading body file: %w", err)
		}
		facts.Body = body
	case flags.Body != "":
		facts.Body = []byte(flags.Body)
	}

	validationErr := v.ValidateRequest(facts)

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		result := checkResult{Valid: validationErr == nil}
		if validationErr != nil {
			result.Error = validationErr.Error()
			var reqErr *guarderrors.RequestError
			if errors.As(validationErr, &reqErr) {
				result.Phase = string(reqErr.Phase)
				result.Kind = string(reqErr.Kind)
				result.Field = reqErr.Field
			}
		}
		if outErr := OutputStructured(result, flags.Format); outErr != nil {
			return outErr
		}
		if validationErr != nil {
			os.Exit(1)
		}
		return nil
	}

	if validationErr != nil {
		return validationErr
	}
	fmt.Printf("%s %s satisfies the contract.\n", strings.ToUpper(flags.Method), flags.Path)
	return nil
}
