package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/oasguard/oasguard"
	"github.com/oasguard/oasguard/spec"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Quiet  bool
	Format string
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the result, no diagnostic messages")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasguard validate [flags] <file|->\n\n")
		Writef(fs.Output(), "Parse an OpenAPI document and report whether it is complete enough to serve as a request validation contract.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasguard validate openapi.yaml\n")
		Writef(fs.Output(), "  cat openapi.yaml | oasguard validate -q -\n")
		Writef(fs.Output(), "  oasguard validate --format json openapi.yaml | jq '.valid'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Document is a usable contract\n")
		Writef(fs.Output(), "  1    Document is malformed or incomplete\n")
	}

	return fs, flags
}

// validateResult is the structured output of the validate command.
type validateResult struct {
	Valid   bool   `json:"valid" yaml:"valid"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Paths   int    `json:"paths,omitempty" yaml:"paths,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path or '-' for stdin")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	specPath := fs.Arg(0)

	var doc *spec.Document
	var err error
	if specPath == StdinFilePath {
		doc, err = spec.Parse(spec.WithReader(os.Stdin), spec.WithSourceName("<stdin>"))
	} else {
		doc, err = spec.Parse(spec.WithFilePath(specPath))
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		result := validateResult{Valid: err == nil}
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Version = doc.OpenAPI
			result.Title = doc.Info.Title
			result.Paths = len(doc.Paths)
		}
		if outErr := OutputStructured(result, flags.Format); outErr != nil {
			return outErr
		}
		if err != nil {
			os.Exit(1)
		}
		return nil
	}

	if err != nil {
		return fmt.Errorf("validating document: %w", err)
	}

	if !flags.Quiet {
		Writef(os.Stderr, "oasguard version: %s\n", oasguard.Version())
		Writef(os.Stderr, "Specification: %s\n", FormatSpecPath(specPath))
		Writef(os.Stderr, "OpenAPI Version: %s\n", doc.OpenAPI)
		Writef(os.Stderr, "Title: %s\n", doc.Info.Title)
		Writef(os.Stderr, "Paths: %d\n\n", len(doc.Paths))
	}
	fmt.Println("Document is a usable contract.")
	return nil
}
