package main

import (
	"fmt"
	"os"

	"github.com/oasguard/oasguard"
	"github.com/oasguard/oasguard/cmd/oasguard/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasguard v%s\n", oasguard.Version())
	case "help", "-h", "--help":
		printUsage()
	case "validate":
		if err := commands.HandleValidate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "check":
		if err := commands.HandleCheck(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := commands.HandleServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`oasguard - validate HTTP requests against OpenAPI 3.x contracts

Usage:
  oasguard <command> [flags]

Commands:
  validate   Parse an OpenAPI document and report whether it is usable as a contract
  check      Validate one request shape against an OpenAPI document
  serve      Run an HTTP service that validates requests against a contract
  mcp        Run as an MCP server over stdio
  version    Print version information
  help       Show this help message

Examples:
  oasguard validate openapi.yaml
  oasguard check -method POST -path /pets -body '{"name":"rex"}' openapi.yaml
  oasguard check -method GET -path '/pets/{petId}' -segment 3c879336-6e95-4b26-ae6a-bc48a4f417b5 openapi.yaml
  oasguard serve -config oasguard.yaml
  oasguard mcp

Use "oasguard <command> --help" for command-specific flags.`)
}
