package commands

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"

	"github.com/oasguard/oasguard/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasguard mcp\n\n")
		Writef(fs.Output(), "Run as an MCP (Model Context Protocol) server over stdio.\n")
		Writef(fs.Output(), "Exposes the check_spec and check_request tools.\n\n")
		Writef(fs.Output(), "Configuration via environment variables:\n")
		Writef(fs.Output(), "  OASGUARD_SPEC_PATH   default document used when a tool call omits the spec\n")
	}
	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return mcpserver.Run(ctx)
}
