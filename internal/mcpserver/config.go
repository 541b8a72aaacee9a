package mcpserver

import "os"

// serverConfig holds the configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// SpecPath is the default OpenAPI document, used when a tool call
	// provides neither a path nor inline content.
	SpecPath string
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASGUARD_* environment variables.
func loadConfig() *serverConfig {
	return &serverConfig{
		SpecPath: os.Getenv("OASGUARD_SPEC_PATH"),
	}
}
