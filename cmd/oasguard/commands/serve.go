package commands

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/oasguard/oasguard/middleware"
	"github.com/oasguard/oasguard/spec"
	"github.com/oasguard/oasguard/validator"
)

// ServeFlags contains flags for the serve command
type ServeFlags struct {
	Config string
	Listen string
	Spec   string
}

// serveConfig is the koanf-loaded configuration for the serve command.
// Flags override file values, which override the built-in defaults.
type serveConfig struct {
	Listen string `koanf:"listen"`
	Spec   string `koanf:"spec"`
}

// SetupServeFlags creates and configures a FlagSet for the serve command.
func SetupServeFlags() (*flag.FlagSet, *ServeFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags := &ServeFlags{}

	fs.StringVar(&flags.Config, "config", "", "path to a YAML config file (keys: listen, spec)")
	fs.StringVar(&flags.Listen, "listen", "", "listen address, e.g. :8080 (overrides config)")
	fs.StringVar(&flags.Spec, "spec", "", "path to the OpenAPI document (overrides config)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasguard serve [flags]\n\n")
		Writef(fs.Output(), "Run an HTTP service that validates every request against the contract.\n")
		Writef(fs.Output(), "One route is mounted per declared path; requests that fail validation\n")
		Writef(fs.Output(), "receive HTTP 400 with the rejection message.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasguard serve -config oasguard.yaml\n")
		Writef(fs.Output(), "  oasguard serve -spec openapi.yaml -listen :9000\n")
	}

	return fs, flags
}

// loadServeConfig merges defaults, the optional config file, and flag
// overrides into the final configuration.
func loadServeConfig(flags *ServeFlags) (*serveConfig, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"listen": ":8080",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if flags.Config != "" {
		if err := k.Load(file.Provider(flags.Config), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if flags.Listen != "" {
		if err := k.Set("listen", flags.Listen); err != nil {
			return nil, err
		}
	}
	if flags.Spec != "" {
		if err := k.Set("spec", flags.Spec); err != nil {
			return nil, err
		}
	}

	var cfg serveConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.Spec == "" {
		return nil, fmt.Errorf("no specification configured (set -spec or the spec config key)")
	}
	return &cfg, nil
}

// buildRouter mounts one route per declared path, guarded by the
// validation middleware. Declared templates use the same {name} syntax as
// gorilla/mux, so they mount directly.
func buildRouter(v *validator.Validator, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Validate(v, middleware.WithLogger(logger)))

	for template, item := range v.Document().Paths {
		if item == nil {
			continue
		}
		methods := make([]string, 0, len(item.Operations))
		for method := range item.Operations {
			methods = append(methods, strings.ToUpper(method))
		}
		if item.Query != nil {
			methods = append(methods, "QUERY")
		}
		if len(methods) == 0 {
			continue
		}
		router.HandleFunc(template, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			Writef(w, `{"validated": true}`+"\n")
		}).Methods(methods...)
	}

	return router
}

// HandleServe executes the serve command
func HandleServe(args []string) error {
	fs, flags := SetupServeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("serve command takes no positional arguments")
	}

	cfg, err := loadServeConfig(flags)
	if err != nil {
		return err
	}

	doc, err := spec.Parse(spec.WithFilePath(cfg.Spec))
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}
	v, err := validator.New(doc)
	if err != nil {
		return fmt.Errorf("building validator: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	router := buildRouter(v, logger)

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("serving validated contract",
		zap.String("listen", cfg.Listen),
		zap.String("spec", cfg.Spec),
		zap.Int("paths", len(doc.Paths)))

	return server.ListenAndServe()
}
