package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/oasguard/oasguard/validator"
)

// ErrorHandler writes the response for a request that failed validation.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// config holds the middleware configuration.
type config struct {
	logger       *zap.Logger
	errorHandler ErrorHandler
}

// Option is a functional option for configuring the middleware.
type Option func(*config)

// WithLogger sets the logger for validation outcomes. Failures log at warn
// with the method, path, duration, and error; passes log at debug.
// A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithErrorHandler replaces the default rejection response. The default
// writes HTTP 400 with the validation error message as the body.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// Validate returns middleware that validates each request against the
// contract held by v before invoking the wrapped handler.
func Validate(v *validator.Validator, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		logger:       zap.NewNop(),
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			src, err := newRequestSource(r)
			if err != nil {
				cfg.logger.Warn("failed to read request body",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Error(err))
				http.Error(w, "unable to read request body", http.StatusBadRequest)
				return
			}

			if err := v.ValidateSource(src); err != nil {
				cfg.logger.Warn("request failed validation",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Duration("duration", time.Since(start)),
					zap.Error(err))
				cfg.errorHandler(w, r, err)
				return
			}

			cfg.logger.Debug("request passed validation",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)))
			next.ServeHTTP(w, r)
		})
	}
}
