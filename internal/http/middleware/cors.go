package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/liftworks/service-api/internal/config"
	"go.uber.org/zap"
)

// CORS builds the cross-origin policy from config. Outside development a
// wildcard origin logs a warning, and an empty origin list denies everything
// rather than falling back to the library's permissive default.
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	dev := environment == "development" || environment == "local" || environment == ""
	allowAny := func(r *http.Request, origin string) bool { return origin != "" }

	switch {
	case hasWildcard(cfg.AllowedOrigins):
		if !dev {
			logger.Warn("cors wildcard origin outside development",
				zap.String("environment", environment))
		}
		options.AllowOriginFunc = allowAny

	case len(cfg.AllowedOrigins) > 0:
		options.AllowedOrigins = cfg.AllowedOrigins
		logger.Info("cors origins configured", zap.Strings("origins", cfg.AllowedOrigins))

	case dev:
		options.AllowOriginFunc = allowAny

	default:
		// empty AllowedOrigins makes the library allow "*", so deny explicitly
		options.AllowOriginFunc = func(r *http.Request, origin string) bool { return false }
		logger.Warn("cors has no allowed origins, denying all cross-origin requests",
			zap.String("environment", environment))
	}

	return cors.Handler(options)
}

func hasWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
