package http

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/LerianStudio/docker-api/pkg"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	defaultAccessControlAllowOrigin   = "*"
	defaultAccessControlAllowMethods  = "POST, GET, OPTIONS"
	defaultAccessControlAllowHeaders  = "Accept, Content-Type, Content-Length, Accept-Encoding, X-Request-Id, Traceparent"
	defaultAccessControlExposeHeaders = "X-Request-Id"
)

// WithCORS enables CORS, configurable through the ACCESS_CONTROL_* environment variables.
func WithCORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  CORSAllowedOrigins(),
		AllowMethods:  pkg.GetenvOrDefault("ACCESS_CONTROL_ALLOW_METHODS", defaultAccessControlAllowMethods),
		AllowHeaders:  pkg.GetenvOrDefault("ACCESS_CONTROL_ALLOW_HEADERS", defaultAccessControlAllowHeaders),
		ExposeHeaders: pkg.GetenvOrDefault("ACCESS_CONTROL_EXPOSE_HEADERS", defaultAccessControlExposeHeaders),
		MaxAge:        int(pkg.GetenvIntOrDefault("ACCESS_CONTROL_MAX_AGE", 0)),
	})
}

// ErrInvalidCORSOrigin indicates an ACCESS_CONTROL_ALLOW_ORIGIN entry the CORS
// middleware would reject.
var ErrInvalidCORSOrigin = errors.New("invalid CORS origin")

// CORSAllowedOrigins returns the configured ACCESS_CONTROL_ALLOW_ORIGIN value.
func CORSAllowedOrigins() string {
	return pkg.GetenvOrDefault("ACCESS_CONTROL_ALLOW_ORIGIN", defaultAccessControlAllowOrigin)
}

// ValidateCORSOrigins checks a comma separated origin list the way the CORS
// middleware does: "*" or http(s) origins with a host and nothing after it.
// A "scheme://*.domain" entry allows every subdomain of domain.
func ValidateCORSOrigins(origins string) error {
	if strings.TrimSpace(origins) == "*" {
		return nil
	}

	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)

		if !validOrigin(strings.Replace(origin, "://*.", "://", 1)) {
			return fmt.Errorf("%w: %q", ErrInvalidCORSOrigin, origin)
		}
	}

	return nil
}

func validOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	if u.Host == "" || strings.Contains(u.Host, "*") {
		return false
	}

	return (u.Path == "" || u.Path == "/") && u.RawQuery == "" && u.Fragment == ""
}
