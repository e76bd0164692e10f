package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/LerianStudio/docker-api/pkg"
	cn "github.com/LerianStudio/docker-api/pkg/constants"
	"github.com/LerianStudio/docker-api/pkg/log"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestInfo stores the http access log data of a single request.
type RequestInfo struct {
	Method        string
	URI           string
	Referer       string
	RemoteAddress string
	Status        int
	Date          time.Time
	Duration      time.Duration
	UserAgent     string
	TraceID       string
	Protocol      string
	Size          int
}

// NewRequestInfo creates an instance of RequestInfo.
func NewRequestInfo(c *fiber.Ctx) *RequestInfo {
	referer := "-"
	if c.Get(cn.HeaderReferer) != "" {
		referer = c.Get(cn.HeaderReferer)
	}

	return &RequestInfo{
		TraceID:       c.Get(cn.HeaderID),
		Method:        c.Method(),
		URI:           c.OriginalURL(),
		Referer:       referer,
		UserAgent:     c.Get(cn.HeaderUserAgent),
		RemoteAddress: c.IP(),
		Protocol:      c.Protocol(),
		Date:          time.Now().UTC(),
	}
}

// CLFString produces a log entry format similar to Common Log Format (CLF).
// Ref: https://httpd.apache.org/docs/trunk/logs.html#common
func (r *RequestInfo) CLFString() string {
	return strings.Join([]string{
		r.RemoteAddress,
		"-",
		"-",
		r.Protocol,
		r.Date.Format("[02/Jan/2006:15:04:05 -0700]"),
		`"` + r.Method + " " + r.URI + `"`,
		strconv.Itoa(r.Status),
		strconv.Itoa(r.Size),
		r.Referer,
		r.UserAgent,
	}, " ")
}

// String implements fmt.Stringer.
func (r *RequestInfo) String() string {
	return r.CLFString()
}

// FinishRequestInfo records duration, status and size once the handler chain has run.
func (r *RequestInfo) FinishRequestInfo(c *fiber.Ctx) {
	r.Duration = time.Now().UTC().Sub(r.Date)
	r.Status = c.Response().StatusCode()
	r.Size = len(c.Response().Body())
}

type logMiddleware struct {
	Logger    log.Logger
	SkipPaths map[string]struct{}
}

// LogMiddlewareOption configures WithHTTPLogging.
type LogMiddlewareOption func(l *logMiddleware)

// WithCustomLogger sets the base logger of the middleware.
func WithCustomLogger(logger log.Logger) LogMiddlewareOption {
	return func(l *logMiddleware) {
		if logger != nil {
			l.Logger = logger
		}
	}
}

// WithSkipPaths disables the access log line for the given paths.
// Request ids are still assigned.
func WithSkipPaths(paths ...string) LogMiddlewareOption {
	return func(l *logMiddleware) {
		for _, p := range paths {
			l.SkipPaths[p] = struct{}{}
		}
	}
}

func buildOpts(opts ...LogMiddlewareOption) *logMiddleware {
	mid := &logMiddleware{
		Logger:    log.NewNop(),
		SkipPaths: map[string]struct{}{"/health": {}},
	}

	for _, opt := range opts {
		opt(mid)
	}

	return mid
}

// WithHTTPLogging assigns every request a correlation id, stores a request
// scoped logger in the user context and writes one CLF access log line per request.
func WithHTTPLogging(opts ...LogMiddlewareOption) fiber.Handler {
	mid := buildOpts(opts...)

	return func(c *fiber.Ctx) error {
		headerID := setRequestHeaderID(c)

		logger := mid.Logger.
			With(log.String(cn.HeaderID, headerID)).
			With(log.String("message_prefix", headerID+cn.LoggerDefaultSeparator))

		c.SetUserContext(pkg.ContextWithLogger(c.UserContext(), logger))

		if _, skip := mid.SkipPaths[c.Path()]; skip || !logger.Enabled(log.LevelInfo) {
			return c.Next()
		}

		info := NewRequestInfo(c)

		renderChainError(c, c.Next())

		info.FinishRequestInfo(c)

		logger.Log(c.UserContext(), log.LevelInfo, info.CLFString(),
			log.Int("status", info.Status),
			log.Duration("duration", info.Duration),
		)

		return nil
	}
}

func setRequestHeaderID(c *fiber.Ctx) string {
	headerID := strings.TrimSpace(c.Get(cn.HeaderID))

	if headerID == "" {
		headerID = uuid.New().String()
		c.Request().Header.Set(cn.HeaderID, headerID)
	}

	c.Set(cn.HeaderID, headerID)
	c.SetUserContext(pkg.ContextWithHeaderID(c.UserContext(), headerID))

	return headerID
}
