package constant

const (
	// HeaderUserAgent is the HTTP User-Agent header key.
	HeaderUserAgent = "User-Agent"
	// HeaderID is the request identifier header key.
	HeaderID = "X-Request-Id"
	// HeaderTraceparent is the W3C traceparent header key.
	HeaderTraceparent = "Traceparent"
	// HeaderReferer is the HTTP Referer header key.
	HeaderReferer = "Referer"
	// LoggerDefaultSeparator separates the request id prefix from the message.
	LoggerDefaultSeparator = " | "
)
