package constant

// TelemetrySDKName identifies this service's instrumentation on exported resources.
const TelemetrySDKName = "docker-api/opentelemetry"
