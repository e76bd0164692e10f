// Package pkg holds process-wide helpers shared by the service packages:
// environment-driven configuration, request-scoped context values, ISO-8601
// timestamps and the app launcher.
package pkg
