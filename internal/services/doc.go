// Package services implements the user use cases behind the HTTP handlers.
package services
