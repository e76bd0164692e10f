// Package constant holds header names, span names and response defaults shared by the HTTP layer.
package constant
