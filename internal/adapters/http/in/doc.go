// Package in exposes the inbound HTTP surface: the route table and its handlers.
package in
