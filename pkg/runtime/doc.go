// Package runtime launches goroutines with panic recovery and logs recovered panics.
package runtime
