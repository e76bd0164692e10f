// Package mmodel holds the request and response models of the API.
package mmodel
