// Package server exposes the annotation pipeline over HTTP: the app metadata
// declaration, the annotate endpoint, a health probe, and the request history
// API. It also provides the daemon wrapper that holds the single-instance
// lock for the service process.
package server
