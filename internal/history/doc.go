// Package history records processed annotation requests in SQLite so
// operators can inspect what the service has transcribed, with which model,
// and how it went.
package history
