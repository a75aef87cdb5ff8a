// Package services defines shared error classification used across the
// annotation pipeline and its external integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that tag failures so the
//     HTTP boundary can map them to consistent response statuses.
//   - A uniform place to distinguish configuration mistakes, bad request
//     payloads, missing media, external tool failures, and transcript/offset
//     mismatches.
//
// Use these helpers when wiring new pipeline logic so error handling stays
// uniform across the service.
package services
