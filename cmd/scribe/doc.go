// Command scribe is the operator CLI for the annotation service: it
// transcribes media files directly, inspects the request history, lists
// model tiers, and manages configuration.
package main
