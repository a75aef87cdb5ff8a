// Package pipeline orchestrates one annotation request end to end: resolve
// the model, check an instance out of the cache, transcribe each media
// document, and map the transcripts into annotation views.
package pipeline
