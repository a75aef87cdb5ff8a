// Package whisper provides the model access layer: resolving a requested
// size/language/task into a concrete model identifier, a checkout cache that
// amortizes expensive model loads across requests, and transcription through
// the openai-whisper CLI run via uvx.
//
// The cache hands out exclusive instances: a request for a model whose cached
// instances are all busy gets an independently loaded instance instead of
// blocking. That trades memory for never sharing state during inference, and
// it is a deliberate, tested policy rather than an accident of flag handling.
package whisper
