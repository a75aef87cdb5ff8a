package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWhisper(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWhisper() error {
	switch c.Whisper.Task {
	case "transcribe", "translate":
	default:
		return fmt.Errorf("whisper.task must be transcribe or translate, got %q", c.Whisper.Task)
	}
	switch c.Whisper.TimeUnit {
	case "milliseconds", "seconds":
	default:
		return fmt.Errorf("whisper.time_unit must be milliseconds or seconds, got %q", c.Whisper.TimeUnit)
	}
	switch c.Whisper.BufferSource {
	case "model", "rebuilt":
	default:
		return fmt.Errorf("whisper.buffer_source must be model or rebuilt, got %q", c.Whisper.BufferSource)
	}
	if c.Whisper.NoSpeechThreshold < 0 || c.Whisper.NoSpeechThreshold > 1 {
		return errors.New("whisper.no_speech_threshold must be between 0 and 1")
	}
	if c.Whisper.BeamSize <= 0 {
		return errors.New("whisper.beam_size must be positive")
	}
	if c.Whisper.BestOf <= 0 {
		return errors.New("whisper.best_of must be positive")
	}
	if c.Whisper.Temperature < 0 {
		return errors.New("whisper.temperature must be >= 0")
	}
	if c.Whisper.Patience <= 0 {
		return errors.New("whisper.patience must be positive")
	}
	if c.Whisper.LengthPenalty < 0 {
		return errors.New("whisper.length_penalty must be >= 0")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Keep < 0 {
		return errors.New("history.keep must be >= 0")
	}
	if c.History.Enabled && c.Paths.HistoryDB == "" {
		return errors.New("paths.history_db must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
