package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWhisper()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ModelCacheDir) == "" {
		c.Paths.ModelCacheDir = defaultModelCacheDir
	}
	if c.Paths.ModelCacheDir, err = expandPath(c.Paths.ModelCacheDir); err != nil {
		return fmt.Errorf("paths.model_cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeWhisper() {
	c.Whisper.ModelSize = strings.TrimSpace(strings.ToLower(c.Whisper.ModelSize))
	if c.Whisper.ModelSize == "" {
		c.Whisper.ModelSize = defaultModelSize
	}
	c.Whisper.ModelLang = strings.TrimSpace(c.Whisper.ModelLang)
	c.Whisper.Task = strings.TrimSpace(strings.ToLower(c.Whisper.Task))
	if c.Whisper.Task == "" {
		c.Whisper.Task = defaultTask
	}
	c.Whisper.TimeUnit = strings.TrimSpace(strings.ToLower(c.Whisper.TimeUnit))
	if c.Whisper.TimeUnit == "" {
		c.Whisper.TimeUnit = defaultTimeUnit
	}
	c.Whisper.BufferSource = strings.TrimSpace(strings.ToLower(c.Whisper.BufferSource))
	if c.Whisper.BufferSource == "" {
		c.Whisper.BufferSource = defaultBufferSource
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.TrimSpace(strings.ToLower(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.TrimSpace(strings.ToLower(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
