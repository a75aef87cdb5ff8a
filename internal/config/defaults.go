package config

const (
	defaultLogDir            = "~/.local/share/scribe/logs"
	defaultModelCacheDir     = "~/.cache/scribe/models"
	defaultWorkDir           = "~/.cache/scribe/work"
	defaultHistoryDB         = "~/.local/share/scribe/history.db"
	defaultAPIBind           = "127.0.0.1:5000"
	defaultModelSize         = "tiny"
	defaultTask              = "transcribe"
	defaultTimeUnit          = "milliseconds"
	defaultNoSpeechThreshold = 0.6
	defaultBeamSize          = 5
	defaultBestOf            = 5
	defaultPatience          = 1.0
	defaultBufferSource      = "model"
	defaultHistoryKeep       = 1000
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:        defaultLogDir,
			ModelCacheDir: defaultModelCacheDir,
			WorkDir:       defaultWorkDir,
			HistoryDB:     defaultHistoryDB,
			APIBind:       defaultAPIBind,
		},
		Whisper: Whisper{
			ModelSize:               defaultModelSize,
			Task:                    defaultTask,
			TimeUnit:                defaultTimeUnit,
			ConditionOnPreviousText: true,
			NoSpeechThreshold:       defaultNoSpeechThreshold,
			BeamSize:                defaultBeamSize,
			BestOf:                  defaultBestOf,
			Temperature:             0,
			Patience:                defaultPatience,
			BufferSource:            defaultBufferSource,
		},
		History: History{
			Enabled: true,
			Keep:    defaultHistoryKeep,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
