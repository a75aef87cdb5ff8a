package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"scribe/internal/services"
)

// Config captures runtime settings for whisper invocations.
type Config struct {
	// DownloadRoot is the shared directory model weights are fetched into.
	// All instances of a model share weights; only scratch state is private.
	DownloadRoot string
}

// Invocation constants.
const (
	UVXCommand    = "uvx"
	FFmpegCommand = "ffmpeg"
	// PyPIPackage is the distribution providing the whisper executable.
	PyPIPackage  = "openai-whisper"
	OutputFormat = "json"
	// CPUPrecision disables fp16 so CPU-only hosts decode without warnings.
	CPUPrecision = "False"
)

// videoExtensions lists container formats that need an audio extraction pass
// before transcription.
var videoExtensions = map[string]struct{}{
	".mkv":  {},
	".mp4":  {},
	".avi":  {},
	".mov":  {},
	".webm": {},
	".mpg":  {},
	".ts":   {},
}

// Word is one transcribed word with float-second timestamps.
type Word struct {
	Word        string  `json:"word"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Probability float64 `json:"probability"`
}

// Segment is one decoded window with its ordered words.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Words []Word  `json:"words"`
}

// Transcript is the model output for one media document.
type Transcript struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// Service runs transcription through the openai-whisper CLI.
type Service struct {
	cfg           Config
	uvxBinary     string
	ffmpegBinary  string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a transcription service with the given configuration.
func NewService(cfg Config) *Service {
	return &Service{
		cfg:          cfg,
		uvxBinary:    UVXCommand,
		ffmpegBinary: FFmpegCommand,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Transcribe invokes the model once for the given media file and returns the
// transcript structure. A missing or unreadable media path fails fast before
// any subprocess starts.
func (s *Service) Transcribe(ctx context.Context, instance *Instance, mediaPath string, params Params) (*Transcript, error) {
	if instance == nil {
		return nil, services.Wrap(services.ErrConfiguration, "whisper", "transcribe", "no model instance", nil)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(mediaPath); err != nil {
		return nil, services.Wrap(services.ErrNotFound, "whisper", "transcribe", "media path", err)
	}

	source := mediaPath
	if isVideo(mediaPath) {
		wav := filepath.Join(instance.WorkDir, trimExt(filepath.Base(mediaPath))+".wav")
		if err := s.extractAudio(ctx, mediaPath, wav); err != nil {
			return nil, err
		}
		source = wav
	}

	args := s.buildArgs(source, instance, params)
	if err := s.run(ctx, s.uvxBinary, args...); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "whisper", "transcribe", string(instance.Model), err)
	}

	jsonPath := filepath.Join(instance.WorkDir, trimExt(filepath.Base(source))+".json")
	transcript, err := loadTranscript(jsonPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "whisper", "transcribe", "read model output", err)
	}
	return transcript, nil
}

// buildArgs constructs the uvx command arguments for the whisper CLI.
func (s *Service) buildArgs(source string, instance *Instance, params Params) []string {
	args := make([]string, 0, 32)
	args = append(args,
		"--from", PyPIPackage,
		"whisper",
		source,
		"--model", string(instance.Model),
		"--output_dir", instance.WorkDir,
		"--output_format", OutputFormat,
		"--word_timestamps", "True",
		"--task", string(params.Task),
		"--beam_size", strconv.Itoa(params.BeamSize),
		"--best_of", strconv.Itoa(params.BestOf),
		"--temperature", formatFloat(params.Temperature),
		"--patience", formatFloat(params.Patience),
		"--condition_on_previous_text", pyBool(params.ConditionOnPreviousText),
		"--no_speech_threshold", formatFloat(params.NoSpeechThreshold),
		"--fp16", CPUPrecision,
		"--verbose", "False",
	)
	if s.cfg.DownloadRoot != "" {
		args = append(args, "--model_dir", s.cfg.DownloadRoot)
	}
	if params.Language != "" {
		args = append(args, "--language", params.Language)
	}
	if strings.TrimSpace(params.InitialPrompt) != "" {
		args = append(args, "--initial_prompt", params.InitialPrompt)
	}
	if params.LengthPenalty > 0 {
		args = append(args, "--length_penalty", formatFloat(params.LengthPenalty))
	}
	return args
}

func (s *Service) extractAudio(ctx context.Context, source, dest string) error {
	args := extractArgs(source, dest)
	if err := s.run(ctx, s.ffmpegBinary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "whisper", "extract audio", source, err)
	}
	return nil
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// loadTranscript parses the whisper JSON output file.
func loadTranscript(jsonPath string) (*Transcript, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var transcript Transcript
	if err := json.Unmarshal(data, &transcript); err != nil {
		return nil, fmt.Errorf("parse whisper json: %w", err)
	}
	return &transcript, nil
}

func isVideo(path string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func pyBool(value bool) string {
	if value {
		return "True"
	}
	return "False"
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
