package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/history"
	"scribe/internal/logging"
	"scribe/internal/metadata"
	"scribe/internal/mmif"
	"scribe/internal/pipeline"
	"scribe/internal/whisper"
)

// audioExtensions lists container formats treated as audio documents; other
// known media extensions become video documents.
var audioExtensions = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
}

func newAnnotateCommand(ctx *commandContext) *cobra.Command {
	var (
		modelSize string
		modelLang string
		task      string
		timeUnit  string
		prompt    string
		output    string
		pretty    bool
	)

	cmd := &cobra.Command{
		Use:   "annotate <media-file> [media-file...]",
		Short: "Transcribe media files and print the annotated collection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			values := url.Values{}
			if modelSize != "" {
				values.Set("modelSize", modelSize)
			}
			if modelLang != "" {
				values.Set("modelLang", modelLang)
			}
			if task != "" {
				values.Set("task", task)
			}
			if timeUnit != "" {
				values.Set("timeUnit", timeUnit)
			}
			if prompt != "" {
				values.Set("initialPrompt", prompt)
			}
			req, err := metadata.ParseRequest(values, pipeline.RequestDefaults(cfg))
			if err != nil {
				return err
			}

			collection := mmif.New()
			for i, path := range args {
				absolute, err := filepath.Abs(path)
				if err != nil {
					return fmt.Errorf("resolve media path %q: %w", path, err)
				}
				docType := mmif.VideoDocument
				mime := "video/mp4"
				if m, ok := audioExtensions[strings.ToLower(filepath.Ext(absolute))]; ok {
					docType = mmif.AudioDocument
					mime = m
				}
				collection.AddDocument(docType, fmt.Sprintf("d%d", i+1), absolute, mime)
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})
			if err != nil {
				return err
			}

			var store *history.Store
			if cfg.History.Enabled {
				store, err = history.Open(cfg.Paths.HistoryDB, cfg.History.Keep)
				if err != nil {
					return fmt.Errorf("open history store: %w", err)
				}
				defer store.Close()
			}

			cache := whisper.NewCache(whisper.NewDiskLoader(cfg.Paths.WorkDir), logger)
			service := whisper.NewService(whisper.Config{DownloadRoot: cfg.Paths.ModelCacheDir})
			annotator := pipeline.New(cfg, cache, service, store, logger)

			if err := annotator.Annotate(cmd.Context(), collection, req); err != nil {
				return err
			}

			var payload []byte
			if pretty {
				payload, err = collection.MarshalIndent()
			} else {
				payload, err = collection.Marshal()
			}
			if err != nil {
				return fmt.Errorf("serialize collection: %w", err)
			}

			if output != "" {
				if err := os.WriteFile(output, payload, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote annotated collection to %s\n", output)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelSize, "model", "m", "", "Model size or alias (tiny/t ... turbo/tu)")
	cmd.Flags().StringVarP(&modelLang, "lang", "l", "", "Audio language code (e.g. en, en-US); empty detects")
	cmd.Flags().StringVar(&task, "task", "", "transcribe or translate")
	cmd.Flags().StringVar(&timeUnit, "time-unit", "", "milliseconds or seconds")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Initial prompt for the first decoding window")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the annotated collection to a file")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print the JSON output")
	return cmd
}
