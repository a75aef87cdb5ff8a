package pipeline

import (
	"context"
	"log/slog"
	"time"

	"scribe/internal/annotate"
	"scribe/internal/config"
	"scribe/internal/history"
	"scribe/internal/logging"
	"scribe/internal/metadata"
	"scribe/internal/mmif"
	"scribe/internal/services"
	"scribe/internal/whisper"
)

// Annotator processes annotation requests. Requests run sequentially per
// call; the model cache is the only shared resource across calls.
type Annotator struct {
	cfg     *config.Config
	cache   *whisper.Cache
	service *whisper.Service
	store   *history.Store
	logger  *slog.Logger
}

// New constructs an annotator. store may be nil when history is disabled.
func New(cfg *config.Config, cache *whisper.Cache, service *whisper.Service, store *history.Store, logger *slog.Logger) *Annotator {
	return &Annotator{
		cfg:     cfg,
		cache:   cache,
		service: service,
		store:   store,
		logger:  logging.WithComponent(logger, "pipeline"),
	}
}

// RequestDefaults derives the request parameter defaults from configuration.
func RequestDefaults(cfg *config.Config) metadata.Request {
	return metadata.Request{
		ModelSize:               cfg.Whisper.ModelSize,
		ModelLang:               cfg.Whisper.ModelLang,
		TimeUnit:                cfg.Whisper.TimeUnit,
		Task:                    cfg.Whisper.Task,
		InitialPrompt:           cfg.Whisper.InitialPrompt,
		ConditionOnPreviousText: cfg.Whisper.ConditionOnPreviousText,
		NoSpeechThreshold:       cfg.Whisper.NoSpeechThreshold,
		BeamSize:                cfg.Whisper.BeamSize,
		BestOf:                  cfg.Whisper.BestOf,
		Temperature:             cfg.Whisper.Temperature,
		Patience:                cfg.Whisper.Patience,
		LengthPenalty:           cfg.Whisper.LengthPenalty,
	}
}

// Annotate transcribes every audio document in the collection (falling back
// to video documents when no audio is present) and appends one annotation
// view per media document. The collection is modified in place. A failure on
// any document aborts the request.
func (a *Annotator) Annotate(ctx context.Context, collection *mmif.Mmif, req metadata.Request) error {
	model, baseLang, err := whisper.Resolve(req.ModelSize, req.ModelLang, whisper.Task(req.Task))
	if err != nil {
		return err
	}

	docs := collection.DocumentsByType(mmif.AudioDocument)
	if len(docs) == 0 {
		docs = collection.DocumentsByType(mmif.VideoDocument)
	}
	if len(docs) == 0 {
		return services.Wrap(services.ErrValidation, "pipeline", "annotate", "no audio or video documents in collection", nil)
	}

	params := req.Params(baseLang)
	if err := params.Validate(); err != nil {
		return err
	}

	checkout, err := a.cache.Acquire(ctx, model)
	if err != nil {
		return err
	}
	defer checkout.Release()

	mapper := annotate.Mapper{
		Unit:   annotate.TimeUnit(req.TimeUnit),
		Source: annotate.BufferSource(a.cfg.Whisper.BufferSource),
	}

	for _, doc := range docs {
		if err := a.annotateDocument(ctx, collection, doc, checkout.Instance, mapper, params, req, model); err != nil {
			return err
		}
	}
	return nil
}

func (a *Annotator) annotateDocument(
	ctx context.Context,
	collection *mmif.Mmif,
	doc *mmif.Document,
	instance *whisper.Instance,
	mapper annotate.Mapper,
	params whisper.Params,
	req metadata.Request,
	model whisper.ModelID,
) error {
	started := time.Now()
	docID := doc.Properties.ID
	a.logger.Info("annotating document",
		logging.String("document", docID),
		logging.String("model", string(model)),
		logging.String("task", req.Task))

	summary, err := a.process(ctx, collection, doc, instance, mapper, params, req)
	elapsed := time.Since(started)

	record := history.Record{
		MediaID:       docID,
		MediaLocation: doc.Properties.Location,
		Model:         string(model),
		Task:          req.Task,
		Language:      summary.Language,
		TimeUnit:      req.TimeUnit,
		Tokens:        summary.Tokens,
		Frames:        summary.Frames,
		Sentences:     summary.Sentences,
		Duration:      elapsed,
		Status:        history.StatusCompleted,
	}
	if err != nil {
		record.Status = history.StatusFailed
		record.Error = err.Error()
	}
	a.record(ctx, record)

	if err != nil {
		a.logger.Error("document annotation failed",
			logging.String("document", docID),
			logging.Error(err))
		return err
	}
	a.logger.Info("document annotated",
		logging.String("document", docID),
		logging.String("language", summary.Language),
		logging.Int("tokens", summary.Tokens),
		logging.Int("sentences", summary.Sentences),
		logging.Duration("elapsed", elapsed))
	return nil
}

func (a *Annotator) process(
	ctx context.Context,
	collection *mmif.Mmif,
	doc *mmif.Document,
	instance *whisper.Instance,
	mapper annotate.Mapper,
	params whisper.Params,
	req metadata.Request,
) (annotate.Summary, error) {
	path, err := doc.LocationPath()
	if err != nil {
		return annotate.Summary{}, err
	}

	transcript, err := a.service.Transcribe(ctx, instance, path, params)
	if err != nil {
		return annotate.Summary{}, err
	}

	view := collection.NewView()
	view.SignBy(metadata.AppIdentifier+"/"+metadata.AppVersion, req.Signature())
	mapper.DeclareContains(view, doc.Properties.ID)
	return mapper.Map(view, doc.Properties.ID, transcript, params.Language)
}

// record persists the request outcome on a best-effort basis: a history
// failure never fails the request.
func (a *Annotator) record(ctx context.Context, rec history.Record) {
	if a.store == nil {
		return
	}
	if _, err := a.store.Record(ctx, rec); err != nil {
		a.logger.Warn("history record failed", logging.Error(err))
	}
}
