// Package upload sequences validation, extraction, tier generation and
// persistence into one all-or-nothing pipeline run per incoming note.
package upload

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tiernote/tiernote/internal/document"
	"github.com/tiernote/tiernote/internal/document/repository"
	"github.com/tiernote/tiernote/internal/generator"
	"github.com/tiernote/tiernote/internal/markdown"
	"github.com/tiernote/tiernote/pkg/logger"
	"github.com/tiernote/tiernote/pkg/metrics"
)

// Request is the transient, immutable input of one pipeline run. It is
// validated at the HTTP boundary before it reaches the service.
type Request struct {
	Filename string
	Content  string
	Source   string
}

// Result is returned on a completed run.
type Result struct {
	DocumentID     string
	Title          string
	TierKeys       []string
	ProcessingTime time.Duration
}

// Archiver stores the raw note after a successful run. Archival is
// best-effort: failures are logged, never surfaced.
type Archiver interface {
	ArchiveNote(ctx context.Context, key string, data []byte) error
}

// Options tune the retry budgets. GenerateRetries of zero is honored (one
// attempt, no retries) and a negative value selects the default; the other
// fields fall back to defaults from zero.
type Options struct {
	GenerateRetries int           // extra attempts after the first (default 2)
	GenerateBackoff time.Duration // base backoff between generation attempts (default 1s)
	PersistAttempts int           // total persistence attempts (default 3)
	PersistBackoff  time.Duration // base for exponential persistence backoff (default 200ms)
}

func (o *Options) fill() {
	if o.GenerateRetries < 0 {
		o.GenerateRetries = 2
	}
	if o.GenerateBackoff <= 0 {
		o.GenerateBackoff = time.Second
	}
	if o.PersistAttempts <= 0 {
		o.PersistAttempts = 3
	}
	if o.PersistBackoff <= 0 {
		o.PersistBackoff = 200 * time.Millisecond
	}
}

// CoverPolicy picks a cover image URL for a note. The default returns a
// fixed stock image.
type CoverPolicy func(content string) string

// Service is the upload orchestrator. It owns no mutable state of its own;
// all shared state lives behind the repository.
type Service struct {
	repo    repository.Repository
	gen     generator.Strategy
	tags    markdown.TagPolicy
	cover   CoverPolicy
	archive Archiver
	opts    Options
}

func NewService(repo repository.Repository, gen generator.Strategy, opts Options) *Service {
	opts.fill()
	return &Service{repo: repo, gen: gen, opts: opts}
}

// WithTagPolicy replaces the fixed default tag derivation.
func (s *Service) WithTagPolicy(p markdown.TagPolicy) *Service {
	s.tags = p
	return s
}

// WithCoverPolicy replaces the fixed default cover image selection.
func (s *Service) WithCoverPolicy(p CoverPolicy) *Service {
	s.cover = p
	return s
}

// WithArchiver enables raw-note archival after successful persistence.
func (s *Service) WithArchiver(a Archiver) *Service {
	s.archive = a
	return s
}

// Process runs the pipeline stages in order: validate, extract, generate,
// persist, archive. Any stage may fail with a typed error; nothing is
// written until the document is complete, so no failure leaves a partial
// document behind.
func (s *Service) Process(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	ok, defects := markdown.Validate(req.Content)
	if !ok {
		metrics.UploadsFailed.WithLabelValues(string(StageValidated)).Inc()
		return nil, &ValidationError{Defects: defects}
	}

	meta := markdown.Extract(req.Content, req.Filename, s.tags)

	cover := defaultCoverImage
	if s.cover != nil {
		cover = s.cover(req.Content)
	}

	tiers, err := s.generateWithRetry(ctx, req.Content, meta.Title)
	if err != nil {
		metrics.UploadsFailed.WithLabelValues(string(StageGenerated)).Inc()
		return nil, err
	}

	doc := &document.Document{
		ID:      uuid.NewString(),
		Title:   meta.Title,
		Excerpt: meta.Excerpt,
		Content: map[document.Tier]string(tiers),
		Author: document.Author{
			Name:   "Tech Writer",
			Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=TechWriter",
		},
		Tags:           document.NormalizeTags(meta.Tags),
		Classification: document.ClassCommunity,
		ReadTimeMin:    meta.ReadTimeMin,
		CoverImage:     cover,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.persistWithRetry(ctx, doc); err != nil {
		metrics.UploadsFailed.WithLabelValues(string(StagePersisted)).Inc()
		return nil, err
	}

	if s.archive != nil {
		if err := s.archive.ArchiveNote(ctx, "notes/"+doc.ID+".md", []byte(req.Content)); err != nil {
			logger.Warnf("raw note archive failed for %s: %v", doc.ID, err)
		}
	}

	elapsed := time.Since(start)
	metrics.UploadsCompleted.Inc()
	metrics.UploadDuration.Observe(elapsed.Seconds())
	logger.Infof("generated document %s from %s in %s", doc.ID, req.Filename, elapsed)

	return &Result{
		DocumentID:     doc.ID,
		Title:          doc.Title,
		TierKeys:       doc.TierKeys(),
		ProcessingTime: elapsed,
	}, nil
}

// defaultCoverImage is the fixed cover selection policy.
const defaultCoverImage = "https://images.unsplash.com/photo-1516116216624-53e697fedbea?w=800&q=80"

func (s *Service) generateWithRetry(ctx context.Context, content, title string) (generator.TierSet, error) {
	attempts := 1 + s.opts.GenerateRetries
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			metrics.GenerationRetries.Inc()
			select {
			case <-time.After(s.opts.GenerateBackoff * time.Duration(attempt)):
			case <-ctx.Done():
				return nil, &GenerationError{Attempts: attempt, Err: ctx.Err()}
			}
		}
		tiers, err := s.gen.Generate(ctx, content, title)
		if err == nil {
			return tiers, nil
		}
		lastErr = err
		if !generator.IsRetryable(err) {
			return nil, &GenerationError{Attempts: attempt + 1, Err: err}
		}
		logger.Warnf("retryable generation failure (attempt %d/%d): %v", attempt+1, attempts, err)
	}
	return nil, &GenerationError{Attempts: attempts, Err: lastErr}
}

func (s *Service) persistWithRetry(ctx context.Context, doc *document.Document) error {
	backoff := s.opts.PersistBackoff
	var lastErr error
	for attempt := 1; attempt <= s.opts.PersistAttempts; attempt++ {
		err := s.repo.Add(ctx, doc)
		if err == nil {
			return nil
		}
		// id collisions are a hard error, not a transient condition
		if errors.Is(err, repository.ErrDuplicateID) {
			return &PersistenceError{Attempts: attempt, Err: err}
		}
		lastErr = err
		logger.Warnf("persistence attempt %d/%d failed: %v", attempt, s.opts.PersistAttempts, err)
		if attempt < s.opts.PersistAttempts {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return &PersistenceError{Attempts: attempt, Err: ctx.Err()}
			}
			backoff *= 2
		}
	}
	return &PersistenceError{Attempts: s.opts.PersistAttempts, Err: lastErr}
}
