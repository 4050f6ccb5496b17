package pipeline

import (
	"context"
	"fmt"

	"tubescout/internal/config"
	"tubescout/internal/store"
	"tubescout/internal/transcript"
	"tubescout/internal/youtube"
)

// Builder assembles a production pipeline from application configuration.
type Builder struct {
	cfg       *config.Config
	generator TextGenerator
	searcher  VideoSearcher
	config    *Config
}

// NewBuilder creates a new pipeline builder with default settings
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		cfg:    cfg,
		config: DefaultConfig(),
	}
}

// WithGenerator sets the text-generation client. The caller keeps ownership
// and is responsible for closing it.
func (b *Builder) WithGenerator(generator TextGenerator) *Builder {
	b.generator = generator
	return b
}

// WithSearcher overrides the default YouTube search backend.
func (b *Builder) WithSearcher(searcher VideoSearcher) *Builder {
	b.searcher = searcher
	return b
}

// WithConfig sets the pipeline configuration
func (b *Builder) WithConfig(config *Config) *Builder {
	b.config = config
	return b
}

// Build constructs a fully configured Pipeline
func (b *Builder) Build(ctx context.Context) (*Pipeline, error) {
	if b.generator == nil {
		return nil, fmt.Errorf("text generator is required")
	}

	searcher := b.searcher
	if searcher == nil {
		client, err := youtube.NewClient(ctx, b.cfg.YouTube.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create search backend: %w", err)
		}
		searcher = client
	}

	dataDir := b.cfg.Storage.DataDir
	openStore := func() (SummaryStore, error) {
		return store.NewStore(dataDir)
	}

	return NewPipeline(searcher, transcript.NewFetcher(), b.generator, openStore, b.config), nil
}

// BuildReportOnly constructs a pipeline that can only run the report stage.
// No search backend is created, so no YouTube API key is needed.
func (b *Builder) BuildReportOnly() (*Pipeline, error) {
	if b.generator == nil {
		return nil, fmt.Errorf("text generator is required")
	}

	dataDir := b.cfg.Storage.DataDir
	openStore := func() (SummaryStore, error) {
		return store.NewStore(dataDir)
	}

	return NewPipeline(nil, nil, b.generator, openStore, b.config), nil
}
