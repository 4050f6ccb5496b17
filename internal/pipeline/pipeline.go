// Package pipeline implements the research workflow: search for videos on a
// topic, extract transcripts, summarize each against a topic focus, persist
// the summaries, and synthesize a final report. The five stages run
// strictly sequentially; each consumes declared fields of the shared
// research state and returns a partial update the pipeline merges. Item and
// stage failures are recorded in the state's error trail and never abort
// the run.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"tubescout/internal/core"
	"tubescout/internal/logger"
)

// Config holds pipeline configuration
type Config struct {
	// MinTranscriptChars is the minimum trimmed transcript length worth
	// summarizing; shorter transcripts are skipped.
	MinTranscriptChars int
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		MinTranscriptChars: 50,
	}
}

// Pipeline orchestrates the end-to-end research workflow. It owns the four
// external capabilities behind narrow interfaces so every stage can be
// exercised with test doubles.
type Pipeline struct {
	searcher    VideoSearcher
	transcripts TranscriptFetcher
	generator   TextGenerator
	openStore   StoreOpener

	config *Config
}

// NewPipeline creates a pipeline from its capabilities.
func NewPipeline(searcher VideoSearcher, transcripts TranscriptFetcher, generator TextGenerator, openStore StoreOpener, config *Config) *Pipeline {
	if config == nil {
		config = DefaultConfig()
	}
	return &Pipeline{
		searcher:    searcher,
		transcripts: transcripts,
		generator:   generator,
		openStore:   openStore,
		config:      config,
	}
}

// stage is one unit of the sequential workflow.
type stage struct {
	name string
	run  func(context.Context, core.ResearchState) StageUpdate
}

// Run executes the five stages in order against the initial state and
// returns the fully populated final state. Stage failures degrade
// gracefully: the failure marker and error text land in the state and the
// next stage still runs. The returned state's Errors field is the complete
// ordered audit trail of the run.
func (p *Pipeline) Run(ctx context.Context, initial core.ResearchState) core.ResearchState {
	stages := []stage{
		{"search", p.SearchStage},
		{"extract_transcript", p.TranscriptStage},
		{"summarize", p.SummaryStage},
		{"store", p.StorageStage},
		{"final_report", p.ReportStage},
	}

	runID := uuid.New().String()
	logger.Info("starting research run", "run_id", runID, "query", initial.Query)

	state := initial
	for _, s := range stages {
		logger.Info("running stage", "run_id", runID, "stage", s.name)
		state = apply(state, s.run(ctx, state))
		logger.Info("stage finished", "run_id", runID, "stage", s.name, "current_step", state.CurrentStep)
	}

	logger.Info("research run finished", "run_id", runID, "current_step", state.CurrentStep, "errors", len(state.Errors))
	return state
}

// RunReport executes only the report stage, synthesizing whatever summaries
// the durable store already holds for the state's query and topic focus.
func (p *Pipeline) RunReport(ctx context.Context, initial core.ResearchState) core.ResearchState {
	return apply(initial, p.ReportStage(ctx, initial))
}
