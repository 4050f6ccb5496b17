package pipeline

import "tubescout/internal/core"

// StageUpdate is the partial state update a stage hands back to the
// pipeline. A stage only populates the fields it owns; nil fields are left
// untouched by the merge. Errors are appended, never replaced, and
// CurrentStep carries the stage's single outcome marker.
type StageUpdate struct {
	VideoURLs      []string
	VideoMetadata  []core.VideoMetadata
	Transcripts    map[string]core.Transcript
	Summaries      map[string]core.Summary
	StorageResults *core.StorageResult
	FinalReport    *string
	SourcesUsed    *int

	CurrentStep string
	Errors      []string
}

// apply merges a stage's partial update into the accumulated state and
// returns the new state. The pipeline owns the only mutable accumulator;
// stages never see it.
func apply(state core.ResearchState, update StageUpdate) core.ResearchState {
	if update.VideoURLs != nil {
		state.VideoURLs = update.VideoURLs
	}
	if update.VideoMetadata != nil {
		state.VideoMetadata = update.VideoMetadata
	}
	if update.Transcripts != nil {
		state.Transcripts = update.Transcripts
	}
	if update.Summaries != nil {
		state.Summaries = update.Summaries
	}
	if update.StorageResults != nil {
		state.StorageResults = *update.StorageResults
	}
	if update.FinalReport != nil {
		state.FinalReport = *update.FinalReport
	}
	if update.SourcesUsed != nil {
		state.SourcesUsed = *update.SourcesUsed
	}
	if update.CurrentStep != "" {
		state.CurrentStep = update.CurrentStep
	}
	state.Errors = append(state.Errors, update.Errors...)
	return state
}

// strPtr and intPtr mark scalar fields as owned by an update.
func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
