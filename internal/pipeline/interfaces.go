package pipeline

import (
	"context"

	"tubescout/internal/core"
)

// VideoSearcher is the search backend capability. Implementations return
// untagged metadata; the search stage owns provenance tagging and
// deduplication.
type VideoSearcher interface {
	// SearchVideos searches for videos matching the query, capped at maxResults.
	SearchVideos(ctx context.Context, query string, maxResults int) ([]core.VideoMetadata, error)

	// SearchChannel searches for videos matching the query within one channel.
	SearchChannel(ctx context.Context, query, channel string, maxResults int) ([]core.VideoMetadata, error)
}

// TranscriptFetcher is the transcript backend capability. Fetch applies the
// language fallback order internally and returns ErrNoTranscript-style
// errors when no track exists in any tier.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID, language string) (*core.Transcript, error)
}

// TextGenerator is the text-generation capability: one fully rendered
// prompt in, generated text out, single blocking call.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// SummaryStore is the durable store capability. Schema creation is
// idempotent and happens when the store is opened.
type SummaryStore interface {
	UpsertSummary(row core.StoredSummary) error
	QuerySummaries(query, topicFocus string) ([]core.StoredSummary, error)
	UpsertReport(reportName, report string) error
	Close() error
}

// StoreOpener opens a fresh store handle. Stages that touch the store open
// and close it within their own invocation; no connection is held across
// stage boundaries.
type StoreOpener func() (SummaryStore, error)
