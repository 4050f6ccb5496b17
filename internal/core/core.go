package core

import "time"

// Step values mark the outcome of each pipeline stage. Every stage sets
// CurrentStep exactly once, to either its completed or its failed marker.
const (
	StepStarting            = "starting"
	StepSearchCompleted     = "search_completed"
	StepSearchFailed        = "search_failed"
	StepTranscriptCompleted = "transcript_completed"
	StepTranscriptFailed    = "transcript_failed"
	StepSummaryCompleted    = "summary_completed"
	StepSummaryFailed       = "summary_failed"
	StepStorageCompleted    = "storage_completed"
	StepStorageFailed       = "storage_failed"
	StepReportCompleted     = "report_completed"
	StepReportFailed        = "report_failed"
)

// Source types record which search strategy produced a video result.
const (
	SourceMainQuery    = "main_query"
	SourceTopic        = "topic"
	SourceChannel      = "channel"
	SourceTopicChannel = "topic+channel"
)

// VideoMetadata describes a single video returned by the search backend.
type VideoMetadata struct {
	VideoID     string    `json:"video_id"`     // 11-character YouTube video identifier
	Title       string    `json:"title"`        // Video title
	URL         string    `json:"url"`          // Canonical watch URL
	ChannelName string    `json:"channel_name"` // Publishing channel
	PublishedAt time.Time `json:"published_at"` // Publish timestamp
	SourceType  string    `json:"source_type"`  // One of the Source* constants
	SourceQuery string    `json:"source_query"` // The query string that found this video
}

// Transcript holds the normalized transcript of one video. Transcripts are
// created once by the transcript stage and never mutated; a video whose
// fetch failed has no Transcript at all.
type Transcript struct {
	VideoID     string `json:"video_id"`
	URL         string `json:"url"`
	Text        string `json:"text"`     // Segment texts joined with single spaces, trimmed
	Language    string `json:"language"` // Language code of the track actually used
	WordCount   int    `json:"word_count"`
	IsGenerated bool   `json:"is_generated"` // Auto-generated track vs manually authored
}

// Summary is the per-video output of the summarization stage. Unlike
// transcripts, failed summaries are retained with Err set so downstream
// stages can filter them explicitly.
type Summary struct {
	VideoID        string `json:"video_id"`
	URL            string `json:"url"`
	VideoTitle     string `json:"video_title"`
	Text           string `json:"text"`            // Full generated summary, or the failure description when Err
	OriginalLength int    `json:"original_length"` // Character length of the source transcript
	SummaryLength  int    `json:"summary_length"`  // Character length of the generated summary
	TopicFocus     string `json:"topic_focus"`
	Err            bool   `json:"error"` // True when summarization failed for this video
}

// StorageResult reports the outcome of the persistence stage.
type StorageResult struct {
	Status      string   `json:"status"` // "success" or "failed"
	StoredCount int      `json:"stored_count"`
	Message     string   `json:"message,omitempty"` // Set on stage-level failure
	Errors      []string `json:"errors,omitempty"`  // Per-row write failures
}

// StorageResult status values.
const (
	StorageStatusSuccess = "success"
	StorageStatusFailed  = "failed"
)

// StoredSummary is one durable summary row, upserted by VideoURL so reruns
// overwrite prior results for the same video.
type StoredSummary struct {
	VideoURL       string    `json:"video_url"`
	VideoTitle     string    `json:"video_title"`
	Summary        string    `json:"summary"`
	TopicFocus     string    `json:"topic_focus"`
	Query          string    `json:"query"`
	CreatedAt      time.Time `json:"created_at"`
	OriginalLength int       `json:"original_length"`
	SummaryLength  int       `json:"summary_length"`
}

// StoredReport is one durable final report row, upserted by ReportName
// (the topic focus it was generated for).
type StoredReport struct {
	ReportName string    `json:"report_name"`
	Report     string    `json:"report"`
	CreatedAt  time.Time `json:"created_at"`
}

// ResearchState is the single record threaded through all pipeline stages.
// Stages never mutate it directly: each stage returns a partial update that
// the pipeline merges into its accumulator. Per-video maps are keyed by the
// extracted video ID, not the full URL, so URL variants collapse.
type ResearchState struct {
	// Input parameters
	Query              string   `json:"query"`
	Topics             []string `json:"topics"`
	Channels           []string `json:"channels"`
	MaxResultsPerQuery int      `json:"max_results_per_query"`
	Language           string   `json:"language"`
	TopicFocus         string   `json:"topic_focus"`

	// Data flow between stages
	VideoURLs      []string              `json:"video_urls"`
	VideoMetadata  []VideoMetadata       `json:"video_metadata"`
	Transcripts    map[string]Transcript `json:"transcripts"`
	Summaries      map[string]Summary    `json:"summaries"`
	StorageResults StorageResult         `json:"storage_results"`
	FinalReport    string                `json:"final_report"`
	SourcesUsed    int                   `json:"sources_used"`

	// Processing status
	CurrentStep string   `json:"current_step"`
	Errors      []string `json:"errors"` // Append-only audit trail of recoverable failures
}

// NewResearchState builds an initial state with the given inputs populated
// and all derived fields at their zero values.
func NewResearchState(query string, topics, channels []string, maxResults int, language, topicFocus string) ResearchState {
	if maxResults < 1 {
		maxResults = 1
	}
	if language == "" {
		language = "en"
	}
	if topicFocus == "" {
		topicFocus = query
	}
	return ResearchState{
		Query:              query,
		Topics:             topics,
		Channels:           channels,
		MaxResultsPerQuery: maxResults,
		Language:           language,
		TopicFocus:         topicFocus,
		Transcripts:        map[string]Transcript{},
		Summaries:          map[string]Summary{},
		CurrentStep:        StepStarting,
	}
}
