package pipeline

import (
	"context"
	"fmt"
	"strings"

	"tubescout/internal/core"
	"tubescout/internal/llm"
	"tubescout/internal/logger"
	"tubescout/internal/transcript"
)

// SearchStage finds candidate videos. The bare query is always searched;
// topics and channels fan out into additional tagged sub-queries. Result
// URLs are deduplicated in first-seen order. A failing sub-query is
// recorded and skipped; a failing main query fails the whole stage.
func (p *Pipeline) SearchStage(ctx context.Context, state core.ResearchState) StageUpdate {
	var (
		metadata []core.VideoMetadata
		errs     []string
	)

	tag := func(videos []core.VideoMetadata, sourceType, sourceQuery string) {
		for i := range videos {
			videos[i].SourceType = sourceType
			videos[i].SourceQuery = sourceQuery
		}
		metadata = append(metadata, videos...)
	}

	mainVideos, err := p.searcher.SearchVideos(ctx, state.Query, state.MaxResultsPerQuery)
	if err != nil {
		logger.Error("search stage failed", err, "query", state.Query)
		return StageUpdate{
			VideoURLs:     []string{},
			VideoMetadata: []core.VideoMetadata{},
			CurrentStep:   core.StepSearchFailed,
			Errors:        []string{err.Error()},
		}
	}
	tag(mainVideos, core.SourceMainQuery, state.Query)

	switch {
	case len(state.Topics) > 0 && len(state.Channels) == 0:
		for _, topic := range state.Topics {
			searchTerm := state.Query + " " + topic
			videos, err := p.searcher.SearchVideos(ctx, searchTerm, state.MaxResultsPerQuery)
			if err != nil {
				errs = append(errs, fmt.Sprintf("topic search %q: %v", searchTerm, err))
				continue
			}
			tag(videos, core.SourceTopic, searchTerm)
		}

	case len(state.Channels) > 0 && len(state.Topics) == 0:
		for _, channel := range state.Channels {
			videos, err := p.searcher.SearchChannel(ctx, state.Query, channel, state.MaxResultsPerQuery)
			if err != nil {
				errs = append(errs, fmt.Sprintf("channel search in %s: %v", channel, err))
				continue
			}
			tag(videos, core.SourceChannel, fmt.Sprintf("%s in %s", state.Query, channel))
		}

	case len(state.Topics) > 0 && len(state.Channels) > 0:
		for _, channel := range state.Channels {
			for _, topic := range state.Topics {
				searchTerm := state.Query + " " + topic
				videos, err := p.searcher.SearchChannel(ctx, searchTerm, channel, state.MaxResultsPerQuery)
				if err != nil {
					errs = append(errs, fmt.Sprintf("topic search %q in %s: %v", searchTerm, channel, err))
					continue
				}
				tag(videos, core.SourceTopicChannel, fmt.Sprintf("%s in %s", searchTerm, channel))
			}
		}
	}

	urls := dedupeURLs(metadata)
	logger.Info("search stage completed", "videos_found", len(urls), "sub_query_errors", len(errs))

	return StageUpdate{
		VideoURLs:     urls,
		VideoMetadata: metadata,
		CurrentStep:   core.StepSearchCompleted,
		Errors:        errs,
	}
}

// dedupeURLs keeps the first occurrence of each URL, preserving order.
func dedupeURLs(metadata []core.VideoMetadata) []string {
	seen := make(map[string]bool, len(metadata))
	urls := make([]string, 0, len(metadata))
	for _, video := range metadata {
		if video.URL == "" || seen[video.URL] {
			continue
		}
		seen[video.URL] = true
		urls = append(urls, video.URL)
	}
	return urls
}

// TranscriptStage fetches one transcript per video URL. Each URL is
// processed independently: an invalid URL or a failed fetch is recorded in
// the error trail and the batch continues. Videos without a transcript are
// absent from the map, never present as error-tagged entries.
func (p *Pipeline) TranscriptStage(ctx context.Context, state core.ResearchState) StageUpdate {
	if len(state.VideoURLs) == 0 {
		return StageUpdate{
			Transcripts: map[string]core.Transcript{},
			CurrentStep: core.StepTranscriptFailed,
			Errors:      []string{"no video URLs available for transcript extraction"},
		}
	}

	transcripts := make(map[string]core.Transcript, len(state.VideoURLs))
	var errs []string

	for _, url := range state.VideoURLs {
		videoID, err := transcript.ExtractVideoID(url)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid URL format: %s", url))
			continue
		}

		result, err := p.transcripts.Fetch(ctx, videoID, state.Language)
		if err != nil {
			errs = append(errs, fmt.Sprintf("error processing %s: %v", url, err))
			continue
		}

		transcripts[videoID] = *result
		logger.Debug("transcript extracted", "video_id", videoID, "language", result.Language, "words", result.WordCount)
	}

	logger.Info("transcript stage completed", "transcripts", len(transcripts), "failures", len(errs))

	return StageUpdate{
		Transcripts: transcripts,
		CurrentStep: core.StepTranscriptCompleted,
		Errors:      errs,
	}
}

// SummaryStage generates one topic-focused summary per transcript.
// Transcripts shorter than the configured minimum are skipped without an
// error entry. A failed generation keeps its map entry with Err set so the
// persistence stage can filter it explicitly.
func (p *Pipeline) SummaryStage(ctx context.Context, state core.ResearchState) StageUpdate {
	if len(state.Transcripts) == 0 {
		return StageUpdate{
			Summaries:   map[string]core.Summary{},
			CurrentStep: core.StepSummaryFailed,
			Errors:      []string{"no transcripts available for summarization"},
		}
	}

	titles := titlesByVideoID(state.VideoMetadata)
	summaries := make(map[string]core.Summary, len(state.Transcripts))

	for videoID, tr := range state.Transcripts {
		text := strings.TrimSpace(tr.Text)
		if len(text) < p.config.MinTranscriptChars {
			// Too short to summarize. Skipped entirely, not recorded as an error.
			logger.Debug("skipping video with insufficient transcript", "video_id", videoID, "chars", len(text))
			continue
		}

		prompt := llm.BuildSummaryPrompt(state.TopicFocus, tr.URL, text)
		summaryText, err := p.generator.GenerateText(ctx, prompt)
		if err != nil {
			logger.Error("summarization failed", err, "video_id", videoID)
			summaries[videoID] = core.Summary{
				VideoID:    videoID,
				URL:        tr.URL,
				VideoTitle: titles[videoID],
				Text:       fmt.Sprintf("Error creating summary: %v", err),
				TopicFocus: state.TopicFocus,
				Err:        true,
			}
			continue
		}

		summaries[videoID] = core.Summary{
			VideoID:        videoID,
			URL:            tr.URL,
			VideoTitle:     titles[videoID],
			Text:           summaryText,
			OriginalLength: len(text),
			SummaryLength:  len(summaryText),
			TopicFocus:     state.TopicFocus,
		}
		logger.Debug("summary created", "video_id", videoID, "summary_chars", len(summaryText))
	}

	logger.Info("summary stage completed", "summaries", len(summaries))

	return StageUpdate{
		Summaries:   summaries,
		CurrentStep: core.StepSummaryCompleted,
	}
}

// titlesByVideoID indexes search metadata titles for summary records.
func titlesByVideoID(metadata []core.VideoMetadata) map[string]string {
	titles := make(map[string]string, len(metadata))
	for _, video := range metadata {
		if _, exists := titles[video.VideoID]; !exists {
			titles[video.VideoID] = video.Title
		}
	}
	return titles
}

// StorageStage writes one durable row per successful summary, upserted by
// video URL. Summaries flagged as errors are filtered out; per-row write
// failures are collected without aborting the loop. An empty summary map
// short-circuits with a failed status before the store is touched.
func (p *Pipeline) StorageStage(ctx context.Context, state core.ResearchState) StageUpdate {
	if len(state.Summaries) == 0 {
		return StageUpdate{
			StorageResults: &core.StorageResult{
				Status:  core.StorageStatusFailed,
				Message: "No summaries to store",
			},
			CurrentStep: core.StepStorageFailed,
			Errors:      []string{"no summaries available for storage"},
		}
	}

	db, err := p.openStore()
	if err != nil {
		logger.Error("storage stage failed to open store", err)
		return StageUpdate{
			StorageResults: &core.StorageResult{
				Status:  core.StorageStatusFailed,
				Message: err.Error(),
			},
			CurrentStep: core.StepStorageFailed,
			Errors:      []string{err.Error()},
		}
	}
	defer func() { _ = db.Close() }()

	var (
		storedCount int
		rowErrors   []string
	)

	for _, summary := range state.Summaries {
		if summary.Err {
			continue
		}

		title := summary.VideoTitle
		if title == "" {
			title = "Unknown Title"
		}

		err := db.UpsertSummary(core.StoredSummary{
			VideoURL:       summary.URL,
			VideoTitle:     title,
			Summary:        summary.Text,
			TopicFocus:     state.TopicFocus,
			Query:          state.Query,
			OriginalLength: summary.OriginalLength,
			SummaryLength:  summary.SummaryLength,
		})
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("error storing %s: %v", summary.URL, err))
			continue
		}
		storedCount++
	}

	logger.Info("storage stage completed", "stored", storedCount, "row_errors", len(rowErrors))

	return StageUpdate{
		StorageResults: &core.StorageResult{
			Status:      core.StorageStatusSuccess,
			StoredCount: storedCount,
			Errors:      rowErrors,
		},
		CurrentStep: core.StepStorageCompleted,
	}
}

// NoSummariesReport is the fixed report text returned when the store holds
// no summaries for the current query and topic focus.
const NoSummariesReport = "No summaries found in database to create report."

// ReportStage synthesizes all stored summaries matching the query or topic
// focus into one long-form report, persists it keyed by topic focus, and
// records how many sources went into it. With zero matching rows the stage
// fails without invoking text generation.
func (p *Pipeline) ReportStage(ctx context.Context, state core.ResearchState) StageUpdate {
	db, err := p.openStore()
	if err != nil {
		logger.Error("report stage failed to open store", err)
		return StageUpdate{
			FinalReport: strPtr(""),
			CurrentStep: core.StepReportFailed,
			Errors:      []string{err.Error()},
		}
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QuerySummaries(state.Query, state.TopicFocus)
	if err != nil {
		logger.Error("report stage failed to load summaries", err)
		return StageUpdate{
			FinalReport: strPtr(""),
			CurrentStep: core.StepReportFailed,
			Errors:      []string{err.Error()},
		}
	}

	if len(rows) == 0 {
		return StageUpdate{
			FinalReport: strPtr(NoSummariesReport),
			CurrentStep: core.StepReportFailed,
			Errors:      []string{"no stored summaries available"},
		}
	}

	prompt := llm.BuildReportPrompt(state.Query, state.TopicFocus, rows)
	report, err := p.generator.GenerateText(ctx, prompt)
	if err != nil {
		logger.Error("report generation failed", err)
		return StageUpdate{
			FinalReport: strPtr(fmt.Sprintf("Error generating report: %v", err)),
			CurrentStep: core.StepReportFailed,
			Errors:      []string{err.Error()},
		}
	}

	update := StageUpdate{
		FinalReport: strPtr(report),
		SourcesUsed: intPtr(len(rows)),
		CurrentStep: core.StepReportCompleted,
	}

	// A failed report save is recoverable; the report itself is still returned.
	if err := db.UpsertReport(state.TopicFocus, report); err != nil {
		logger.Error("failed to save final report", err)
		update.Errors = append(update.Errors, fmt.Sprintf("error saving final report: %v", err))
	}

	logger.Info("report stage completed", "sources_used", len(rows))
	return update
}
