package llm

import (
	"strings"
	"testing"

	"tubescout/internal/core"
)

func TestBuildSummaryPrompt(t *testing.T) {
	prompt := BuildSummaryPrompt("go concurrency", "https://www.youtube.com/watch?v=abc123def45", "the transcript text")

	for _, want := range []string{
		"Topic Focus: go concurrency",
		"Video URL: https://www.youtube.com/watch?v=abc123def45",
		"the transcript text",
		"### Key Points:",
		"### Detailed Summary:",
		"### Important Quotes:",
		"### Relevance to Topic:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("summary prompt missing %q", want)
		}
	}
}

func TestBuildSummaryPromptTruncates(t *testing.T) {
	long := strings.Repeat("x", MaxTranscriptPromptChars+500)
	prompt := BuildSummaryPrompt("focus", "url", long)

	if strings.Contains(prompt, long) {
		t.Error("transcript should have been truncated")
	}
	if !strings.Contains(prompt, long[:MaxTranscriptPromptChars]) {
		t.Error("truncated transcript prefix missing from prompt")
	}
}

func TestBuildReportPrompt(t *testing.T) {
	summaries := []core.StoredSummary{
		{VideoURL: "u1", VideoTitle: "First Video", Summary: "summary one"},
		{VideoURL: "u2", VideoTitle: "Second Video", Summary: "summary two"},
	}

	prompt := BuildReportPrompt("golang channels", "go concurrency", summaries)

	for _, want := range []string{
		"Original Query: golang channels",
		"Topic Focus: go concurrency",
		"Number of Sources: 2",
		"--- Video 1: First Video ---",
		"--- Video 2: Second Video ---",
		"summary one",
		"summary two",
		"# Complete Guide: go concurrency",
		"## Executive Summary",
		"## Main Findings",
		"## Detailed Analysis",
		"## Key Recommendations",
		"## Sources Summary",
		"## Conclusion",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("report prompt missing %q", want)
		}
	}
}
