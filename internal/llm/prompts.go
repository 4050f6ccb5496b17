package llm

import (
	"fmt"
	"strings"

	"tubescout/internal/core"
)

// MaxTranscriptPromptChars bounds how much transcript text is sent to the
// model for a single summary, to stay inside input-size limits.
const MaxTranscriptPromptChars = 15000

// BuildSummaryPrompt renders the per-video summarization instruction. The
// transcript text is truncated to MaxTranscriptPromptChars before being
// embedded in the prompt.
func BuildSummaryPrompt(topicFocus, videoURL, transcriptText string) string {
	if len(transcriptText) > MaxTranscriptPromptChars {
		transcriptText = transcriptText[:MaxTranscriptPromptChars]
	}

	var prompt strings.Builder

	prompt.WriteString("You are an expert content summarizer. Your task is to create clean, well-structured summaries of YouTube video transcripts.\n\n")
	prompt.WriteString(fmt.Sprintf("Topic Focus: %s\n\n", topicFocus))

	prompt.WriteString("Instructions:\n")
	prompt.WriteString("1. Clean up the transcript by removing filler words, repetitions, and unclear segments\n")
	prompt.WriteString("2. Organize the content into clear, logical sections\n")
	prompt.WriteString("3. Preserve all important information and key insights\n")
	prompt.WriteString(fmt.Sprintf("4. Focus on content relevant to: %s\n", topicFocus))
	prompt.WriteString("5. Create a readable, professional summary\n")
	prompt.WriteString("6. Include key quotes when they add value\n")
	prompt.WriteString("7. Maintain the original meaning and context\n\n")

	prompt.WriteString(fmt.Sprintf("Video URL: %s\n\n", videoURL))
	prompt.WriteString("Raw Transcript:\n")
	prompt.WriteString(transcriptText)
	prompt.WriteString("\n\nPlease provide a well-structured summary in the following format:\n\n")
	prompt.WriteString("## Video Summary\n\n")
	prompt.WriteString("### Key Points:\n- [Main points in bullet format]\n\n")
	prompt.WriteString("### Detailed Summary:\n[Organized narrative summary with clear paragraphs]\n\n")
	prompt.WriteString("### Important Quotes:\n[Any significant quotes that add value]\n\n")
	prompt.WriteString("### Relevance to Topic:\n[How this content relates to the topic focus]\n")

	return prompt.String()
}

// BuildReportPrompt renders the final synthesis instruction over all stored
// summaries matching the current query and topic focus.
func BuildReportPrompt(query, topicFocus string, summaries []core.StoredSummary) string {
	var body strings.Builder
	for i, summary := range summaries {
		body.WriteString(fmt.Sprintf("\n--- Video %d: %s ---\n", i+1, summary.VideoTitle))
		body.WriteString(fmt.Sprintf("URL: %s\n", summary.VideoURL))
		body.WriteString(fmt.Sprintf("Summary: %s\n", summary.Summary))
	}

	var prompt strings.Builder

	prompt.WriteString("You are an expert research analyst. Create a comprehensive, detailed guide based on multiple YouTube video summaries.\n\n")
	prompt.WriteString(fmt.Sprintf("Original Query: %s\n", query))
	prompt.WriteString(fmt.Sprintf("Topic Focus: %s\n", topicFocus))
	prompt.WriteString(fmt.Sprintf("Number of Sources: %d\n\n", len(summaries)))

	prompt.WriteString("Instructions:\n")
	prompt.WriteString("1. Synthesize ALL the information from the summaries below\n")
	prompt.WriteString("2. Create a complete, detailed guide about the topic\n")
	prompt.WriteString("3. Organize information logically with clear sections\n")
	prompt.WriteString("4. Include key insights, patterns, and conclusions\n")
	prompt.WriteString("5. Reference specific videos when mentioning important points\n")
	prompt.WriteString("6. Make it actionable and comprehensive\n")
	prompt.WriteString("7. Avoid repetition but ensure completeness\n\n")

	prompt.WriteString("Video Summaries:\n")
	prompt.WriteString(body.String())

	prompt.WriteString("\nCreate a comprehensive research report in this format:\n\n")
	prompt.WriteString(fmt.Sprintf("# Complete Guide: %s\n\n", topicFocus))
	prompt.WriteString("## Executive Summary\n[High-level overview and key findings]\n\n")
	prompt.WriteString("## Main Findings\n[Core insights organized by themes]\n\n")
	prompt.WriteString("## Detailed Analysis\n[In-depth analysis with specific examples]\n\n")
	prompt.WriteString("## Key Recommendations\n[Actionable recommendations based on the research]\n\n")
	prompt.WriteString("## Sources Summary\n[Brief overview of video sources used]\n\n")
	prompt.WriteString("## Conclusion\n[Final thoughts and next steps]\n")

	return prompt.String()
}
