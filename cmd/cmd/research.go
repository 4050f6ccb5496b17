package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubescout/internal/config"
	"tubescout/internal/core"
	"tubescout/internal/llm"
	"tubescout/internal/pipeline"
	"tubescout/internal/render"
)

var (
	researchQuery      string
	researchTopics     []string
	researchChannels   []string
	researchMaxResults int
	researchLanguage   string
	researchFocus      string
	researchOutputDir  string
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Run the full research pipeline for a query",
	Long: `Search YouTube for videos matching the query (optionally fanned out
across extra topics and restricted to channels), extract transcripts,
summarize each video against the topic focus, store the summaries, and
synthesize a final report.`,
	RunE: runResearch,
}

func init() {
	rootCmd.AddCommand(researchCmd)

	researchCmd.Flags().StringVarP(&researchQuery, "query", "q", "", "main search query (required)")
	researchCmd.Flags().StringSliceVarP(&researchTopics, "topic", "t", nil, "additional topic to search (repeatable)")
	researchCmd.Flags().StringSliceVarP(&researchChannels, "channel", "c", nil, "channel to restrict searches to (repeatable)")
	researchCmd.Flags().IntVarP(&researchMaxResults, "max-results", "n", 0, "max videos per sub-query")
	researchCmd.Flags().StringVarP(&researchLanguage, "language", "l", "", "preferred transcript language")
	researchCmd.Flags().StringVarP(&researchFocus, "focus", "f", "", "topic focus for summaries and report (defaults to the query)")
	researchCmd.Flags().StringVarP(&researchOutputDir, "output", "o", "", "directory for the report markdown file")

	_ = researchCmd.MarkFlagRequired("query")
}

func runResearch(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	maxResults := researchMaxResults
	if maxResults == 0 {
		maxResults = cfg.Research.MaxResultsPerQuery
	}
	language := researchLanguage
	if language == "" {
		language = cfg.Research.Language
	}

	gemini, err := llm.NewClient(cmd.Context(), cfg.Gemini.Model)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = gemini.Close() }()

	p, err := pipeline.NewBuilder(cfg).WithGenerator(gemini).Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	initial := core.NewResearchState(researchQuery, researchTopics, researchChannels, maxResults, language, researchFocus)

	fmt.Printf("🔎 Researching %q (focus: %s)...\n\n", initial.Query, initial.TopicFocus)
	final := p.Run(cmd.Context(), initial)

	printRunSummary(final)

	if final.CurrentStep == core.StepReportCompleted && final.FinalReport != "" {
		outputDir := researchOutputDir
		if outputDir == "" {
			outputDir = cfg.Output.Directory
		}
		path, err := render.WriteReport(final.FinalReport, final.TopicFocus, outputDir)
		if err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
		fmt.Printf("\n📄 Report saved to %s\n", path)
	}

	return nil
}

// printRunSummary prints a human-readable recap of the finished run.
func printRunSummary(state core.ResearchState) {
	fmt.Printf("✓ Run finished (last step: %s)\n", state.CurrentStep)
	fmt.Printf("  • Videos found:        %d\n", len(state.VideoURLs))
	fmt.Printf("  • Transcripts:         %d\n", len(state.Transcripts))
	fmt.Printf("  • Summaries:           %d\n", len(state.Summaries))
	fmt.Printf("  • Stored rows:         %d\n", state.StorageResults.StoredCount)
	if state.SourcesUsed > 0 {
		fmt.Printf("  • Report sources used: %d\n", state.SourcesUsed)
	}

	if len(state.Errors) > 0 {
		fmt.Printf("\n⚠️  %d recoverable error(s) during the run:\n", len(state.Errors))
		for _, e := range state.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
}
