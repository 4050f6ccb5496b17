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
	reportQuery     string
	reportFocus     string
	reportOutputDir string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Regenerate the final report from stored summaries",
	Long: `Run only the report stage: load all stored summaries matching the
query or topic focus and synthesize them into a fresh report, without
searching or summarizing anything new.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportQuery, "query", "q", "", "query the summaries were produced for (required)")
	reportCmd.Flags().StringVarP(&reportFocus, "focus", "f", "", "topic focus (defaults to the query)")
	reportCmd.Flags().StringVarP(&reportOutputDir, "output", "o", "", "directory for the report markdown file")

	_ = reportCmd.MarkFlagRequired("query")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	gemini, err := llm.NewClient(cmd.Context(), cfg.Gemini.Model)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = gemini.Close() }()

	p, err := pipeline.NewBuilder(cfg).WithGenerator(gemini).BuildReportOnly()
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	state := core.NewResearchState(reportQuery, nil, nil, 1, cfg.Research.Language, reportFocus)
	final := p.RunReport(cmd.Context(), state)

	if final.CurrentStep != core.StepReportCompleted {
		fmt.Println(final.FinalReport)
		for _, e := range final.Errors {
			fmt.Printf("  - %s\n", e)
		}
		return nil
	}

	fmt.Printf("✓ Report generated from %d source(s)\n", final.SourcesUsed)

	outputDir := reportOutputDir
	if outputDir == "" {
		outputDir = cfg.Output.Directory
	}
	path, err := render.WriteReport(final.FinalReport, final.TopicFocus, outputDir)
	if err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	fmt.Printf("📄 Report saved to %s\n", path)

	return nil
}
