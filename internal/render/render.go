package render

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// WriteReport saves a generated research report as a markdown file named
// after the topic focus and the current date, creating the output directory
// if needed. It returns the path written.
func WriteReport(report, topicFocus, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = "reports"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	dateStr := time.Now().UTC().Format("2006-01-02")
	filename := fmt.Sprintf("report_%s_%s.md", slugify(topicFocus), dateStr)
	filePath := filepath.Join(outputDir, filename)

	if err := os.WriteFile(filePath, []byte(report), 0644); err != nil {
		return "", fmt.Errorf("failed to write report file %s: %w", filePath, err)
	}

	return filePath, nil
}

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a topic focus into a filesystem-friendly name.
func slugify(s string) string {
	slug := nonSlugRe.ReplaceAllString(strings.ToLower(s), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "report"
	}
	return slug
}
