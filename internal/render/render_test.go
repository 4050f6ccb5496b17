package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteReport("# Complete Guide\n\ncontent", "Go Concurrency Patterns!", dir)
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	wantName := "report_go-concurrency-patterns_" + time.Now().UTC().Format("2006-01-02") + ".md"
	if filepath.Base(path) != wantName {
		t.Errorf("filename = %s, want %s", filepath.Base(path), wantName)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !strings.HasPrefix(string(content), "# Complete Guide") {
		t.Errorf("unexpected report content: %q", content)
	}
}

func TestWriteReportCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	path, err := WriteReport("content", "topic", dir)
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("report file missing: %v", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Go Concurrency", "go-concurrency"},
		{"  AI / ML & Robotics  ", "ai-ml-robotics"},
		{"---", "report"},
		{"", "report"},
		{"already-clean", "already-clean"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
