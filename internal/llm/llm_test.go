package llm

import (
	"context"
	"os"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/spf13/viper"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_AI_API_KEY", "")
	viper.Set("gemini.api_key", "")
	defer viper.Set("gemini.api_key", nil)

	if _, err := NewClient(context.Background(), ""); err == nil {
		t.Error("expected an error without an API key")
	}
}

func TestNewClientModelSelection(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	client, err := NewClient(context.Background(), "gemini-1.5-pro")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	if client.ModelName() != "gemini-1.5-pro" {
		t.Errorf("ModelName() = %q, want gemini-1.5-pro", client.ModelName())
	}
}

func TestNewClientDefaultModel(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	viper.Set("gemini.model", "")

	client, err := NewClient(context.Background(), "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	if client.ModelName() != DefaultModel {
		t.Errorf("ModelName() = %q, want %q", client.ModelName(), DefaultModel)
	}
}

func TestResponseText(t *testing.T) {
	if got := responseText(nil); got != "" {
		t.Errorf("responseText(nil) = %q, want empty", got)
	}

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []genai.Part{genai.Text("hello "), genai.Text("world")},
			},
		}},
	}
	if got := responseText(resp); got != "hello world" {
		t.Errorf("responseText() = %q, want %q", got, "hello world")
	}
}

// TestGenerateTextLive exercises the real API and is skipped unless a key is
// present in the environment.
func TestGenerateTextLive(t *testing.T) {
	if os.Getenv("GEMINI_API_KEY") == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	client, err := NewClient(context.Background(), "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	text, err := client.GenerateText(context.Background(), "Reply with the single word: ok")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text == "" {
		t.Error("expected non-empty response")
	}
}
