package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	viper.Reset()
	t.Cleanup(func() {
		Reset()
		viper.Reset()
	})

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.LogLevel != "info" {
		t.Errorf("App.LogLevel = %q, want info", cfg.App.LogLevel)
	}
	if cfg.Gemini.Model != "gemini-1.5-flash-latest" {
		t.Errorf("Gemini.Model = %q", cfg.Gemini.Model)
	}
	if cfg.Research.Language != "en" {
		t.Errorf("Research.Language = %q, want en", cfg.Research.Language)
	}
	if cfg.Research.MaxResultsPerQuery != 5 {
		t.Errorf("Research.MaxResultsPerQuery = %d, want 5", cfg.Research.MaxResultsPerQuery)
	}
	if cfg.Storage.DataDir != ".tubescout" {
		t.Errorf("Storage.DataDir = %q, want .tubescout", cfg.Storage.DataDir)
	}
	if cfg.Output.Directory != "reports" {
		t.Errorf("Output.Directory = %q, want reports", cfg.Output.Directory)
	}
}

func TestLoadIsCached(t *testing.T) {
	Reset()
	viper.Reset()
	t.Cleanup(func() {
		Reset()
		viper.Reset()
	})

	first, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first != second {
		t.Error("Load should return the cached configuration")
	}
}

func TestEnvironmentKeyAliases(t *testing.T) {
	Reset()
	viper.Reset()
	t.Cleanup(func() {
		Reset()
		viper.Reset()
	})

	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_GEMINI_API_KEY", "alias-key")
	t.Setenv("YOUTUBE_API_KEY", "yt-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gemini.APIKey != "alias-key" {
		t.Errorf("Gemini.APIKey = %q, want alias-key", cfg.Gemini.APIKey)
	}
	if cfg.YouTube.APIKey != "yt-key" {
		t.Errorf("YouTube.APIKey = %q, want yt-key", cfg.YouTube.APIKey)
	}
}
