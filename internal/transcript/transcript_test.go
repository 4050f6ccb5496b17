package transcript

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSelectTrack(t *testing.T) {
	manual := func(lang string) captionTrack {
		return captionTrack{BaseURL: "manual-" + lang, LanguageCode: lang}
	}
	generated := func(lang string) captionTrack {
		return captionTrack{BaseURL: "asr-" + lang, LanguageCode: lang, Kind: "asr"}
	}

	tests := []struct {
		name     string
		tracks   []captionTrack
		language string
		wantURL  string
		wantNone bool
	}{
		{
			name:     "manual preferred language wins over everything",
			tracks:   []captionTrack{generated("fr"), manual("en"), manual("fr")},
			language: "fr",
			wantURL:  "manual-fr",
		},
		{
			name:     "generated preferred language beats manual english",
			tracks:   []captionTrack{manual("en"), generated("fr")},
			language: "fr",
			wantURL:  "asr-fr",
		},
		{
			name:     "manual english when preferred language missing",
			tracks:   []captionTrack{generated("en"), manual("en")},
			language: "fr",
			wantURL:  "manual-en",
		},
		{
			name:     "generated english fallback",
			tracks:   []captionTrack{manual("de"), generated("en")},
			language: "fr",
			wantURL:  "asr-en",
		},
		{
			name:     "english request falls back to generated english",
			tracks:   []captionTrack{generated("en"), manual("de")},
			language: "en",
			wantURL:  "asr-en",
		},
		{
			name:     "last resort is the first track listed",
			tracks:   []captionTrack{manual("de"), manual("ja")},
			language: "fr",
			wantURL:  "manual-de",
		},
		{
			name:     "no tracks",
			tracks:   nil,
			language: "en",
			wantNone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, found := selectTrack(tt.tracks, tt.language)
			if tt.wantNone {
				if found {
					t.Fatalf("expected no track, got %q", track.BaseURL)
				}
				return
			}
			if !found {
				t.Fatal("expected a track, got none")
			}
			if track.BaseURL != tt.wantURL {
				t.Errorf("selected %q, want %q", track.BaseURL, tt.wantURL)
			}
		})
	}
}

func TestJoinSegments(t *testing.T) {
	payload := timedText{Segments: []struct {
		Text string `xml:",chardata"`
	}{
		{Text: "hello   there"},
		{Text: "  "},
		{Text: "it&#39;s a &amp; test"},
	}}

	got := joinSegments(payload)
	want := "hello there it's a & test"
	if got != want {
		t.Errorf("joinSegments() = %q, want %q", got, want)
	}
}

func watchPageHTML(playerResponse string) string {
	return fmt.Sprintf(`<!DOCTYPE html><html><head>
<script>var other = 1;</script>
<script>var ytInitialPlayerResponse = %s;</script>
</head><body></body></html>`, playerResponse)
}

func TestFetcher_Fetch(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != "testvideo01" {
			http.NotFound(w, r)
			return
		}
		playerResponse := fmt.Sprintf(`{"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"%s/timedtext?lang=en","languageCode":"en","kind":"asr"}]}}}`, srv.URL)
		fmt.Fprint(w, watchPageHTML(playerResponse))
	})
	mux.HandleFunc("/timedtext", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0" encoding="utf-8"?>
<transcript>
<text start="0.0" dur="2.1">welcome to the</text>
<text start="2.1" dur="1.8">channel &amp; the show</text>
</transcript>`)
	})

	f := &Fetcher{client: srv.Client(), baseURL: srv.URL}

	// The requested language has no track; the English auto-generated
	// track is used instead.
	tr, err := f.Fetch(context.Background(), "testvideo01", "fr")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if tr.Text != "welcome to the channel & the show" {
		t.Errorf("unexpected text: %q", tr.Text)
	}
	if tr.Language != "en" {
		t.Errorf("expected fallback to en, got %q", tr.Language)
	}
	if !tr.IsGenerated {
		t.Error("asr track should be marked generated")
	}
	if tr.VideoID != "testvideo01" {
		t.Errorf("unexpected video ID %q", tr.VideoID)
	}
	if tr.WordCount != 7 {
		t.Errorf("expected word count 7, got %d", tr.WordCount)
	}
}

func TestFetcher_FetchNoCaptions(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, watchPageHTML(`{"captions":{}}`))
	})

	f := &Fetcher{client: srv.Client(), baseURL: srv.URL}

	if _, err := f.Fetch(context.Background(), "testvideo01", "en"); err != ErrNoTranscript {
		t.Errorf("expected ErrNoTranscript, got %v", err)
	}
}

func TestFetcher_FetchWatchPageError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := &Fetcher{client: srv.Client(), baseURL: srv.URL}

	if _, err := f.Fetch(context.Background(), "testvideo01", "en"); err == nil {
		t.Error("expected error for non-200 watch page")
	}
}
