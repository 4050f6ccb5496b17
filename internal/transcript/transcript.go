package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"tubescout/internal/core"
)

// ErrNoTranscript is returned when a video has no caption track in any
// language tier.
var ErrNoTranscript = errors.New("no transcript available")

// Fetcher retrieves video transcripts without an API key by reading the
// caption track list embedded in the watch page and downloading the chosen
// track's timedtext data.
type Fetcher struct {
	client  *http.Client
	baseURL string
}

// NewFetcher creates a transcript fetcher with a sane request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: "https://www.youtube.com",
	}
}

// captionTrack is one entry of the watch page's caption track list.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" marks auto-generated tracks
}

func (t captionTrack) generated() bool {
	return t.Kind == "asr"
}

// Fetch retrieves the transcript for a video, preferring language in this
// order: manual preferred, generated preferred, manual English, generated
// English, first track available. The first tier that matches wins.
func (f *Fetcher) Fetch(ctx context.Context, videoID, language string) (*core.Transcript, error) {
	tracks, err := f.listTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, ErrNoTranscript
	}

	track, found := selectTrack(tracks, language)
	if !found {
		return nil, ErrNoTranscript
	}

	text, err := f.fetchTrack(ctx, track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch caption track for %s: %w", videoID, err)
	}
	if text == "" {
		return nil, ErrNoTranscript
	}

	return &core.Transcript{
		VideoID:     videoID,
		URL:         fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID),
		Text:        text,
		Language:    track.LanguageCode,
		WordCount:   len(strings.Fields(text)),
		IsGenerated: track.generated(),
	}, nil
}

// selectTrack walks the fallback tiers in order and short-circuits on the
// first match.
func selectTrack(tracks []captionTrack, language string) (captionTrack, bool) {
	type tier func(captionTrack) bool
	tiers := []tier{
		func(t captionTrack) bool { return t.LanguageCode == language && !t.generated() },
		func(t captionTrack) bool { return t.LanguageCode == language && t.generated() },
	}
	if language != "en" {
		tiers = append(tiers,
			func(t captionTrack) bool { return t.LanguageCode == "en" && !t.generated() },
		)
	}
	tiers = append(tiers,
		func(t captionTrack) bool { return t.LanguageCode == "en" && t.generated() },
		func(t captionTrack) bool { return true },
	)

	for _, matches := range tiers {
		for _, track := range tracks {
			if matches(track) {
				return track, true
			}
		}
	}
	return captionTrack{}, false
}

var playerResponseRe = regexp.MustCompile(`ytInitialPlayerResponse\s*=\s*(\{.+?\})\s*;`)

// listTracks fetches the watch page and decodes the caption track list out
// of the ytInitialPlayerResponse bootstrap JSON.
func (f *Fetcher) listTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	watchURL := fmt.Sprintf("%s/watch?v=%s", f.baseURL, videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create watch page request: %w", err)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watch page for %s: %w", videoID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page for %s returned status %d", videoID, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse watch page: %w", err)
	}

	var raw string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if matches := playerResponseRe.FindStringSubmatch(s.Text()); len(matches) > 1 {
			raw = matches[1]
			return false
		}
		return true
	})
	if raw == "" {
		return nil, fmt.Errorf("player response not found on watch page for %s", videoID)
	}

	var playerResponse struct {
		Captions struct {
			Renderer struct {
				CaptionTracks []captionTrack `json:"captionTracks"`
			} `json:"playerCaptionsTracklistRenderer"`
		} `json:"captions"`
	}
	if err := json.Unmarshal([]byte(raw), &playerResponse); err != nil {
		return nil, fmt.Errorf("failed to decode player response for %s: %w", videoID, err)
	}

	return playerResponse.Captions.Renderer.CaptionTracks, nil
}

// timedText is the XML payload served for a caption track.
type timedText struct {
	Segments []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// fetchTrack downloads one caption track and joins its segment texts with
// single spaces.
func (f *Fetcher) fetchTrack(ctx context.Context, trackURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create caption request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("caption track returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read caption body: %w", err)
	}

	var payload timedText
	if err := xml.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to parse caption XML: %w", err)
	}

	return joinSegments(payload), nil
}

var spaceRe = regexp.MustCompile(`\s+`)

// joinSegments concatenates segment texts with single-space separators,
// unescaping the HTML entities timedtext carries.
func joinSegments(payload timedText) string {
	parts := make([]string, 0, len(payload.Segments))
	for _, segment := range payload.Segments {
		text := strings.TrimSpace(html.UnescapeString(segment.Text))
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.TrimSpace(spaceRe.ReplaceAllString(strings.Join(parts, " "), " "))
}
