package youtube

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"tubescout/internal/core"
	"tubescout/internal/logger"
)

// Client wraps the YouTube Data API v3 for video search. It implements the
// pipeline's VideoSearcher interface.
type Client struct {
	service   *youtube.Service
	rateLimit time.Duration
	lastCall  time.Time
}

// NewClient creates a YouTube Data API client with the given API key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youTube API key is required. Set YOUTUBE_API_KEY environment variable or youtube.api_key in config file")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service:   service,
		rateLimit: 100 * time.Millisecond, // polite spacing between sub-queries
	}, nil
}

// SearchVideos searches for videos matching the query, capped at maxResults.
func (c *Client) SearchVideos(ctx context.Context, query string, maxResults int) ([]core.VideoMetadata, error) {
	c.throttle()

	call := c.service.Search.List([]string{"id", "snippet"}).
		Q(query).
		Type("video").
		Order("relevance").
		MaxResults(int64(maxResults))

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search failed for %q: %w", query, err)
	}

	results := itemsToMetadata(resp.Items)
	logger.Info("YouTube search completed", "query", query, "results_found", len(results))
	return results, nil
}

// SearchChannel searches for videos matching the query within a single
// channel, identified by its handle or display name.
func (c *Client) SearchChannel(ctx context.Context, query, channel string, maxResults int) ([]core.VideoMetadata, error) {
	channelID, err := c.resolveChannelID(ctx, channel)
	if err != nil {
		return nil, err
	}

	c.throttle()

	call := c.service.Search.List([]string{"id", "snippet"}).
		Q(query).
		Type("video").
		ChannelId(channelID).
		Order("relevance").
		MaxResults(int64(maxResults))

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("youtube channel search failed for %q in %s: %w", query, channel, err)
	}

	results := itemsToMetadata(resp.Items)
	logger.Info("YouTube channel search completed", "query", query, "channel", channel, "results_found", len(results))
	return results, nil
}

// resolveChannelID finds the channel ID for a handle or display name via a
// channel-type search.
func (c *Client) resolveChannelID(ctx context.Context, channel string) (string, error) {
	c.throttle()

	call := c.service.Search.List([]string{"id"}).
		Q(channel).
		Type("channel").
		MaxResults(1)

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to resolve channel %q: %w", channel, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Id == nil || resp.Items[0].Id.ChannelId == "" {
		return "", fmt.Errorf("channel not found: %s", channel)
	}

	return resp.Items[0].Id.ChannelId, nil
}

// throttle enforces the fixed spacing between API calls.
func (c *Client) throttle() {
	if elapsed := time.Since(c.lastCall); elapsed < c.rateLimit {
		time.Sleep(c.rateLimit - elapsed)
	}
	c.lastCall = time.Now()
}

// itemsToMetadata converts API search results to core metadata records.
// Provenance tags are left for the search stage to fill in.
func itemsToMetadata(items []*youtube.SearchResult) []core.VideoMetadata {
	results := make([]core.VideoMetadata, 0, len(items))
	for _, item := range items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		results = append(results, core.VideoMetadata{
			VideoID:     item.Id.VideoId,
			Title:       item.Snippet.Title,
			URL:         fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.Id.VideoId),
			ChannelName: item.Snippet.ChannelTitle,
			PublishedAt: publishedAt,
		})
	}
	return results
}
