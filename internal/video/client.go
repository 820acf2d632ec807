// Package video fetches recent uploads from the YouTube Data API and caches
// the merged list.
package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrUnavailable     = errors.New("video API temporarily unavailable")
)

type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Thumbnail    string    `json:"thumbnail"`
	URL          string    `json:"url"`
	PublishedAt  time.Time `json:"publishedAt"`
	ChannelTitle string    `json:"channelTitle"`
}

// Client talks to the YouTube Data API v3. Calls go through a circuit breaker
// that opens after repeated upstream failures.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a client. A nil httpClient uses a 10s timeout client.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "youtube",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			IsSuccessful: func(err error) bool {
				// A missing channel is a caller problem, not an upstream failure
				return err == nil || errors.Is(err, ErrChannelNotFound)
			},
		}),
	}
}

// State reports the circuit breaker state.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

type channelsResponse struct {
	Items []struct {
		ContentDetails struct {
			RelatedPlaylists struct {
				Uploads string `json:"uploads"`
			} `json:"relatedPlaylists"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type thumbnail struct {
	URL string `json:"url"`
}

type playlistItemsResponse struct {
	Items []struct {
		Snippet struct {
			Title        string    `json:"title"`
			Description  string    `json:"description"`
			PublishedAt  time.Time `json:"publishedAt"`
			ChannelTitle string    `json:"channelTitle"`
			Thumbnails   struct {
				Default *thumbnail `json:"default"`
				Medium  *thumbnail `json:"medium"`
				High    *thumbnail `json:"high"`
			} `json:"thumbnails"`
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
}

// ChannelVideos returns up to limit of the channel's most recent uploads.
func (c *Client) ChannelVideos(ctx context.Context, channelID string, limit int) ([]Video, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.channelVideos(ctx, channelID, limit)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}
	return result.([]Video), nil
}

func (c *Client) channelVideos(ctx context.Context, channelID string, limit int) ([]Video, error) {
	var channels channelsResponse
	err := c.get(ctx, "channels", url.Values{
		"part": {"contentDetails"},
		"id":   {channelID},
	}, &channels)
	if err != nil {
		return nil, err
	}
	if len(channels.Items) == 0 || channels.Items[0].ContentDetails.RelatedPlaylists.Uploads == "" {
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, channelID)
	}

	var items playlistItemsResponse
	err = c.get(ctx, "playlistItems", url.Values{
		"part":       {"snippet"},
		"playlistId": {channels.Items[0].ContentDetails.RelatedPlaylists.Uploads},
		"maxResults": {strconv.Itoa(limit)},
	}, &items)
	if err != nil {
		return nil, err
	}

	videos := make([]Video, 0, len(items.Items))
	for _, it := range items.Items {
		s := it.Snippet
		if s.ResourceID.VideoID == "" {
			continue
		}
		videos = append(videos, Video{
			ID:           s.ResourceID.VideoID,
			Title:        s.Title,
			Description:  s.Description,
			Thumbnail:    bestThumbnail(s.Thumbnails.High, s.Thumbnails.Medium, s.Thumbnails.Default),
			URL:          "https://www.youtube.com/watch?v=" + s.ResourceID.VideoID,
			PublishedAt:  s.PublishedAt,
			ChannelTitle: s.ChannelTitle,
		})
	}
	return videos, nil
}

func bestThumbnail(candidates ...*thumbnail) string {
	for _, t := range candidates {
		if t != nil && t.URL != "" {
			return t.URL
		}
	}
	return ""
}

func (c *Client) get(ctx context.Context, resource string, params url.Values, v interface{}) error {
	params.Set("key", c.apiKey)
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, resource, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", resource, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", resource, err)
	}
	return nil
}
