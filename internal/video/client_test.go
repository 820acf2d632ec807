package video_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/snoody/tft-tierlist/internal/video"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeYouTube(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	calls := &atomic.Int32{}
	mux := http.NewServeMux()
	mux.HandleFunc("/channels", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		items := []map[string]interface{}{}
		switch r.URL.Query().Get("id") {
		case "UC_good":
			items = append(items, map[string]interface{}{
				"contentDetails": map[string]interface{}{
					"relatedPlaylists": map[string]string{"uploads": "UU_good"},
				},
			})
		case "UC_broken":
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"items": items})
	})
	mux.HandleFunc("/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "UU_good", r.URL.Query().Get("playlistId"))
		assert.Equal(t, "2", r.URL.Query().Get("maxResults"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				{"snippet": map[string]interface{}{
					"title":        "Juggernaut guide",
					"publishedAt":  "2026-10-01T12:00:00Z",
					"channelTitle": "Good Channel",
					"thumbnails": map[string]interface{}{
						"default": map[string]string{"url": "https://i.ytimg.com/default.jpg"},
						"high":    map[string]string{"url": "https://i.ytimg.com/high.jpg"},
					},
					"resourceId": map[string]string{"videoId": "abc123"},
				}},
				{"snippet": map[string]interface{}{
					"title":      "Deleted video",
					"resourceId": map[string]string{},
				}},
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, calls
}

func TestClient_ChannelVideos(t *testing.T) {
	server, _ := fakeYouTube(t)
	client := video.NewClient(server.URL+"/", "test-key", server.Client())

	videos, err := client.ChannelVideos(context.Background(), "UC_good", 2)
	require.NoError(t, err)
	require.Len(t, videos, 1)

	v := videos[0]
	assert.Equal(t, "abc123", v.ID)
	assert.Equal(t, "Juggernaut guide", v.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", v.URL)
	assert.Equal(t, "https://i.ytimg.com/high.jpg", v.Thumbnail)
	assert.Equal(t, "Good Channel", v.ChannelTitle)
	assert.True(t, v.PublishedAt.Equal(time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)))
}

func TestClient_UnknownChannel(t *testing.T) {
	server, _ := fakeYouTube(t)
	client := video.NewClient(server.URL, "test-key", server.Client())

	for i := 0; i < 10; i++ {
		_, err := client.ChannelVideos(context.Background(), "UC_missing", 2)
		assert.ErrorIs(t, err, video.ErrChannelNotFound)
	}
	assert.Equal(t, gobreaker.StateClosed, client.State())
}

func TestClient_BreakerOpensOnUpstreamFailures(t *testing.T) {
	server, calls := fakeYouTube(t)
	client := video.NewClient(server.URL, "test-key", server.Client())

	for i := 0; i < 5; i++ {
		_, err := client.ChannelVideos(context.Background(), "UC_broken", 2)
		require.Error(t, err)
		assert.NotErrorIs(t, err, video.ErrUnavailable)
	}
	assert.Equal(t, gobreaker.StateOpen, client.State())

	_, err := client.ChannelVideos(context.Background(), "UC_good", 2)
	assert.ErrorIs(t, err, video.ErrUnavailable)
	assert.Equal(t, int32(5), calls.Load())
}
