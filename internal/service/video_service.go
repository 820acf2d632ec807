package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/snoody/tft-tierlist/internal/metrics"
	"github.com/snoody/tft-tierlist/internal/video"
	"go.uber.org/zap"
)

const (
	DefaultVideoLimit = 12
	videosPerChannel  = 6
	videoFetchTimeout = 30 * time.Second
)

var ErrNoVideos = errors.New("no videos available")

// VideoFetcher is satisfied by *video.Client.
type VideoFetcher interface {
	ChannelVideos(ctx context.Context, channelID string, limit int) ([]video.Video, error)
}

type VideoResult struct {
	Videos   []video.Video `json:"videos"`
	Cached   bool          `json:"cached"`
	Stale    bool          `json:"stale"`
	CachedAt time.Time     `json:"cachedAt"`
}

type VideoService struct {
	fetcher  VideoFetcher
	cache    video.Cache
	channels []string
	ttl      time.Duration
	metrics  *metrics.Collector
	logger   *zap.Logger
	now      func() time.Time
}

func NewVideoService(fetcher VideoFetcher, cache video.Cache, channels []string, ttl time.Duration, m *metrics.Collector, logger *zap.Logger) *VideoService {
	return &VideoService{
		fetcher:  fetcher,
		cache:    cache,
		channels: channels,
		ttl:      ttl,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Latest returns up to limit videos, newest first. A fresh cache entry is
// served unless fresh is set. When every channel fails, the previous entry is
// served even if expired.
func (s *VideoService) Latest(ctx context.Context, limit int, fresh bool) (*VideoResult, error) {
	if limit <= 0 {
		limit = DefaultVideoLimit
	}

	entry, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("video cache read failed", zap.Error(err))
		entry = nil
	}

	if entry != nil && !fresh && s.now().Sub(entry.FetchedAt) < s.ttl {
		s.metrics.VideoCacheHits.Inc()
		return result(entry, limit, true, false), nil
	}
	s.metrics.VideoCacheMisses.Inc()

	refreshed, err := s.refresh(ctx)
	if err != nil {
		if entry != nil {
			s.logger.Warn("serving stale videos", zap.Error(err), zap.Time("cachedAt", entry.FetchedAt))
			return result(entry, limit, true, true), nil
		}
		return nil, err
	}

	return result(refreshed, limit, false, false), nil
}

// Refresh refetches every channel and replaces the cache entry.
func (s *VideoService) Refresh(ctx context.Context) error {
	_, err := s.refresh(ctx)
	return err
}

func (s *VideoService) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

func (s *VideoService) refresh(ctx context.Context) (*video.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, videoFetchTimeout)
	defer cancel()

	var all []video.Video
	failures := 0
	for _, channel := range s.channels {
		videos, err := s.fetcher.ChannelVideos(ctx, channel, videosPerChannel)
		if err != nil {
			failures++
			s.metrics.VideoFetchErrors.Inc()
			s.logger.Warn("failed to fetch channel videos", zap.String("channel", channel), zap.Error(err))
			continue
		}
		all = append(all, videos...)
	}

	if len(s.channels) > 0 && failures == len(s.channels) {
		return nil, fmt.Errorf("%w: all %d channels failed", ErrNoVideos, failures)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PublishedAt.After(all[j].PublishedAt)
	})

	entry := &video.Entry{Videos: all, FetchedAt: s.now()}
	if entry.Videos == nil {
		entry.Videos = []video.Video{}
	}
	if err := s.cache.Set(ctx, entry); err != nil {
		s.logger.Warn("video cache write failed", zap.Error(err))
	}

	return entry, nil
}

func result(entry *video.Entry, limit int, cached, stale bool) *VideoResult {
	videos := entry.Videos
	if len(videos) > limit {
		videos = videos[:limit]
	}
	return &VideoResult{
		Videos:   videos,
		Cached:   cached,
		Stale:    stale,
		CachedAt: entry.FetchedAt,
	}
}
