// Package youtube wraps the YouTube Data API calls the harvester needs: a
// day-windowed channel search and a batched contentDetails lookup, plus the
// public uploads feed used for quota-free previews.
package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

// maxResultsPerDay caps the search page size; only the first page is ever
// fetched.
const maxResultsPerDay = 10

// Video is one search result, carrying the snippet fields the archive
// stores. PublishedAt is the raw RFC 3339 string as returned by the API.
type Video struct {
	ID          string
	Title       string
	Description string
	PublishedAt string
	Thumbnail   string
}

// WatchURL returns the canonical watch link for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// Client calls the Search and Videos endpoints for one channel.
type Client struct {
	svc       *youtubeapi.Service
	channelID string
}

// NewClient builds an API-key authenticated client. Extra options are
// forwarded to the service constructor, which lets tests point the client at
// a local endpoint.
func NewClient(ctx context.Context, apiKey, channelID string, opts ...option.ClientOption) (*Client, error) {
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtubeapi.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{svc: svc, channelID: channelID}, nil
}

// SearchByDay returns the channel's videos published within the given UTC
// calendar day (YYYY-MM-DD), most recent first. A response without an items
// collection is an error; an empty day returns an empty slice.
func (c *Client) SearchByDay(ctx context.Context, targetDate string) ([]Video, error) {
	resp, err := c.svc.Search.List([]string{"snippet"}).
		ChannelId(c.channelID).
		Order("date").
		Type("video").
		MaxResults(maxResultsPerDay).
		PublishedAfter(targetDate + "T00:00:00Z").
		PublishedBefore(targetDate + "T23:59:59Z").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search videos for %s: %w", targetDate, err)
	}
	if resp.Items == nil {
		return nil, fmt.Errorf("search response for %s has no items collection", targetDate)
	}

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		v := Video{
			ID:          item.Id.VideoId,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			PublishedAt: item.Snippet.PublishedAt,
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
			v.Thumbnail = item.Snippet.Thumbnails.High.Url
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// FetchDurations issues one batched contentDetails call for the given video
// ids and returns whole-second durations keyed by id. Ids absent from the
// response are simply missing from the map; an unparseable duration maps to
// zero rather than failing the batch.
func (c *Client) FetchDurations(ctx context.Context, videoIDs []string) (map[string]int64, error) {
	durations := make(map[string]int64)
	if len(videoIDs) == 0 {
		return durations, nil
	}

	resp, err := c.svc.Videos.List([]string{"contentDetails"}).
		Id(videoIDs...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("fetch video details: %w", err)
	}

	for _, item := range resp.Items {
		if item.ContentDetails == nil {
			continue
		}
		secs, err := ParseDurationSeconds(item.ContentDetails.Duration)
		if err != nil {
			secs = 0
		}
		durations[item.Id] = secs
	}
	return durations, nil
}
