package youtube

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

// defaultFeedBaseURL is the public per-channel uploads feed. It needs no API
// key and carries roughly the 15 most recent uploads.
const defaultFeedBaseURL = "https://www.youtube.com/feeds/videos.xml"

// Upload is one entry of a channel's uploads feed.
type Upload struct {
	Title     string
	URL       string
	Published *time.Time
}

// FeedClient reads a channel's uploads RSS feed. Used by the harvester's
// preview mode so operators can pick a start date without spending quota.
type FeedClient struct {
	parser  *gofeed.Parser
	baseURL string
}

// NewFeedClient creates a feed client against the public YouTube feed URL.
func NewFeedClient() *FeedClient {
	return &FeedClient{parser: gofeed.NewParser(), baseURL: defaultFeedBaseURL}
}

// RecentUploads fetches and parses the uploads feed for a channel.
func (f *FeedClient) RecentUploads(ctx context.Context, channelID string) ([]Upload, error) {
	feedURL := f.baseURL + "?channel_id=" + channelID
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch uploads feed for %s: %w", channelID, err)
	}

	uploads := make([]Upload, 0, len(feed.Items))
	for _, item := range feed.Items {
		uploads = append(uploads, Upload{
			Title:     item.Title,
			URL:       item.Link,
			Published: item.PublishedParsed,
		})
	}
	return uploads, nil
}
