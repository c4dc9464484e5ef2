package domain

import (
	"strconv"
	"strings"
)

// Producer type tags stored in the media table's "type" column.
// The casing difference is part of the stored data contract.
const (
	TypeYouTube = "youtube"
	TypeTweet   = "Tweet"
)

// DateUnknown is the sentinel stored in the "date" column when no publish
// timestamp could be determined.
const DateUnknown = "Unknown"

// MediaRecord is one row of the shared "media" table. Both pipelines produce
// it: the video harvester fills every column (empty string / empty slice for
// absent optional fields), while the tweet extractor leaves the video-specific
// columns null. Nullable columns are pointers so the JSON sent to PostgREST
// carries explicit nulls instead of zero values.
type MediaRecord struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Type        string   `json:"type"`
	PublishedAt *string  `json:"published_at"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	Thumbnail   *string  `json:"thumbnail"`
	Duration    *int64   `json:"duration"`
	VideoID     *string  `json:"video_id"`
	Year        *int     `json:"year"`
	Date        string   `json:"date"`
}

// SplitPublished derives the year and MM-DD columns from a raw ISO 8601
// publish timestamp by slicing the string directly; the value is stored as
// the API returned it, with no timezone conversion. A missing or malformed
// timestamp yields (nil, DateUnknown).
func SplitPublished(publishedAt string) (*int, string) {
	if len(publishedAt) < 10 {
		return nil, DateUnknown
	}
	yearStr, _, ok := strings.Cut(publishedAt, "-")
	if !ok {
		return nil, DateUnknown
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, DateUnknown
	}
	return &year, publishedAt[5:10]
}
