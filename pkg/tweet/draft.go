// Package tweet extracts a single tweet's text and timestamp, either through
// a real browser session or a static meta-tag fallback, and normalizes the
// result into a media record draft for operator review.
package tweet

import (
	"time"

	"media-archive/pkg/domain"
)

// ContentNotFound is the sentinel stored when the tweet text element never
// appeared within the wait timeout.
const ContentNotFound = "Tweet content not found"

// Draft is the extraction result shown to the operator before any write.
type Draft struct {
	Content     string
	URL         string
	Date        string // MM-DD, or Unknown
	Year        *int
	Day         string // weekday name for display, or Unknown
	PublishedAt *string
}

// newDraft builds a draft from raw extraction output. rawTimestamp is the
// datetime attribute value; empty or unparseable timestamps leave the date
// fields at their Unknown/null sentinels without failing the draft.
func newDraft(url, content, rawTimestamp string) *Draft {
	d := &Draft{
		Content: content,
		URL:     url,
		Date:    domain.DateUnknown,
		Day:     domain.DateUnknown,
	}
	if rawTimestamp == "" {
		return d
	}

	ts, err := time.Parse(time.RFC3339, rawTimestamp)
	if err != nil {
		return d
	}
	ts = ts.UTC()

	published := ts.Format(time.RFC3339)
	year := ts.Year()
	d.Date = ts.Format("01-02")
	d.Year = &year
	d.Day = ts.Weekday().String()
	d.PublishedAt = &published
	return d
}

// Record converts the draft into the media row. The video-specific columns
// stay null for this producer, not empty values.
func (d *Draft) Record() domain.MediaRecord {
	return domain.MediaRecord{
		Title:       d.Content,
		URL:         d.URL,
		Type:        domain.TypeTweet,
		PublishedAt: d.PublishedAt,
		Year:        d.Year,
		Date:        d.Date,
	}
}
