// Package harvest implements the date-driven video backfill: for every
// calendar day from a start date backward one year at a time, search the
// channel, enrich the hits with durations, normalize them into media records
// and upsert the batch. Day failures are recorded and skipped, never fatal.
package harvest

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"media-archive/pkg/domain"
	"media-archive/pkg/runlog"
	"media-archive/pkg/youtube"
)

// VideoSearcher returns the videos published on one UTC calendar day.
type VideoSearcher interface {
	SearchByDay(ctx context.Context, targetDate string) ([]youtube.Video, error)
}

// DurationFetcher resolves whole-second durations for a batch of video ids.
type DurationFetcher interface {
	FetchDurations(ctx context.Context, videoIDs []string) (map[string]int64, error)
}

// MediaSaver persists a day's batch of records in one call.
type MediaSaver interface {
	UpsertMedia(ctx context.Context, records []domain.MediaRecord) error
}

// StatusRecorder appends one day-status line to the run ledger.
type StatusRecorder interface {
	Record(targetDate, status string) error
}

// Harvester walks the date cursor backward and ingests one day per step.
type Harvester struct {
	searcher  VideoSearcher
	durations DurationFetcher
	saver     MediaSaver
	status    StatusRecorder

	// MinYear is the last year processed, inclusive.
	MinYear int

	// Pause is the delay between day iterations, capping the API request
	// rate. It blocks; nothing else is in flight.
	Pause time.Duration

	sleep func(time.Duration)
	newID func() string
}

// New assembles a harvester with the default 5 second inter-day pause.
func New(searcher VideoSearcher, durations DurationFetcher, saver MediaSaver, status StatusRecorder, minYear int) *Harvester {
	return &Harvester{
		searcher:  searcher,
		durations: durations,
		saver:     saver,
		status:    status,
		MinYear:   minYear,
		Pause:     5 * time.Second,
		sleep:     time.Sleep,
		newID:     uuid.NewString,
	}
}

// Run processes every date from start backward, decrementing the cursor by
// exactly one year per iteration, until the cursor's year drops below
// MinYear. Individual day failures do not stop the loop.
func (h *Harvester) Run(ctx context.Context, start time.Time) error {
	for cursor := start; cursor.Year() >= h.MinYear; cursor = cursor.AddDate(-1, 0, 0) {
		if err := ctx.Err(); err != nil {
			return err
		}
		h.processDay(ctx, cursor.Format("2006-01-02"))
		h.sleep(h.Pause)
	}
	log.Printf("Harvester: completed, reached the year %d", h.MinYear)
	return nil
}

// processDay runs search, enrich, normalize, upsert and status logging for
// one target date. Every failure path degrades to a Failure ledger line.
func (h *Harvester) processDay(ctx context.Context, targetDate string) {
	log.Printf("Harvester: fetching videos for %s", targetDate)

	videos, err := h.searcher.SearchByDay(ctx, targetDate)
	if err != nil {
		log.Printf("Harvester: error fetching videos for %s: %v", targetDate, err)
		h.recordStatus(targetDate, runlog.StatusFailure)
		return
	}
	if len(videos) == 0 {
		log.Printf("Harvester: no videos found for %s, skipping", targetDate)
		h.recordStatus(targetDate, runlog.StatusFailure)
		return
	}

	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}

	durations, err := h.durations.FetchDurations(ctx, ids)
	if err != nil {
		// Records still get written, with duration 0.
		log.Printf("Harvester: error fetching details for %s: %v", targetDate, err)
		durations = nil
	}

	records := h.normalize(videos, durations)

	log.Printf("Harvester: saving %d videos for %s", len(records), targetDate)
	if err := h.saver.UpsertMedia(ctx, records); err != nil {
		log.Printf("Harvester: error saving videos for %s: %v", targetDate, err)
		h.recordStatus(targetDate, runlog.StatusFailure)
		return
	}
	h.recordStatus(targetDate, runlog.StatusSuccess)
}

// normalize builds one record per search hit. Video-specific optional fields
// fall back to empty string / empty slice, never null; durations missing
// from the details response default to 0.
func (h *Harvester) normalize(videos []youtube.Video, durations map[string]int64) []domain.MediaRecord {
	records := make([]domain.MediaRecord, 0, len(videos))
	for _, v := range videos {
		published := v.PublishedAt
		description := v.Description
		thumbnail := v.Thumbnail
		videoID := v.ID
		duration := durations[v.ID]
		year, date := domain.SplitPublished(v.PublishedAt)

		records = append(records, domain.MediaRecord{
			ID:          h.newID(),
			Title:       v.Title,
			URL:         youtube.WatchURL(v.ID),
			Type:        domain.TypeYouTube,
			PublishedAt: &published,
			Description: &description,
			// Search snippets never carry tags, so this is always empty.
			Tags:      []string{},
			Thumbnail: &thumbnail,
			Duration:  &duration,
			VideoID:   &videoID,
			Year:      year,
			Date:      date,
		})
	}
	return records
}

func (h *Harvester) recordStatus(targetDate, status string) {
	if err := h.status.Record(targetDate, status); err != nil {
		log.Printf("Harvester: error writing run log for %s: %v", targetDate, err)
	}
}
