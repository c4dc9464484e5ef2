package harvest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"media-archive/pkg/domain"
	"media-archive/pkg/youtube"
)

type fakeSearcher struct {
	videos  map[string][]youtube.Video // keyed by target date
	err     error
	queried []string
}

func (f *fakeSearcher) SearchByDay(ctx context.Context, targetDate string) ([]youtube.Video, error) {
	f.queried = append(f.queried, targetDate)
	if f.err != nil {
		return nil, f.err
	}
	return f.videos[targetDate], nil
}

type fakeDurations struct {
	durations map[string]int64
	err       error
}

func (f *fakeDurations) FetchDurations(ctx context.Context, videoIDs []string) (map[string]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.durations, nil
}

type fakeSaver struct {
	batches [][]domain.MediaRecord
	err     error
}

func (f *fakeSaver) UpsertMedia(ctx context.Context, records []domain.MediaRecord) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, records)
	return nil
}

type fakeStatus struct {
	lines []string
}

func (f *fakeStatus) Record(targetDate, status string) error {
	f.lines = append(f.lines, targetDate+" "+status)
	return nil
}

// newTestHarvester wires a harvester with fakes, no pause, and predictable ids.
func newTestHarvester(searcher *fakeSearcher, durations *fakeDurations, saver *fakeSaver, status *fakeStatus, minYear int) *Harvester {
	h := New(searcher, durations, saver, status, minYear)
	h.Pause = 0
	h.sleep = func(time.Duration) {}
	n := 0
	h.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return h
}

func video(id, publishedAt string) youtube.Video {
	return youtube.Video{
		ID:          id,
		Title:       "title " + id,
		Description: "desc " + id,
		PublishedAt: publishedAt,
		Thumbnail:   "https://i.ytimg.com/vi/" + id + "/hqdefault.jpg",
	}
}

func TestHarvester_Run_CursorIterations(t *testing.T) {
	searcher := &fakeSearcher{}
	status := &fakeStatus{}
	h := newTestHarvester(searcher, &fakeDurations{}, &fakeSaver{}, status, 2012)

	start := time.Date(2014, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := h.Run(context.Background(), start); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	expected := []string{"2014-03-01", "2013-03-01", "2012-03-01"}
	if len(searcher.queried) != len(expected) {
		t.Fatalf("Expected %d iterations, got %d: %v", len(expected), len(searcher.queried), searcher.queried)
	}
	for i, want := range expected {
		if searcher.queried[i] != want {
			t.Errorf("Iteration %d: expected date %s, got %s", i, want, searcher.queried[i])
		}
	}
}

func TestHarvester_Run_EmptyDayLogsFailure(t *testing.T) {
	searcher := &fakeSearcher{} // no videos for any day
	saver := &fakeSaver{}
	status := &fakeStatus{}
	h := newTestHarvester(searcher, &fakeDurations{}, saver, status, 2014)

	start := time.Date(2014, 6, 15, 0, 0, 0, 0, time.UTC)
	if err := h.Run(context.Background(), start); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(status.lines) != 1 {
		t.Fatalf("Expected exactly 1 log line, got %d: %v", len(status.lines), status.lines)
	}
	if status.lines[0] != "2014-06-15 Failure" {
		t.Errorf("Expected Failure line, got %q", status.lines[0])
	}
	if len(saver.batches) != 0 {
		t.Errorf("Expected no save for an empty day, got %d batches", len(saver.batches))
	}
}

func TestHarvester_Run_SearchErrorDoesNotStopLoop(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("quota exceeded")}
	status := &fakeStatus{}
	h := newTestHarvester(searcher, &fakeDurations{}, &fakeSaver{}, status, 2012)

	start := time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := h.Run(context.Background(), start); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(searcher.queried) != 2 {
		t.Errorf("Expected loop to continue through both years, got %d iterations", len(searcher.queried))
	}
	for _, line := range status.lines {
		if line != "2013-01-01 Failure" && line != "2012-01-01 Failure" {
			t.Errorf("Unexpected status line %q", line)
		}
	}
}

func TestHarvester_Run_NormalizesRecords(t *testing.T) {
	searcher := &fakeSearcher{videos: map[string][]youtube.Video{
		"2021-07-04": {
			video("vid1", "2021-07-04T10:00:00Z"),
			video("vid2", "2021-07-04T18:30:00Z"),
		},
	}}
	durations := &fakeDurations{durations: map[string]int64{"vid1": 253}} // vid2 missing
	saver := &fakeSaver{}
	status := &fakeStatus{}
	h := newTestHarvester(searcher, durations, saver, status, 2021)

	start := time.Date(2021, 7, 4, 0, 0, 0, 0, time.UTC)
	if err := h.Run(context.Background(), start); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(saver.batches) != 1 {
		t.Fatalf("Expected 1 batch, got %d", len(saver.batches))
	}
	batch := saver.batches[0]
	if len(batch) != 2 {
		t.Fatalf("Expected 2 records in batch, got %d", len(batch))
	}

	rec := batch[0]
	if rec.ID != "id-1" {
		t.Errorf("Expected freshly generated id, got %q", rec.ID)
	}
	if rec.Type != domain.TypeYouTube {
		t.Errorf("Expected type %q, got %q", domain.TypeYouTube, rec.Type)
	}
	if rec.URL != "https://www.youtube.com/watch?v=vid1" {
		t.Errorf("Unexpected record URL: %q", rec.URL)
	}
	if rec.PublishedAt == nil || *rec.PublishedAt != "2021-07-04T10:00:00Z" {
		t.Errorf("Expected verbatim published_at string, got %v", rec.PublishedAt)
	}
	if rec.Year == nil || *rec.Year != 2021 {
		t.Errorf("Expected year 2021, got %v", rec.Year)
	}
	if rec.Date != "07-04" {
		t.Errorf("Expected date 07-04, got %q", rec.Date)
	}
	if rec.Duration == nil || *rec.Duration != 253 {
		t.Errorf("Expected duration 253, got %v", rec.Duration)
	}
	if rec.Tags == nil || len(rec.Tags) != 0 {
		t.Errorf("Expected empty (non-null) tags, got %v", rec.Tags)
	}
	if rec.Description == nil || *rec.Description != "desc vid1" {
		t.Errorf("Expected non-null description, got %v", rec.Description)
	}

	// The item absent from the details response defaults to duration 0.
	if batch[1].Duration == nil || *batch[1].Duration != 0 {
		t.Errorf("Expected duration 0 for unenriched video, got %v", batch[1].Duration)
	}

	if len(status.lines) != 1 || status.lines[0] != "2021-07-04 Success" {
		t.Errorf("Expected a single Success line, got %v", status.lines)
	}
}

func TestHarvester_Run_DetailsErrorStillSaves(t *testing.T) {
	searcher := &fakeSearcher{videos: map[string][]youtube.Video{
		"2020-01-01": {video("vid1", "2020-01-01T08:00:00Z")},
	}}
	durations := &fakeDurations{err: errors.New("details unavailable")}
	saver := &fakeSaver{}
	h := newTestHarvester(searcher, durations, saver, &fakeStatus{}, 2020)

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := h.Run(context.Background(), start); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(saver.batches) != 1 {
		t.Fatalf("Expected the batch to be saved despite details failure, got %d batches", len(saver.batches))
	}
	rec := saver.batches[0][0]
	if rec.Duration == nil || *rec.Duration != 0 {
		t.Errorf("Expected duration 0 when enrichment fails, got %v", rec.Duration)
	}
}

func TestHarvester_Run_SaveErrorDoesNotStopLoop(t *testing.T) {
	searcher := &fakeSearcher{videos: map[string][]youtube.Video{
		"2013-05-05": {video("vid1", "2013-05-05T10:00:00Z")},
		"2012-05-05": {video("vid2", "2012-05-05T10:00:00Z")},
	}}
	saver := &fakeSaver{err: errors.New("storage down")}
	status := &fakeStatus{}
	h := newTestHarvester(searcher, &fakeDurations{}, saver, status, 2012)

	start := time.Date(2013, 5, 5, 0, 0, 0, 0, time.UTC)
	if err := h.Run(context.Background(), start); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(searcher.queried) != 2 {
		t.Errorf("Expected both years processed despite save failures, got %d", len(searcher.queried))
	}
	if len(status.lines) != 2 {
		t.Fatalf("Expected 2 status lines, got %v", status.lines)
	}
	for _, line := range status.lines {
		if line != "2013-05-05 Failure" && line != "2012-05-05 Failure" {
			t.Errorf("Unexpected status line %q", line)
		}
	}
}

func TestHarvester_Run_SleepsBetweenDays(t *testing.T) {
	searcher := &fakeSearcher{}
	h := newTestHarvester(searcher, &fakeDurations{}, &fakeSaver{}, &fakeStatus{}, 2012)

	slept := 0
	h.sleep = func(d time.Duration) {
		if d != h.Pause {
			t.Errorf("Expected pause of %v, got %v", h.Pause, d)
		}
		slept++
	}

	start := time.Date(2014, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := h.Run(context.Background(), start); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if slept != 3 {
		t.Errorf("Expected 3 pauses, got %d", slept)
	}
}

func TestHarvester_Run_StartBelowMinYear(t *testing.T) {
	searcher := &fakeSearcher{}
	h := newTestHarvester(searcher, &fakeDurations{}, &fakeSaver{}, &fakeStatus{}, 2012)

	start := time.Date(2011, 12, 31, 0, 0, 0, 0, time.UTC)
	if err := h.Run(context.Background(), start); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(searcher.queried) != 0 {
		t.Errorf("Expected no iterations for a start date below min year, got %d", len(searcher.queried))
	}
}
