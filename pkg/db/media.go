package db

import (
	"context"
	"fmt"

	"media-archive/pkg/domain"
)

// UpsertMedia writes a batch of records to the media table in one PostgREST
// call, keyed on each record's id. The harvester uses this for a full day's
// batch.
func (s *Store) UpsertMedia(ctx context.Context, records []domain.MediaRecord) error {
	if s.sdk == nil {
		return fmt.Errorf("store is not connected")
	}
	if len(records) == 0 {
		return nil
	}

	_, _, err := s.sdk.From(s.table).Upsert(records, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("upsert %d media records: %w", len(records), err)
	}
	return nil
}

// InsertMedia writes a single record, leaving id generation to the database
// when the record carries none. The tweet extractor uses this.
func (s *Store) InsertMedia(ctx context.Context, record domain.MediaRecord) error {
	if s.sdk == nil {
		return fmt.Errorf("store is not connected")
	}

	_, _, err := s.sdk.From(s.table).Insert(record, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("insert media record: %w", err)
	}
	return nil
}

// GetMediaByURL reads back all records stored for a source URL.
func (s *Store) GetMediaByURL(ctx context.Context, url string) ([]domain.MediaRecord, error) {
	if s.sdk == nil {
		return nil, fmt.Errorf("store is not connected")
	}

	var records []domain.MediaRecord
	_, err := s.sdk.From(s.table).
		Select("*", "", false).
		Eq("url", url).
		ExecuteTo(&records)
	if err != nil {
		return nil, fmt.Errorf("select media by url %s: %w", url, err)
	}
	return records, nil
}
