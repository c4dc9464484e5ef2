package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	supabase "github.com/supabase-community/supabase-go"
)

// Config holds what is needed to reach the Supabase project backing the
// media archive.
type Config struct {
	// SupabaseURL is the project URL, e.g. "https://[project-ref].supabase.co".
	SupabaseURL string

	// SupabaseKey is the project API key (service_role for server-side use).
	SupabaseKey string

	// DBConnString is an optional direct Postgres connection string. When
	// set, Connect also opens a direct database connection and bootstraps
	// the media table schema. Record writes go through the REST API either
	// way.
	DBConnString string

	// Table overrides the target table name; defaults to "media".
	Table string

	// Optional pool tuning for the direct connection.
	MaxOpenConns int
	ConnMaxLife  time.Duration
}

// Store provides access to the shared media table, in REST API mode via the
// Supabase SDK and optionally via a direct Postgres connection.
type Store struct {
	sdk   *supabase.Client
	db    *sql.DB
	table string
	cfg   Config
}

// NewStore constructs a store; call Connect before use.
func NewStore(cfg Config) *Store {
	if cfg.Table == "" {
		cfg.Table = "media"
	}
	return &Store{cfg: cfg, table: cfg.Table}
}

// Connect initializes the Supabase SDK client and, when a connection string
// is configured, the direct database connection. Direct mode additionally
// ensures the media table exists.
func (s *Store) Connect(ctx context.Context) error {
	if s.cfg.SupabaseURL == "" || s.cfg.SupabaseKey == "" {
		return fmt.Errorf("supabase URL and key are required")
	}

	sdk, err := supabase.NewClient(s.cfg.SupabaseURL, s.cfg.SupabaseKey, nil)
	if err != nil {
		return fmt.Errorf("initialize supabase SDK: %w", err)
	}
	s.sdk = sdk

	if s.cfg.DBConnString == "" {
		return nil // REST API mode only
	}

	db, err := sql.Open("pgx", s.cfg.DBConnString)
	if err != nil {
		return fmt.Errorf("open supabase postgres: %w", err)
	}
	if s.cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(s.cfg.MaxOpenConns)
	}
	if s.cfg.ConnMaxLife > 0 {
		db.SetConnMaxLifetime(s.cfg.ConnMaxLife)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping supabase postgres: %w", err)
	}
	s.db = db

	if err := s.ensureSchema(ctx); err != nil {
		return fmt.Errorf("ensure media schema: %w", err)
	}
	return nil
}

// Close closes the direct database connection, if any.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// HasDirectDB returns true if a direct database connection is available.
func (s *Store) HasDirectDB() bool {
	return s.db != nil
}

// ensureSchema creates the media table and its video_id index when absent.
// The video_id index is plain (not unique): the harvester's upsert keys on a
// per-run UUID, so dedup by source id is left to a later migration, not a
// constraint.
func (s *Store) ensureSchema(ctx context.Context) error {
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			title text NOT NULL,
			url text NOT NULL,
			type text NOT NULL,
			published_at timestamptz,
			description text,
			tags text[],
			thumbnail text,
			duration bigint,
			video_id text,
			year integer,
			date text
		)`, s.table)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}

	idx := fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS %s_video_id_idx ON %s (video_id)`,
		s.table, s.table)
	if _, err := s.db.ExecContext(ctx, idx); err != nil {
		return fmt.Errorf("create video_id index: %w", err)
	}
	return nil
}
