package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"media-archive/pkg/config"
	"media-archive/pkg/db"
	"media-archive/pkg/harvest"
	"media-archive/pkg/runlog"
	"media-archive/pkg/youtube"
)

func main() {
	recent := flag.Bool("recent", false, "list the channel's latest uploads from its public feed and exit")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	if *recent {
		if cfg.ChannelID == "" {
			log.Fatal("CHANNEL_ID is required")
		}
		listRecentUploads(ctx, cfg.ChannelID)
		return
	}

	if err := cfg.ValidateHarvest(); err != nil {
		log.Fatal(err)
	}

	start, err := promptStartDate(os.Stdin)
	if err != nil {
		log.Fatalf("Invalid start date: %v", err)
	}

	yt, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey, cfg.ChannelID)
	if err != nil {
		log.Fatalf("Failed to create YouTube client: %v", err)
	}

	store := db.NewStore(db.Config{
		SupabaseURL:  cfg.SupabaseURL,
		SupabaseKey:  cfg.SupabaseKey,
		DBConnString: cfg.SupabaseDBURL,
	})
	if err := store.Connect(ctx); err != nil {
		log.Fatalf("Failed to connect to storage: %v", err)
	}
	defer store.Close()

	fmt.Printf("Backfilling channel %s from %s down to %d\n",
		cfg.ChannelID, start.Format("2006-01-02"), cfg.MinYear)

	harvester := harvest.New(yt, yt, store, runlog.New(cfg.LogFile), cfg.MinYear)
	if err := harvester.Run(ctx, start); err != nil {
		log.Fatalf("Harvest aborted: %v", err)
	}
}

// promptStartDate reads and parses the YYYY-MM-DD start date. A malformed
// date terminates the run before anything else happens.
func promptStartDate(in io.Reader) (time.Time, error) {
	fmt.Print("Enter the starting date (YYYY-MM-DD): ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return time.Time{}, err
	}
	return time.Parse("2006-01-02", strings.TrimSpace(line))
}

func listRecentUploads(ctx context.Context, channelID string) {
	uploads, err := youtube.NewFeedClient().RecentUploads(ctx, channelID)
	if err != nil {
		log.Fatalf("Failed to fetch uploads feed: %v", err)
	}

	fmt.Printf("Latest uploads for channel %s:\n\n", channelID)
	for _, u := range uploads {
		when := "unknown date"
		if u.Published != nil {
			when = u.Published.Format("2006-01-02")
		}
		fmt.Printf("  %s  %s\n            %s\n", when, u.Title, u.URL)
	}
}
