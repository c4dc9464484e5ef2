package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"media-archive/pkg/config"
	"media-archive/pkg/db"
	"media-archive/pkg/tweet"
)

func main() {
	headful := flag.Bool("headful", false, "run the browser with a visible window")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.ValidateTweet(); err != nil {
		log.Fatal(err)
	}

	reader := bufio.NewReader(os.Stdin)
	tweetURL, err := prompt(reader, "Enter the tweet URL: ")
	if err != nil || tweetURL == "" {
		log.Fatal("A tweet URL is required")
	}

	ctx := context.Background()

	extractor := tweet.NewExtractor()
	extractor.Headless = !*headful

	draft, err := extractor.Extract(ctx, tweetURL)
	if err != nil {
		log.Printf("Browser extraction failed: %v", err)
		log.Printf("Trying static page fallback")
		draft, err = tweet.NewStaticFetcher().Fetch(ctx, tweetURL)
		if err != nil {
			log.Fatalf("Extraction failed, nothing to save: %v", err)
		}
	}

	fmt.Println("\nExtracted Tweet Data Preview:")
	fmt.Printf("Tweet Content: %s\n", draft.Content)
	fmt.Printf("Tweet URL: %s\n", draft.URL)
	fmt.Printf("Tweet Date: %s\n", draft.Date)
	if draft.Year != nil {
		fmt.Printf("Tweet Year: %d\n", *draft.Year)
	} else {
		fmt.Println("Tweet Year: unknown")
	}
	fmt.Printf("Tweet Day: %s\n\n", draft.Day)

	answer, err := prompt(reader, "Do you want to save this tweet? (yes/no): ")
	if err != nil {
		log.Fatalf("Failed to read confirmation: %v", err)
	}
	if strings.ToLower(answer) != "yes" {
		fmt.Println("Tweet not saved.")
		return
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

	if err := store.InsertMedia(ctx, draft.Record()); err != nil {
		log.Fatalf("Error saving tweet: %v", err)
	}
	fmt.Println("Tweet successfully saved.")
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
