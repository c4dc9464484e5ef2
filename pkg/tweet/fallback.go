package tweet

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"media-archive/pkg/httpclient"
)

// StaticFetcher scrapes the crawler-served tweet page when no browser
// session is available. Twitter renders og: meta tags for recognizable
// agents, which carry the tweet text but no machine-readable timestamp.
type StaticFetcher struct {
	client *httpclient.Client
}

// NewStaticFetcher creates a fetcher using browser-profile headers.
func NewStaticFetcher() *StaticFetcher {
	return &StaticFetcher{client: httpclient.New(httpclient.BrowserProfile)}
}

// Fetch retrieves the tweet page over plain HTTP and builds a draft from its
// og: meta content. The timestamp stays null on this path.
func (f *StaticFetcher) Fetch(ctx context.Context, tweetURL string) (*Draft, error) {
	resp, err := f.client.Get(ctx, tweetURL)
	if err != nil {
		return nil, fmt.Errorf("fetch tweet page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse tweet page: %w", err)
	}

	content, _ := doc.Find(`meta[property="og:description"]`).Attr("content")
	if content == "" {
		content, _ = doc.Find(`meta[property="og:title"]`).Attr("content")
	}
	if content == "" {
		return nil, fmt.Errorf("no og: meta content in tweet page")
	}

	// Twitter wraps og:description in curly quotes.
	content = strings.Trim(content, "“”")

	return newDraft(tweetURL, content, ""), nil
}
