package tweet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	contentSelector = `div[data-testid="tweetText"]`
	timeSelector    = "time"

	defaultWaitTimeout = 5 * time.Second
)

// Extractor renders a tweet in a fresh browser session and extracts its text
// and publish timestamp. The two extractions are bounded and independent: a
// missing timestamp never blocks content capture, and vice versa.
type Extractor struct {
	// WaitTimeout bounds each selector wait.
	WaitTimeout time.Duration

	// Headless false opens a visible browser window for debugging.
	Headless bool
}

// NewExtractor returns an extractor with the default timeouts, headless.
func NewExtractor() *Extractor {
	return &Extractor{WaitTimeout: defaultWaitTimeout, Headless: true}
}

// Extract navigates a fresh browser session to the tweet URL and returns a
// draft. The session is closed on every exit path. Only navigation-level
// failures return an error; missing elements degrade to the sentinel values.
func (e *Extractor) Extract(parent context.Context, tweetURL string) (*Draft, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !e.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	defer cancelAlloc()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if err := chromedp.Run(ctx,
		chromedp.Navigate(tweetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("navigate to %s: %w", tweetURL, err)
	}

	content := e.extractContent(ctx)
	timestamp := e.extractTimestamp(ctx)

	return newDraft(tweetURL, content, timestamp), nil
}

// extractContent waits for the tweet text element and reads its text,
// falling back to the sentinel on timeout or absence.
func (e *Extractor) extractContent(ctx context.Context) string {
	tctx, cancel := context.WithTimeout(ctx, e.waitTimeout())
	defer cancel()

	var text string
	err := chromedp.Run(tctx,
		chromedp.WaitVisible(contentSelector, chromedp.ByQuery),
		chromedp.Text(contentSelector, &text, chromedp.ByQuery),
	)
	if err != nil || strings.TrimSpace(text) == "" {
		return ContentNotFound
	}
	return text
}

// extractTimestamp waits for a time element and reads its datetime
// attribute; empty means no timestamp was found in time.
func (e *Extractor) extractTimestamp(ctx context.Context) string {
	tctx, cancel := context.WithTimeout(ctx, e.waitTimeout())
	defer cancel()

	var value string
	var ok bool
	err := chromedp.Run(tctx,
		chromedp.WaitVisible(timeSelector, chromedp.ByQuery),
		chromedp.AttributeValue(timeSelector, "datetime", &value, &ok, chromedp.ByQuery),
	)
	if err != nil || !ok {
		return ""
	}
	return value
}

func (e *Extractor) waitTimeout() time.Duration {
	if e.WaitTimeout > 0 {
		return e.WaitTimeout
	}
	return defaultWaitTimeout
}
