package collector

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"ValueScope/internal/model"
)

// GoogleNewsFetcher implements NewsFetcher using the Google News RSS feed.
type GoogleNewsFetcher struct {
	Client  *http.Client
	BaseURL string
	limiter *rate.Limiter
}

// NewGoogleNewsFetcher creates a news fetcher with optional proxy support.
func NewGoogleNewsFetcher(proxyURL string) *GoogleNewsFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &GoogleNewsFetcher{
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
		BaseURL: "https://news.google.com/rss/search",
		limiter: rate.NewLimiter(rate.Limit(1), 2),
	}
}

func (f *GoogleNewsFetcher) Name() string { return "google-news" }

// rssFeed covers the subset of the RSS schema the feed uses.
type rssFeed struct {
	Channel struct {
		Items []struct {
			Title   string `xml:"title"`
			Source  string `xml:"source"`
			PubDate string `xml:"pubDate"`
		} `xml:"item"`
	} `xml:"channel"`
}

// Headlines fetches the most recent headlines mentioning the stock.
func (f *GoogleNewsFetcher) Headlines(ctx context.Context, stockName string, limit int) ([]model.Headline, error) {
	if limit <= 0 {
		limit = DefaultNewsLimit
	}
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	q := url.QueryEscape(stockName + " NSE stock")
	u := fmt.Sprintf("%s?q=%s&hl=en-IN&gl=IN&ceid=IN:en", f.BaseURL, q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news fetch: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("news read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news: status %d", resp.StatusCode)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("news decode rss: %w", err)
	}

	headlines := make([]model.Headline, 0, limit)
	for _, item := range feed.Channel.Items {
		if len(headlines) >= limit {
			break
		}
		source := item.Source
		if source == "" {
			source = "Unknown"
		}
		headlines = append(headlines, model.Headline{
			Title:  item.Title,
			Source: source,
			Date:   shortDate(item.PubDate),
		})
	}
	return headlines, nil
}

// shortDate renders an RSS pubDate as "Jan 02", falling back to a prefix of
// the raw value when it does not parse.
func shortDate(pubDate string) string {
	if pubDate == "" {
		return ""
	}
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822} {
		if t, err := time.Parse(layout, pubDate); err == nil {
			return t.Format("Jan 02")
		}
	}
	if len(pubDate) >= 16 {
		return pubDate[:16]
	}
	return pubDate
}
