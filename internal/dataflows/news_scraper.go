package dataflows

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// NewsClient scrapes Google News. It serves the secondary news capability and
// the offline fallback for the AI web-search tools.
type NewsClient struct {
	client *resty.Client
	logger zerolog.Logger
}

func NewNewsClient(logger zerolog.Logger) *NewsClient {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; cryptoagents/1.0)")

	return &NewsClient{
		client: client,
		logger: logger.With().Str("component", "news_scraper").Logger(),
	}
}

// SetBaseURL points the scraper at a fake server. Tests only; production
// requests go to news.google.com.
func (nc *NewsClient) SetBaseURL(url string) {
	nc.client.SetBaseURL(url)
}

// GoogleNews searches Google News for articles matching query within the date
// window.
func (nc *NewsClient) GoogleNews(ctx context.Context, query string, start, end time.Time, maxResults int) ([]*NewsArticle, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if maxResults <= 0 {
		maxResults = 20
	}

	resp, err := nc.client.R().
		SetContext(ctx).
		Get(nc.buildSearchURL(query, start, end))
	if err != nil {
		return nil, fmt.Errorf("%w: google news: %v", ErrProviderRequest, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: google news: HTTP %d", ErrProviderRequest, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("%w: google news: parse HTML: %v", ErrProviderRequest, err)
	}

	articles := nc.parseArticles(doc)
	if len(articles) > maxResults {
		articles = articles[:maxResults]
	}
	nc.logger.Debug().Str("query", query).Int("articles", len(articles)).Msg("google news scraped")
	return articles, nil
}

func (nc *NewsClient) buildSearchURL(query string, start, end time.Time) string {
	q := query
	if !start.IsZero() && !end.IsZero() {
		q += fmt.Sprintf(" after:%s before:%s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	base := "https://news.google.com/search"
	if nc.client.BaseURL != "" {
		base = "/search"
	}
	return fmt.Sprintf("%s?q=%s&hl=en&gl=US&ceid=US:en", base, url.QueryEscape(q))
}

func (nc *NewsClient) parseArticles(doc *goquery.Document) []*NewsArticle {
	var articles []*NewsArticle

	doc.Find("article").Each(func(i int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("h3").Text())
		if title == "" {
			title = strings.TrimSpace(s.Find("h4").Text())
		}
		if title == "" {
			return
		}

		href, _ := s.Find("a").First().Attr("href")

		source := strings.TrimSpace(s.Find("div[data-n-tid]").Text())
		if source == "" {
			source = "Google News"
		}

		articles = append(articles, &NewsArticle{
			Title:       title,
			Snippet:     strings.TrimSpace(s.Find("span").Last().Text()),
			URL:         cleanRedirectURL(href),
			Source:      source,
			PublishedAt: parseRelativeTime(strings.TrimSpace(s.Find("time").Text())),
		})
	})

	return articles
}

// cleanRedirectURL unwraps Google News redirect links.
func cleanRedirectURL(googleURL string) string {
	if idx := strings.Index(googleURL, "url="); idx >= 0 {
		if decoded, err := url.QueryUnescape(googleURL[idx+4:]); err == nil {
			return decoded
		}
	}
	return googleURL
}

// parseRelativeTime turns Google News relative timestamps ("3 hours ago")
// into absolute times, falling back to now.
func parseRelativeTime(text string) time.Time {
	now := time.Now()
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) < 2 {
		return now
	}

	amount, err := strconv.Atoi(fields[0])
	if err != nil {
		return now
	}

	switch {
	case strings.HasPrefix(fields[1], "minute"):
		return now.Add(-time.Duration(amount) * time.Minute)
	case strings.HasPrefix(fields[1], "hour"):
		return now.Add(-time.Duration(amount) * time.Hour)
	case strings.HasPrefix(fields[1], "day"):
		return now.AddDate(0, 0, -amount)
	}
	return now
}
