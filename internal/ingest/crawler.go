package ingest

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"careerquest/internal/domain/job"
	"careerquest/internal/pipeline"
	"careerquest/internal/repository"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// Target describes one job board. ListURL may contain a %d page verb.
type Target struct {
	SourceName       string
	ListURL          string
	LinkSelector     string
	TitleSelector    string
	CompanySelector  string
	LocationSelector string
	SalarySelector   string
	BodySelector     string
}

func (t Target) withDefaults() Target {
	if strings.TrimSpace(t.LinkSelector) == "" {
		t.LinkSelector = "a[href]"
	}
	if strings.TrimSpace(t.TitleSelector) == "" {
		t.TitleSelector = "h1"
	}
	if strings.TrimSpace(t.BodySelector) == "" {
		t.BodySelector = "body"
	}
	return t
}

// JobStore is the write side used by the crawler.
type JobStore interface {
	UpsertJobs(ctx context.Context, offers []job.Offer) (repository.UpsertStats, error)
}

// LinkFetcher discovers offer links on a listing page rendered by a browser.
type LinkFetcher interface {
	FetchLinks(ctx context.Context, listURL, linkSelector string) ([]string, error)
}

type Options struct {
	Pages      int
	Workers    int
	RatePerSec int
	Delay      time.Duration
	Headless   LinkFetcher
}

type Stats struct {
	Links    int
	Parsed   int
	Failed   int
	Inserted int
	Updated  int
}

type Crawler struct {
	store  JobStore
	logger *zap.Logger
	now    func() time.Time
}

func NewCrawler(store JobStore, logger *zap.Logger) *Crawler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Crawler{store: store, logger: logger, now: time.Now}
}

type detail struct {
	URL         string
	Title       string
	Company     string
	Location    string
	Salary      string
	Description string
}

// Crawl walks the listing pages, scrapes every offer page through a rate
// limited worker pool and upserts the results with source_type=ingest.
func (c *Crawler) Crawl(ctx context.Context, t Target, opts Options) (Stats, error) {
	if strings.TrimSpace(t.ListURL) == "" {
		return Stats{}, fmt.Errorf("empty listing url")
	}
	t = t.withDefaults()
	pages := opts.Pages
	if pages <= 0 {
		pages = 1
	}

	var links []string
	seen := map[string]struct{}{}
	for page := 1; page <= pages; page++ {
		listURL := t.ListURL
		if strings.Contains(listURL, "%d") {
			listURL = fmt.Sprintf(listURL, page)
		}

		var found []string
		var err error
		if opts.Headless != nil {
			found, err = opts.Headless.FetchLinks(ctx, listURL, t.LinkSelector)
		} else {
			found, err = c.listingLinks(ctx, t, listURL, opts.Delay)
		}
		if err != nil {
			c.logger.Warn("listing page failed", zap.String("url", listURL), zap.Error(err))
			continue
		}
		for _, l := range found {
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			links = append(links, l)
		}
	}

	stats := Stats{Links: len(links)}
	if len(links) == 0 {
		return stats, nil
	}

	details := make([]detail, len(links))
	pool := pipeline.NewWorkerPool(opts.Workers, len(links))
	pool.SetRateLimit(opts.RatePerSec)
	results := pool.Run(ctx)
	for i, link := range links {
		i, link := i, link
		pool.Submit(func(ctx context.Context) error {
			d, err := c.detailPage(ctx, t, link, opts.Delay)
			if err != nil {
				return fmt.Errorf("%s: %w", link, err)
			}
			details[i] = d
			return nil
		})
	}
	pool.Close()
	for r := range results {
		if r.Err != nil {
			stats.Failed++
			c.logger.Warn("offer page failed", zap.Error(r.Err))
		}
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	now := c.now().UTC()
	offers := make([]job.Offer, 0, len(details))
	for _, d := range details {
		if d.URL == "" || strings.TrimSpace(d.Title) == "" {
			continue
		}
		offers = append(offers, ToOffer(d, t.SourceName, now))
	}
	stats.Parsed = len(offers)

	up, err := c.store.UpsertJobs(ctx, offers)
	if err != nil {
		return stats, fmt.Errorf("upsert offers: %w", err)
	}
	stats.Inserted, stats.Updated = up.Inserted, up.Updated

	c.logger.Info("ingest finished",
		zap.String("source", t.SourceName),
		zap.Int("links", stats.Links),
		zap.Int("parsed", stats.Parsed),
		zap.Int("failed", stats.Failed),
		zap.Int("inserted", stats.Inserted),
		zap.Int("updated", stats.Updated),
	)
	return stats, nil
}

func (c *Crawler) listingLinks(ctx context.Context, t Target, listURL string, delay time.Duration) ([]string, error) {
	col := newCollector(listURL, delay)
	host := hostFromURL(listURL)

	var links []string
	col.OnHTML(t.LinkSelector, func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.Attr("href"))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		abs := e.Request.AbsoluteURL(href)
		if abs == "" || hostFromURL(abs) != host {
			return
		}
		links = append(links, abs)
	})

	var reqErr error
	col.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := col.Visit(listURL); err != nil {
		return nil, err
	}
	col.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return links, nil
}

func (c *Crawler) detailPage(ctx context.Context, t Target, pageURL string, delay time.Duration) (detail, error) {
	col := newCollector(pageURL, delay)
	out := detail{URL: pageURL}

	first := func(sel string, dst *string) {
		if strings.TrimSpace(sel) == "" {
			return
		}
		col.OnHTML(sel, func(e *colly.HTMLElement) {
			if *dst == "" {
				*dst = collapseSpace(e.Text)
			}
		})
	}
	first(t.TitleSelector, &out.Title)
	first(t.CompanySelector, &out.Company)
	first(t.LocationSelector, &out.Location)
	first(t.SalarySelector, &out.Salary)
	first(t.BodySelector, &out.Description)

	var reqErr error
	col.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if err := ctx.Err(); err != nil {
		return detail{}, err
	}
	if err := col.Visit(pageURL); err != nil {
		return detail{}, err
	}
	col.Wait()
	if reqErr != nil {
		return detail{}, reqErr
	}
	return out, nil
}

func newCollector(rawURL string, delay time.Duration) *colly.Collector {
	var col *colly.Collector
	if host := hostFromURL(rawURL); host != "" {
		col = colly.NewCollector(colly.AllowedDomains(host))
	} else {
		col = colly.NewCollector()
	}
	if delay > 0 {
		_ = col.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, Delay: delay, RandomDelay: delay})
	}
	col.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "CareerQuestIngest/1.0")
		r.Headers.Set("Accept-Language", "fr-MA,fr;q=0.9,en;q=0.8,ar;q=0.7")
	})
	return col
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}

// StableSourceID keys an ingested offer by its URL so reruns update in place.
func StableSourceID(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	h := sha1.Sum([]byte(u))
	return "urlsha1-" + hex.EncodeToString(h[:])
}
