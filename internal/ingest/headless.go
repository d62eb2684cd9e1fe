package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromeFetcher renders listing pages in headless Chrome, for boards that
// build their results with JavaScript.
type ChromeFetcher struct {
	Timeout time.Duration
	Settle  time.Duration
}

func (f ChromeFetcher) FetchLinks(ctx context.Context, listURL, linkSelector string) ([]string, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	settle := f.Settle
	if settle <= 0 {
		settle = 1500 * time.Millisecond
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, timeout)
	defer reqCancel()

	var hrefs []string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(listURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(settle),
		chromedp.Evaluate(linksScript(linkSelector), &hrefs),
	)
	if err != nil {
		return nil, fmt.Errorf("headless fetch %s: %w", listURL, err)
	}

	host := hostFromURL(listURL)
	out := make([]string, 0, len(hrefs))
	for _, h := range hrefs {
		h = strings.TrimSpace(h)
		if h == "" || hostFromURL(h) != host {
			continue
		}
		out = append(out, h)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no offer links found (headless)")
	}
	return out, nil
}

// linksScript returns absolute hrefs; a.href is resolved by the browser.
func linksScript(selector string) string {
	return `Array.from(document.querySelectorAll(` + strconv.Quote(selector) + `))
		.map(a => a.href)
		.filter(h => h && !h.startsWith('javascript:'))`
}
