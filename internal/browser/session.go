// Package browser owns the browser session used for a scraping run. A
// session is a scoped resource: acquired once before any scraping begins
// and released on every exit path via Close.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// Injected before any page script runs; sites check navigator.webdriver to
// reject automated traffic.
const stealthScript = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`

// Session is the contract the scraping pipeline needs from a live browser.
// All calls are blocking relative to the single underlying page; the
// session is never shared across concurrent flows.
type Session interface {
	// Navigate loads the given URL in the session's page.
	Navigate(ctx context.Context, url string) error
	// PageSource returns the current rendered HTML of the page.
	PageSource(ctx context.Context) (string, error)
	// Evaluate runs a JavaScript expression; out may be nil when the
	// result is not needed.
	Evaluate(ctx context.Context, js string, out any) error
	// WaitVisible blocks until an element matching selector is visible,
	// or the bounded timeout elapses.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	// ClickByScript scrolls an element into view and clicks it through
	// script execution, which works for controls that intercept native
	// clicks.
	ClickByScript(ctx context.Context, selector string) error
	// Close releases the browser. Safe to call more than once.
	Close() error
}

// Options configures a Chrome session.
type Options struct {
	Headless  bool
	UserAgent string
	Proxy     string
	// ChromePath overrides automatic binary discovery when non-empty.
	ChromePath string
}

// ChromeSession drives a single headless Chrome via chromedp.
type ChromeSession struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
	closed      bool
}

// NewChromeSession launches Chrome with stealth-oriented flags and warms
// it up on a blank page. The caller must Close the session when the run
// ends, including on error paths.
func NewChromeSession(opts Options) (*ChromeSession, error) {
	chromePath := opts.ChromePath
	if chromePath == "" {
		chromePath = FindChrome()
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-client-side-phishing-detection", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-ipc-flooding-protection", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("force-color-profile", "srgb"),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("safebrowsing-disable-auto-update", true),
		// Reduce automated-traffic detection signatures
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("window-size", "1920,1080"),
	}

	if chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, allocOpts...)
	}
	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.Proxy))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	warmup := []chromedp.Action{
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
		chromedp.Navigate("about:blank"),
	}
	if err := chromedp.Run(browserCtx, warmup...); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}

	log.Debug().
		Str("chrome_path", chromePath).
		Bool("headless", opts.Headless).
		Msg("Browser session started")

	return &ChromeSession{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		ctx:         browserCtx,
		cancel:      browserCancel,
	}, nil
}

// run executes chromedp actions against the session page. The actions run
// under a context derived from the session so the browser target is found,
// but cancelled as soon as the caller's context ends: a timed-out wait
// must stop polling the shared page, not linger for the session lifetime.
func (s *ChromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	if s.closed {
		return fmt.Errorf("browser session is closed")
	}
	runCtx, cancel := boundToCaller(s.ctx, ctx)
	defer cancel()
	if err := chromedp.Run(runCtx, actions...); err != nil {
		// Surface the caller's deadline rather than the derived cancel.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

// boundToCaller derives a cancellable context from session that also ends
// when caller ends.
func boundToCaller(session, caller context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(session)
	stop := context.AfterFunc(caller, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// Navigate loads url in the session page.
func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	start := time.Now()
	err := s.run(ctx, chromedp.Navigate(url))
	log.Debug().
		Str("url", url).
		Dur("elapsed_ms", time.Since(start)).
		Err(err).
		Msg("Navigation completed")
	return err
}

// PageSource returns the outer HTML of the current document.
func (s *ChromeSession) PageSource(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to capture page source: %w", err)
	}
	return html, nil
}

// Evaluate runs a JavaScript expression in the page.
func (s *ChromeSession) Evaluate(ctx context.Context, js string, out any) error {
	return s.run(ctx, chromedp.Evaluate(js, out))
}

// WaitVisible blocks until selector is visible or timeout elapses.
func (s *ChromeSession) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.run(waitCtx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// ClickByScript scrolls the first match into view, settles briefly, then
// clicks it via script. Pagination controls on the target site swallow
// native clicks, so this is the reliable path.
func (s *ChromeSession) ClickByScript(ctx context.Context, selector string) error {
	scroll := fmt.Sprintf(`document.querySelector(%q).scrollIntoView(true)`, selector)
	if err := s.run(ctx, chromedp.Evaluate(scroll, nil)); err != nil {
		return fmt.Errorf("failed to scroll %s into view: %w", selector, err)
	}
	if err := sleepCtx(ctx, time.Second); err != nil {
		return err
	}
	click := fmt.Sprintf(`document.querySelector(%q).click()`, selector)
	if err := s.run(ctx, chromedp.Evaluate(click, nil)); err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}
	return nil
}

// Close tears down the browser and its allocator.
func (s *ChromeSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.cancel()
	s.allocCancel()
	log.Debug().Msg("Browser session closed")
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
