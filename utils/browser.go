package utils

import (
	"context"
	"fmt"
	"sync"

	"dns-parser/internal/types"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// networkIdle is Chrome's lifecycle event fired once a frame has had no
// network connections for 500ms.
const networkIdle = "networkIdle"

// BrowserClient provides headless browser functionality over a single
// browser tab that is reused for every page.
type BrowserClient struct {
	config *types.Config
	logger types.Logger

	browserCtx  context.Context
	cancelAlloc context.CancelFunc
	cancelTab   context.CancelFunc

	started   bool
	closeOnce sync.Once
	closed    bool
	mu        sync.Mutex
}

// NewBrowserClient creates a new browser client. Chrome itself is started
// lazily by the first navigation.
func NewBrowserClient(config *types.Config, logger types.Logger) *BrowserClient {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", config.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(config.UserAgent),
	)
	if !config.Headless {
		opts = append(opts, chromedp.Flag("start-maximized", true))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logger.Debugf),
		chromedp.WithErrorf(logger.Debugf),
	)

	return &BrowserClient{
		config:      config,
		logger:      logger,
		browserCtx:  browserCtx,
		cancelAlloc: cancelAlloc,
		cancelTab:   cancelTab,
	}
}

// GetPageContent navigates the tab to url, waits until the network settles
// and returns the rendered HTML.
func (b *BrowserClient) GetPageContent(ctx context.Context, url string) (string, error) {
	if b.Closed() {
		return "", fmt.Errorf("browser is closed")
	}
	if err := b.start(); err != nil {
		return "", err
	}

	runCtx, cancel := context.WithTimeout(b.browserCtx, b.config.Timeout)
	defer cancel()

	// tie the navigation to the caller's context as well
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	err := chromedp.Run(runCtx,
		page.SetLifecycleEventsEnabled(true),
		navigateAndWaitIdle(url),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("failed to get page content: %w", err)
	}

	b.logger.Debugf("Successfully retrieved page content from %s (%d bytes)", url, len(html))
	return html, nil
}

// start launches Chrome on the long-lived browser context. Running the first
// action on a derived context would tie the browser's lifetime to it.
func (b *BrowserClient) start() error {
	if b.started {
		return nil
	}
	if err := chromedp.Run(b.browserCtx); err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	b.started = true
	return nil
}

// navigateAndWaitIdle navigates to url and blocks until the networkIdle
// lifecycle event of that navigation's loader arrives.
func navigateAndWaitIdle(url string) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		watcher := newIdleWatcher()
		listenCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		// listen before navigating so an early event is not missed
		chromedp.ListenTarget(listenCtx, watcher.observe)

		_, loaderID, errorText, err := page.Navigate(url).Do(ctx)
		if err != nil {
			return err
		}
		if errorText != "" {
			return fmt.Errorf("navigation to %s failed: %s", url, errorText)
		}

		return watcher.wait(ctx, loaderID)
	}
}

// idleWatcher remembers every loader that reached networkIdle. observe runs
// on chromedp's event loop and must never block.
type idleWatcher struct {
	mu     sync.Mutex
	idle   map[cdp.LoaderID]bool
	notify chan struct{}
}

func newIdleWatcher() *idleWatcher {
	return &idleWatcher{
		idle:   make(map[cdp.LoaderID]bool),
		notify: make(chan struct{}, 1),
	}
}

func (w *idleWatcher) observe(ev interface{}) {
	e, ok := ev.(*page.EventLifecycleEvent)
	if !ok || e.Name != networkIdle {
		return
	}

	w.mu.Lock()
	w.idle[e.LoaderID] = true
	w.mu.Unlock()

	select {
	case w.notify <- struct{}{}:
	default:
	}
}

func (w *idleWatcher) wait(ctx context.Context, loaderID cdp.LoaderID) error {
	for {
		w.mu.Lock()
		done := w.idle[loaderID]
		w.mu.Unlock()
		if done {
			return nil
		}

		select {
		case <-w.notify:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close shuts the browser down. It is safe to call more than once.
func (b *BrowserClient) Close() error {
	var err error
	b.closeOnce.Do(func() {
		err = chromedp.Cancel(b.browserCtx)
		b.cancelTab()
		b.cancelAlloc()

		b.mu.Lock()
		b.closed = true
		b.mu.Unlock()
	})
	if err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return nil
}

// Closed reports whether Close has been called
func (b *BrowserClient) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
