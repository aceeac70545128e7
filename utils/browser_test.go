package utils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/stretchr/testify/assert"
)

func lifecycle(name string, loaderID cdp.LoaderID) *page.EventLifecycleEvent {
	return &page.EventLifecycleEvent{Name: name, LoaderID: loaderID}
}

func TestIdleWatcher_ManyFramesBeforeMainLoader(t *testing.T) {
	watcher := newIdleWatcher()

	for i := 0; i < 100; i++ {
		watcher.observe(lifecycle(networkIdle, cdp.LoaderID(fmt.Sprintf("frame-%d", i))))
	}
	watcher.observe(lifecycle(networkIdle, "main"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, watcher.wait(ctx, "main"))
}

func TestIdleWatcher_EventAfterWaitStarts(t *testing.T) {
	watcher := newIdleWatcher()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		for i := 0; i < 50; i++ {
			watcher.observe(lifecycle(networkIdle, cdp.LoaderID(fmt.Sprintf("frame-%d", i))))
		}
		watcher.observe(lifecycle(networkIdle, "main"))
	}()

	assert.NoError(t, watcher.wait(ctx, "main"))
}

func TestIdleWatcher_IgnoresOtherEvents(t *testing.T) {
	watcher := newIdleWatcher()
	watcher.observe(lifecycle("load", "main"))
	watcher.observe(lifecycle("networkAlmostIdle", "main"))
	watcher.observe(&page.EventFrameNavigated{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, watcher.wait(ctx, "main"), context.DeadlineExceeded)
}
