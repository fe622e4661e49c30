// Package cdpdriver drives a Chromium tab with chromedp
package cdpdriver

import (
	"context"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/go-rod/pageobject"
	"github.com/go-rod/pageobject/lib/defaults"
	"github.com/sirupsen/logrus"
)

// Driver implements pageobject.Driver
type Driver struct {
	ctx    context.Context
	cancel func()
}

var _ pageobject.Driver = &Driver{}

// New driver from a context created by chromedp.NewContext
func New(ctx context.Context) *Driver {
	return &Driver{ctx: ctx, cancel: func() {}}
}

// Launch a browser, or connect to defaults.URL if it's set.
// The chromedp logs are forwarded to the logger.
func Launch(ctx context.Context, logger logrus.FieldLogger) (*Driver, error) {
	var alloc context.Context
	var cancelAlloc context.CancelFunc

	if defaults.URL != "" {
		alloc, cancelAlloc = chromedp.NewRemoteAllocator(ctx, defaults.URL)
	} else {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", !defaults.Show),
		)
		if defaults.Bin != "" {
			opts = append(opts, chromedp.ExecPath(defaults.Bin))
		}
		alloc, cancelAlloc = chromedp.NewExecAllocator(ctx, opts...)
	}

	c, cancel := chromedp.NewContext(alloc,
		chromedp.WithLogf(logger.Debugf),
		chromedp.WithErrorf(logger.Errorf),
	)

	// start the browser
	if err := chromedp.Run(c); err != nil {
		cancel()
		cancelAlloc()
		return nil, err
	}

	return &Driver{ctx: c, cancel: func() {
		cancel()
		cancelAlloc()
	}}, nil
}

// Context of the chromedp tab
func (d *Driver) Context() context.Context {
	return d.ctx
}

// run the actions on the tab, they will be canceled when ctx is done
func (d *Driver) run(ctx context.Context, actions ...chromedp.Action) error {
	c, cancel := context.WithCancel(d.ctx)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(c, actions...)
}

// Navigate to the url and wait for the load event
func (d *Driver) Navigate(ctx context.Context, url string) error {
	return d.run(ctx, chromedp.Navigate(url))
}

// Title of the current page
func (d *Driver) Title(ctx context.Context) (string, error) {
	var title string
	err := d.run(ctx, chromedp.Title(&title))
	return title, err
}

// Element returns the first *cdp.Node that matches the selector
func (d *Driver) Element(ctx context.Context, selector string) (pageobject.Element, error) {
	var nodes []*cdp.Node
	err := d.run(ctx, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	return nodes[0], nil
}

// Close the browser if it's opened by Launch
func (d *Driver) Close() error {
	d.cancel()
	return nil
}
