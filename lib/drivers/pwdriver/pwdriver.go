// Package pwdriver drives a browser page with playwright.
// Playwright has no context support, the deadline of the context is converted to the timeout option.
package pwdriver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/pageobject"
	"github.com/go-rod/pageobject/lib/defaults"
	"github.com/playwright-community/playwright-go"
)

// Driver implements pageobject.Driver
type Driver struct {
	page    playwright.Page
	pw      *playwright.Playwright
	browser playwright.Browser
}

var _ pageobject.Driver = &Driver{}

// New driver that controls an existing page, Close won't close the browser of it.
func New(page playwright.Page) *Driver {
	return &Driver{page: page}
}

// Launch a chromium, or connect to defaults.URL if it's set, then open a page to drive.
// If install is true the playwright driver and browsers will be installed when missing.
func Launch(install bool) (*Driver, error) {
	opts := &playwright.RunOptions{
		Browsers: []string{"chromium"},
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}

	if install {
		if err := playwright.Install(opts); err != nil {
			return nil, fmt.Errorf("failed to install playwright: %w", err)
		}
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	d := &Driver{pw: pw}

	if defaults.URL != "" {
		d.browser, err = pw.Chromium.Connect(defaults.URL)
	} else {
		launchOpts := playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(!defaults.Show),
		}
		if defaults.Bin != "" {
			launchOpts.ExecutablePath = playwright.String(defaults.Bin)
		}
		if defaults.Slow > 0 {
			launchOpts.SlowMo = playwright.Float(float64(defaults.Slow / time.Millisecond))
		}
		d.browser, err = pw.Chromium.Launch(launchOpts)
	}
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	d.page, err = d.browser.NewPage()
	if err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return d, nil
}

// Page being driven
func (d *Driver) Page() playwright.Page {
	return d.page
}

// timeout in milliseconds for playwright, nil if ctx has no deadline
func timeout(ctx context.Context) (*float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deadline, has := ctx.Deadline()
	if !has {
		return nil, nil
	}
	return playwright.Float(float64(time.Until(deadline) / time.Millisecond)), nil
}

// Navigate to the url and wait for the load event
func (d *Driver) Navigate(ctx context.Context, url string) error {
	t, err := timeout(ctx)
	if err != nil {
		return err
	}

	_, err = d.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   t,
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	return err
}

// Title of the current page
func (d *Driver) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.page.Title()
}

// Element returns the first playwright.ElementHandle that matches the selector
func (d *Driver) Element(ctx context.Context, selector string) (pageobject.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	el, err := d.page.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, nil
	}
	return el, nil
}

// Close the browser and stop playwright if they are started by Launch
func (d *Driver) Close() error {
	var errs []error
	if d.browser != nil {
		errs = append(errs, d.browser.Close())
	}
	if d.pw != nil {
		errs = append(errs, d.pw.Stop())
	}
	return errors.Join(errs...)
}
