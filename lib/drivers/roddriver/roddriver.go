// Package roddriver drives a Chromium tab via the devtools protocol with rod
package roddriver

import (
	"context"

	"github.com/go-rod/pageobject"
	"github.com/go-rod/pageobject/lib/defaults"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Driver implements pageobject.Driver
type Driver struct {
	page    *rod.Page
	browser *rod.Browser
	l       *launcher.Launcher
}

var _ pageobject.Driver = &Driver{}

// New driver that controls an existing page, Close won't close the browser of it.
func New(page *rod.Page) *Driver {
	return &Driver{page: page}
}

// Launch a browser, or connect to defaults.URL if it's set, then open a blank page to drive
func Launch(ctx context.Context) (*Driver, error) {
	d := &Driver{}

	u := defaults.URL
	if u == "" {
		d.l = launcher.New().Context(ctx).Headless(!defaults.Show)
		if defaults.Bin != "" {
			d.l = d.l.Bin(defaults.Bin)
		}

		var err error
		u, err = d.l.Launch()
		if err != nil {
			return nil, err
		}
	}

	d.browser = rod.New().Context(ctx).ControlURL(u).SlowMotion(defaults.Slow).Trace(defaults.Trace)
	if err := d.browser.Connect(); err != nil {
		d.cleanup()
		return nil, err
	}

	page, err := d.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = d.Close()
		return nil, err
	}
	d.page = page

	return d, nil
}

// Available returns true if a browser can be found on the machine or defaults.URL is set
func Available() bool {
	if defaults.URL != "" || defaults.Bin != "" {
		return true
	}
	_, has := launcher.LookPath()
	return has
}

// Page being driven
func (d *Driver) Page() *rod.Page {
	return d.page
}

// Navigate to the url and wait for the load event
func (d *Driver) Navigate(ctx context.Context, url string) error {
	p := d.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return err
	}
	return p.WaitLoad()
}

// Title of the current page
func (d *Driver) Title(ctx context.Context) (string, error) {
	info, err := d.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

// Element returns the first *rod.Element that matches the selector
func (d *Driver) Element(ctx context.Context, selector string) (pageobject.Element, error) {
	list, err := d.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, err
	}
	if list.Empty() {
		return nil, nil
	}
	return list.First(), nil
}

// Close the browser if it's opened by Launch
func (d *Driver) Close() error {
	if d.browser == nil {
		return nil
	}
	err := d.browser.Close()
	d.cleanup()
	return err
}

func (d *Driver) cleanup() {
	if d.l != nil {
		d.l.Kill()
		d.l.Cleanup()
	}
}
