// Package pageobject is a helper to write browser tests with the Page Object pattern.
// A page declares its url, its title, and the css selectors of its fields,
// Load navigates to the page and asserts it's the page the declaration describes.
package pageobject

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PageObject controls a Driver session for one declared page
type PageObject struct {
	ctx           context.Context
	timeoutCancel func()

	driver   Driver
	url      string
	title    string
	locators LocatorMap

	preConditions  HookFunc
	mapConditions  HookFunc
	postConditions HookFunc

	logger logrus.FieldLogger
	fail   func(interface{})

	// logger of the running Load, nil outside of Load
	loadLogger logrus.FieldLogger

	loaded bool
}

// New page object that drives d. The hooks implemented by def will be used by Load,
// options are applied after them so they can override the hooks of def.
func New(d Driver, def Definition, opts ...Option) *PageObject {
	cfg := def.PageConfig()

	p := &PageObject{
		ctx:           context.Background(),
		timeoutCancel: func() {},
		driver:        d,
		url:           cfg.URL,
		title:         cfg.Title,
		locators:      cfg.Locators,
		logger:        defaultLogger(),
		fail:          func(v interface{}) { panic(v) },
	}

	if h, ok := def.(PreConditioner); ok {
		p.preConditions = h.AssertPreConditions
	}
	if h, ok := def.(MapConditioner); ok {
		p.mapConditions = h.AssertMapConditions
	}
	if h, ok := def.(PostConditioner); ok {
		p.postConditions = h.AssertPostConditions
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Driver the page object controls
func (p *PageObject) Driver() Driver {
	return p.driver
}

// URL is the default navigation target
func (p *PageObject) URL() string {
	return p.url
}

// Title the loaded page must have
func (p *PageObject) Title() string {
	return p.title
}

// Locators of the page
func (p *PageObject) Locators() LocatorMap {
	return p.locators
}

// Loaded returns true if the last Load succeeded
func (p *PageObject) Loaded() bool {
	return p.loaded
}

// Load runs the pre-condition hook, navigates to the url, asserts the page title,
// validates the locator map, then runs the post-condition hook.
// If url is omitted the default url of the page will be used.
// It stops at the first step that fails.
func (p *PageObject) Load(url ...string) (*PageObject, error) {
	target := p.url
	if len(url) > 0 {
		target = url[0]
	}

	p.loaded = false

	if target == "" {
		return nil, fmt.Errorf("%w: no url to load", ErrInvalidArgument)
	}

	log := p.logger.WithField("load_id", uuid.NewString())
	p.loadLogger = log
	defer func() { p.loadLogger = nil }()

	if p.preConditions != nil {
		trace(log, TraceTypeHook, "pre-conditions")
		if err := p.preConditions(p); err != nil {
			return nil, err
		}
	}

	trace(log, TraceTypeNavigate, target)
	if err := p.driver.Navigate(p.ctx, target); err != nil {
		return nil, &NavigationError{URL: target, Err: err}
	}

	if _, err := p.assertPageTitle(log); err != nil {
		return nil, err
	}

	if p.mapConditions != nil {
		trace(log, TraceTypeHook, "map-conditions")
		if err := p.mapConditions(p); err != nil {
			return nil, err
		}
	} else if err := p.assertMapConditions(log); err != nil {
		return nil, err
	}

	if p.postConditions != nil {
		trace(log, TraceTypeHook, "post-conditions")
		if err := p.postConditions(p); err != nil {
			return nil, err
		}
	}

	p.loaded = true
	return p, nil
}

// AssertPageTitle checks the title of the current page equals the expected title
func (p *PageObject) AssertPageTitle() (*PageObject, error) {
	return p.assertPageTitle(p.log())
}

func (p *PageObject) assertPageTitle(log logrus.FieldLogger) (*PageObject, error) {
	title, err := p.driver.Title(p.ctx)
	if err != nil {
		return nil, fmt.Errorf("[pageobject] failed to read page title: %w", err)
	}

	trace(log, TraceTypeTitle, title)

	if title != p.title {
		return nil, &TitleMismatchError{Expected: p.title, Actual: title}
	}
	return p, nil
}

// AssertMapConditions resolves every locator once in declaration order.
// All the locators that can't be resolved are reported together by a LocatorResolutionError.
// An error from the driver stops the validation immediately.
func (p *PageObject) AssertMapConditions() error {
	return p.assertMapConditions(p.log())
}

// log returns the logger of the running Load so that the hooks share its load_id
func (p *PageObject) log() logrus.FieldLogger {
	if p.loadLogger != nil {
		return p.loadLogger
	}
	return p.logger
}

func (p *PageObject) assertMapConditions(log logrus.FieldLogger) error {
	var missing []Locator

	err := p.locators.Each(func(name, selector string) error {
		el, err := p.driver.Element(p.ctx, selector)
		if err != nil {
			return fmt.Errorf("[pageobject] failed to resolve field %q (%s): %w", name, selector, err)
		}

		trace(log.WithField("found", el != nil), TraceTypeLocator, name)

		if el == nil {
			missing = append(missing, Locator{Name: name, Selector: selector})
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(missing) > 0 {
		return &LocatorResolutionError{Missing: missing}
	}
	return nil
}

// GetLocator returns the css selector of the field name
func (p *PageObject) GetLocator(name string) (string, error) {
	selector, has := p.locators.Get(name)
	if !has {
		return "", &UnknownFieldError{Name: name}
	}
	return selector, nil
}

// Element resolves the field on the current page
func (p *PageObject) Element(name string) (Element, error) {
	selector, err := p.GetLocator(name)
	if err != nil {
		return nil, err
	}

	el, err := p.driver.Element(p.ctx, selector)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, &LocatorResolutionError{Missing: []Locator{{Name: name, Selector: selector}}}
	}
	return el, nil
}
