package pageobject

// Config describes a page: where it lives, what title it has, and what fields it contains
type Config struct {
	// URL is the default navigation target of Load
	URL string

	// Title the loaded page must have
	Title string

	// Locators of the fields the loaded page must contain
	Locators LocatorMap
}

// PageConfig implements Definition
func (c Config) PageConfig() Config {
	return c
}

// Definition of a concrete page. Embed Config into a struct to define a page type,
// then implement any of PreConditioner, MapConditioner or PostConditioner on it to
// customize the load protocol.
//
//	type LoginPage struct{ pageobject.Config }
//
//	func (LoginPage) AssertPreConditions(p *pageobject.PageObject) error { ... }
type Definition interface {
	PageConfig() Config
}

// HookFunc is a step of the load protocol
type HookFunc func(p *PageObject) error

// PreConditioner runs before the navigation
type PreConditioner interface {
	AssertPreConditions(p *PageObject) error
}

// MapConditioner replaces the default locator validation, use PageObject.AssertMapConditions
// inside it to keep the default behavior.
type MapConditioner interface {
	AssertMapConditions(p *PageObject) error
}

// PostConditioner runs after the locator validation
type PostConditioner interface {
	AssertPostConditions(p *PageObject) error
}

// Option for New
type Option func(p *PageObject)

// WithPreConditions overrides the pre-condition hook
func WithPreConditions(fn HookFunc) Option {
	return func(p *PageObject) {
		p.preConditions = fn
	}
}

// WithMapConditions overrides the locator validation
func WithMapConditions(fn HookFunc) Option {
	return func(p *PageObject) {
		p.mapConditions = fn
	}
}

// WithPostConditions overrides the post-condition hook
func WithPostConditions(fn HookFunc) Option {
	return func(p *PageObject) {
		p.postConditions = fn
	}
}
