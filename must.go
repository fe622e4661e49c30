// This file contains the methods that panics when error return value is not nil.
// Their function names are all prefixed with Must.
// Use WithPanic to replace the panic with something else, such as the t.Fatal of a test.

package pageobject

import "github.com/go-rod/pageobject/lib/utils"

// WithPanic returns a clone that calls fail instead of panic when a Must method fails
func (p *PageObject) WithPanic(fail func(interface{})) *PageObject {
	newObj := *p
	newObj.fail = fail
	return &newObj
}

func (p *PageObject) e(err error) {
	if err != nil {
		p.fail(err)
	}
}

// MustLoad is similar to Load
func (p *PageObject) MustLoad(url ...string) *PageObject {
	_, err := p.Load(url...)
	p.e(err)
	return p
}

// MustAssertPageTitle is similar to AssertPageTitle
func (p *PageObject) MustAssertPageTitle() *PageObject {
	_, err := p.AssertPageTitle()
	p.e(err)
	return p
}

// MustAssertMapConditions is similar to AssertMapConditions
func (p *PageObject) MustAssertMapConditions() *PageObject {
	p.e(p.AssertMapConditions())
	return p
}

// MustGetLocator is similar to GetLocator
func (p *PageObject) MustGetLocator(name string) string {
	selector, err := p.GetLocator(name)
	p.e(err)
	return selector
}

// MustElement is similar to Element
func (p *PageObject) MustElement(name string) Element {
	el, err := p.Element(name)
	p.e(err)
	return el
}

// MustLocatorMap is similar to NewLocatorMap
func MustLocatorMap(pairs ...string) LocatorMap {
	m, err := NewLocatorMap(pairs...)
	utils.E(err)
	return m
}
