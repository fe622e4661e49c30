package pageobject

import "context"

// Element is an opaque handle of a located page element, its concrete type is owned by the Driver.
// Such as *rod.Element for the rod driver, or playwright.ElementHandle for the playwright driver.
type Element interface{}

// Driver is the browser session a PageObject controls.
// A Driver is not safe for concurrent use by multiple PageObjects.
type Driver interface {
	// Navigate the session to the url
	Navigate(ctx context.Context, url string) error

	// Title of the current page
	Title(ctx context.Context) (string, error)

	// Element returns the first element that matches the css selector on the current page.
	// It returns nil and no error when nothing matches, it should never wait for the element to appear.
	Element(ctx context.Context, selector string) (Element, error)
}
