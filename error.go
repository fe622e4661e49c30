package pageobject

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is matched by errors caused by a bad argument from the caller,
// such as asking for a field the page doesn't declare.
var ErrInvalidArgument = errors.New("invalid argument")

// NavigationError is returned when the driver fails to load a url
type NavigationError struct {
	URL string
	Err error
}

// Error ...
func (e *NavigationError) Error() string {
	return fmt.Sprintf("[pageobject] failed to navigate to %q: %v", e.URL, e.Err)
}

// Unwrap ...
func (e *NavigationError) Unwrap() error {
	return e.Err
}

// TitleMismatchError is returned when the loaded page doesn't have the expected title
type TitleMismatchError struct {
	Expected string
	Actual   string
}

// Error ...
func (e *TitleMismatchError) Error() string {
	return fmt.Sprintf("[pageobject] expect page title %q, but got %q", e.Expected, e.Actual)
}

// LocatorResolutionError is returned when declared locators can't be found on the loaded page.
// Missing keeps the declaration order of the page's locator map.
type LocatorResolutionError struct {
	Missing []Locator
}

// Error ...
func (e *LocatorResolutionError) Error() string {
	list := make([]string, 0, len(e.Missing))
	for _, l := range e.Missing {
		list = append(list, fmt.Sprintf("%s (%s)", l.Name, l.Selector))
	}
	return "[pageobject] cannot resolve locators: " + strings.Join(list, ", ")
}

// Has returns true if the field name is one of the missing locators
func (e *LocatorResolutionError) Has(name string) bool {
	for _, l := range e.Missing {
		if l.Name == name {
			return true
		}
	}
	return false
}

// UnknownFieldError is returned when a field name isn't declared in the locator map
type UnknownFieldError struct {
	Name string
}

// Error ...
func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("[pageobject] unknown field %q", e.Name)
}

// Is makes errors.Is(err, ErrInvalidArgument) true
func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrInvalidArgument
}
