package pageobject

import (
	"errors"
	"fmt"
)

// Locator is a css selector bound to a symbolic field name
type Locator struct {
	Name     string
	Selector string
}

// LocatorMap is an immutable ordered map from field name to css selector.
// The zero value is an empty map.
type LocatorMap struct {
	list  []Locator
	index map[string]int
}

// NewLocatorMap creates a map from name and selector pairs, such as:
//
//	NewLocatorMap("username", "#user", "password", "#pass")
//
// The order of the pairs is kept.
func NewLocatorMap(pairs ...string) (LocatorMap, error) {
	if len(pairs)%2 != 0 {
		return LocatorMap{}, fmt.Errorf("%w: locator pairs must be name and selector, got %d strings", ErrInvalidArgument, len(pairs))
	}

	list := make([]Locator, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		list = append(list, Locator{Name: pairs[i], Selector: pairs[i+1]})
	}

	return LocatorMapFromList(list)
}

// LocatorMapFromList creates a map from a locator list, the order of the list is kept.
func LocatorMapFromList(list []Locator) (LocatorMap, error) {
	m := LocatorMap{
		list:  make([]Locator, 0, len(list)),
		index: make(map[string]int, len(list)),
	}

	for _, l := range list {
		if l.Name == "" {
			return LocatorMap{}, fmt.Errorf("%w: empty field name for selector %q", ErrInvalidArgument, l.Selector)
		}
		if _, has := m.index[l.Name]; has {
			return LocatorMap{}, fmt.Errorf("%w: duplicated field name %q", ErrInvalidArgument, l.Name)
		}
		m.index[l.Name] = len(m.list)
		m.list = append(m.list, l)
	}

	return m, nil
}

// Get the selector of the field name
func (m LocatorMap) Get(name string) (string, bool) {
	i, has := m.index[name]
	if !has {
		return "", false
	}
	return m.list[i].Selector, true
}

// Len of the map
func (m LocatorMap) Len() int {
	return len(m.list)
}

// Names in insertion order
func (m LocatorMap) Names() []string {
	names := make([]string, 0, len(m.list))
	for _, l := range m.list {
		names = append(names, l.Name)
	}
	return names
}

// Locators returns a copy of the entries in insertion order
func (m LocatorMap) Locators() []Locator {
	return append([]Locator{}, m.list...)
}

// Each calls fn for every entry in insertion order, it stops at the first error fn returns.
func (m LocatorMap) Each(fn func(name, selector string) error) error {
	for _, l := range m.list {
		if err := fn(l.Name, l.Selector); err != nil {
			if errors.Is(err, ErrStopEach) {
				return nil
			}
			return err
		}
	}
	return nil
}

// ErrStopEach can be returned by the fn of LocatorMap.Each to stop the iteration without error
var ErrStopEach = errors.New("stop each")
