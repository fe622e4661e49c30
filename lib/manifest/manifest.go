// Package manifest loads page declarations from a yaml or json file, such as:
//
//	pages:
//	  login:
//	    url: login.html
//	    title: Sign In
//	    locators:
//	      username: "#user"
//	      password: "#pass"
//
// The order of the pages and the locators in the file is kept.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-rod/pageobject"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is matched by all the errors of an invalid manifest
var ErrInvalid = errors.New("invalid manifest")

// Page declaration, it implements pageobject.Definition
type Page struct {
	Name string
	pageobject.Config
}

// Manifest of pages
type Manifest struct {
	Pages []Page
}

// Page returns the page declaration by name
func (m *Manifest) Page(name string) (Page, bool) {
	for _, p := range m.Pages {
		if p.Name == name {
			return p, true
		}
	}
	return Page{}, false
}

// Load the manifest file
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse json or yaml data
func Parse(data []byte) (*Manifest, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' && gjson.ValidBytes(trimmed) {
		return ParseJSON(trimmed)
	}
	return ParseYAML(data)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func invalidSelector(page, locator string) error {
	return invalid("page %q: locator %q must be a css selector string", page, locator)
}

func (m *Manifest) add(p Page) error {
	if p.Name == "" {
		return invalid("empty page name")
	}
	if _, has := m.Page(p.Name); has {
		return invalid("duplicated page %q", p.Name)
	}
	m.Pages = append(m.Pages, p)
	return nil
}

// ParseJSON data
func ParseJSON(data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, invalid("malformed json")
	}

	pages := gjson.GetBytes(data, "pages")
	if !pages.IsObject() {
		return nil, invalid(`"pages" must be an object`)
	}

	m := &Manifest{}
	var err error

	pages.ForEach(func(name, page gjson.Result) bool {
		if !page.IsObject() {
			err = invalid("page %q must be an object", name.String())
			return false
		}

		list := []pageobject.Locator{}
		locators := page.Get("locators")
		if locators.Exists() && !locators.IsObject() {
			err = invalid(`"locators" of page %q must be an object`, name.String())
			return false
		}
		locators.ForEach(func(k, v gjson.Result) bool {
			if v.Type != gjson.String || v.String() == "" {
				err = invalidSelector(name.String(), k.String())
				return false
			}
			list = append(list, pageobject.Locator{Name: k.String(), Selector: v.String()})
			return true
		})
		if err != nil {
			return false
		}

		err = m.addPage(name.String(), page.Get("url").String(), page.Get("title").String(), list)
		return err == nil
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Manifest) addPage(name, url, title string, list []pageobject.Locator) error {
	locators, err := pageobject.LocatorMapFromList(list)
	if err != nil {
		return fmt.Errorf("%w: page %q: %v", ErrInvalid, name, err)
	}

	return m.add(Page{
		Name: name,
		Config: pageobject.Config{
			URL:      url,
			Title:    title,
			Locators: locators,
		},
	})
}

// ParseYAML data
func ParseYAML(data []byte) (*Manifest, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(root.Content) == 0 {
		return nil, invalid("empty document")
	}

	pages := mappingValue(root.Content[0], "pages")
	if pages == nil || pages.Kind != yaml.MappingNode {
		return nil, invalid(`"pages" must be a mapping`)
	}

	m := &Manifest{}

	for i := 0; i+1 < len(pages.Content); i += 2 {
		name, page := pages.Content[i].Value, pages.Content[i+1]
		if page.Kind != yaml.MappingNode {
			return nil, invalid("line %d: page %q must be a mapping", page.Line, name)
		}

		var fields struct {
			URL   string `yaml:"url"`
			Title string `yaml:"title"`
		}
		if err := page.Decode(&fields); err != nil {
			return nil, fmt.Errorf("%w: page %q: %v", ErrInvalid, name, err)
		}

		list := []pageobject.Locator{}
		if locators := mappingValue(page, "locators"); locators != nil {
			if locators.Kind != yaml.MappingNode {
				return nil, invalid("line %d: \"locators\" of page %q must be a mapping", locators.Line, name)
			}
			for j := 0; j+1 < len(locators.Content); j += 2 {
				k, v := locators.Content[j], locators.Content[j+1]
				if v.Kind != yaml.ScalarNode || v.Tag == "!!null" || v.Value == "" {
					return nil, invalidSelector(name, k.Value)
				}
				list = append(list, pageobject.Locator{Name: k.Value, Selector: v.Value})
			}
		}

		if err := m.addPage(name, fields.URL, fields.Title, list); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// JSON encodes the manifest as indented json, the order of the pages and locators is kept
func (m *Manifest) JSON() ([]byte, error) {
	out := []byte(`{"pages":{}}`)

	var err error
	set := func(path string, value interface{}) {
		if err == nil {
			out, err = sjson.SetBytes(out, path, value)
		}
	}

	for _, p := range m.Pages {
		base := "pages." + escape(p.Name)

		set(base+".url", p.URL)
		set(base+".title", p.Title)
		if err == nil {
			out, err = sjson.SetRawBytes(out, base+".locators", []byte("{}"))
		}
		for _, l := range p.Locators.Locators() {
			set(base+".locators."+escape(l.Name), l.Selector)
		}
	}
	if err != nil {
		return nil, err
	}

	return []byte(gjson.GetBytes(out, "@pretty").Raw), nil
}

// escape the special chars of a path component
func escape(key string) string {
	var b strings.Builder
	for _, r := range key {
		if strings.ContainsRune(`\.*?|#@!:=<>%`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
