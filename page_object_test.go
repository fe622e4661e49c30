package pageobject_test

import (
	"context"
	"errors"
	"time"

	"github.com/go-rod/pageobject"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
)

func (s *S) TestLoadRunsStepsInOrder() {
	steps := []string{}
	record := func(name string) func(mock.Arguments) {
		return func(mock.Arguments) { steps = append(steps, name) }
	}
	hook := func(name string) pageobject.HookFunc {
		return func(*pageobject.PageObject) error {
			steps = append(steps, name)
			return nil
		}
	}

	s.driver.On("Navigate", mock.Anything, "foo123.html").Return(nil).Run(record("navigate"))
	s.driver.On("Title", mock.Anything).Return("Foo 123", nil).Run(record("title"))

	p := pageobject.New(s.driver, fooPage,
		pageobject.WithPreConditions(hook("pre")),
		pageobject.WithMapConditions(hook("map")),
		pageobject.WithPostConditions(hook("post")),
	)

	_, err := p.Load()
	s.Require().NoError(err)
	s.Equal([]string{"pre", "navigate", "title", "map", "post"}, steps)
	s.driver.AssertNotCalled(s.T(), "Element", mock.Anything, mock.Anything)
}

func (s *S) TestLoadWithDefaultURL() {
	s.stubLoadable()

	p := pageobject.New(s.driver, fooPage)
	_, err := p.Load()
	s.Require().NoError(err)

	s.driver.AssertNumberOfCalls(s.T(), "Navigate", 1)
	s.driver.AssertCalled(s.T(), "Navigate", mock.Anything, "foo123.html")
}

func (s *S) TestLoadWithURLGiven() {
	s.stubLoadable()

	p := pageobject.New(s.driver, fooPage)
	_, err := p.Load("bar.html")
	s.Require().NoError(err)

	s.driver.AssertNumberOfCalls(s.T(), "Navigate", 1)
	s.driver.AssertCalled(s.T(), "Navigate", mock.Anything, "bar.html")
	s.driver.AssertNotCalled(s.T(), "Navigate", mock.Anything, "foo123.html")
}

func (s *S) TestLoadReturnsThis() {
	s.stubLoadable()

	p := pageobject.New(s.driver, fooPage)
	s.False(p.Loaded())

	returned, err := p.Load()
	s.Require().NoError(err)
	s.Same(p, returned)
	s.True(p.Loaded())
}

func (s *S) TestLoadWithoutURL() {
	p := pageobject.New(s.driver, pageobject.Config{Title: "Foo 123"})

	_, err := p.Load()
	s.ErrorIs(err, pageobject.ErrInvalidArgument)
	s.driver.AssertNotCalled(s.T(), "Navigate", mock.Anything, mock.Anything)
}

func (s *S) TestAssertPageTitle() {
	s.driver.On("Title", mock.Anything).Return("Foo 123", nil)

	p := pageobject.New(s.driver, fooPage)
	returned, err := p.AssertPageTitle()
	s.Require().NoError(err)
	s.Same(p, returned)
}

func (s *S) TestAssertPageTitleMismatch() {
	s.driver.On("Title", mock.Anything).Return("Foo", nil)

	_, err := pageobject.New(s.driver, fooPage).AssertPageTitle()

	var mismatch *pageobject.TitleMismatchError
	s.Require().ErrorAs(err, &mismatch)
	s.Equal("Foo 123", mismatch.Expected)
	s.Equal("Foo", mismatch.Actual)
}

func (s *S) TestAssertPageTitleDriverError() {
	errTitle := errors.New("session closed")
	s.driver.On("Title", mock.Anything).Return("", errTitle)

	_, err := pageobject.New(s.driver, fooPage).AssertPageTitle()
	s.ErrorIs(err, errTitle)
}

func (s *S) TestLoadTitleMismatchStopsBeforeLocators() {
	s.driver.On("Navigate", mock.Anything, mock.Anything).Return(nil)
	s.driver.On("Title", mock.Anything).Return("Wrong Title", nil)

	p := pageobject.New(s.driver, fooPage)
	_, err := p.Load()

	var mismatch *pageobject.TitleMismatchError
	s.Require().ErrorAs(err, &mismatch)
	s.Equal("Wrong Title", mismatch.Actual)
	s.driver.AssertNotCalled(s.T(), "Element", mock.Anything, mock.Anything)
	s.False(p.Loaded())
}

func (s *S) TestLoadNavigationError() {
	errNav := errors.New("net::ERR_NAME_NOT_RESOLVED")
	s.driver.On("Navigate", mock.Anything, mock.Anything).Return(errNav)

	_, err := pageobject.New(s.driver, fooPage).Load()

	var navErr *pageobject.NavigationError
	s.Require().ErrorAs(err, &navErr)
	s.Equal("foo123.html", navErr.URL)
	s.ErrorIs(err, errNav)
	s.driver.AssertNotCalled(s.T(), "Title", mock.Anything)
}

func (s *S) TestAssertMapConditions() {
	s.stubLoadable()

	_, err := pageobject.New(s.driver, fooPage).Load()
	s.Require().NoError(err)

	s.driver.AssertNumberOfCalls(s.T(), "Element", 3)
	for _, selector := range []string{"field_1", "field_2", "field_3"} {
		s.driver.AssertCalled(s.T(), "Element", mock.Anything, selector)
	}
}

func (s *S) TestAssertMapConditionsOrder() {
	selectors := []string{}
	s.driver.On("Element", mock.Anything, mock.Anything).Return("not_null", nil).Run(func(args mock.Arguments) {
		selectors = append(selectors, args.String(1))
	})

	s.Require().NoError(pageobject.New(s.driver, fooPage).AssertMapConditions())
	s.Equal([]string{"field_1", "field_2", "field_3"}, selectors)
}

func (s *S) TestAssertMapConditionsMissingLocator() {
	s.driver.On("Navigate", mock.Anything, mock.Anything).Return(nil)
	s.driver.On("Title", mock.Anything).Return("Foo 123", nil)
	s.driver.On("Element", mock.Anything, "field_3").Return(nil, nil)
	s.driver.On("Element", mock.Anything, mock.Anything).Return("not_null", nil)

	_, err := pageobject.New(s.driver, fooPage).Load()

	var resErr *pageobject.LocatorResolutionError
	s.Require().ErrorAs(err, &resErr)
	s.Equal([]pageobject.Locator{{Name: "fieldThree", Selector: "field_3"}}, resErr.Missing)
	s.True(resErr.Has("fieldThree"))
	s.False(resErr.Has("fieldOne"))
	s.Contains(err.Error(), "fieldThree")
	s.driver.AssertNumberOfCalls(s.T(), "Element", 3)
}

func (s *S) TestAssertMapConditionsReportsAllMissing() {
	s.driver.On("Element", mock.Anything, "field_2").Return("not_null", nil)
	s.driver.On("Element", mock.Anything, mock.Anything).Return(nil, nil)

	err := pageobject.New(s.driver, fooPage).AssertMapConditions()

	var resErr *pageobject.LocatorResolutionError
	s.Require().ErrorAs(err, &resErr)
	s.Equal([]pageobject.Locator{
		{Name: "fieldOne", Selector: "field_1"},
		{Name: "fieldThree", Selector: "field_3"},
	}, resErr.Missing)
}

func (s *S) TestAssertMapConditionsDriverError() {
	errEl := errors.New("invalid selector")
	s.driver.On("Element", mock.Anything, "field_1").Return(nil, errEl)

	err := pageobject.New(s.driver, fooPage).AssertMapConditions()

	s.ErrorIs(err, errEl)
	s.Contains(err.Error(), "fieldOne")
	s.driver.AssertNumberOfCalls(s.T(), "Element", 1)
}

func (s *S) TestGetLocator() {
	p := pageobject.New(s.driver, fooPage)

	selector, err := p.GetLocator("fieldTwo")
	s.Require().NoError(err)
	s.Equal("field_2", selector)

	for _, name := range fooPage.Locators.Names() {
		expected, _ := fooPage.Locators.Get(name)
		s.Equal(expected, p.MustGetLocator(name))
	}

	s.Empty(s.driver.Calls)
}

func (s *S) TestGetLocatorMissing() {
	p := pageobject.New(s.driver, fooPage)

	_, err := p.GetLocator("this-key-does-not-exist")

	var unknown *pageobject.UnknownFieldError
	s.Require().ErrorAs(err, &unknown)
	s.Equal("this-key-does-not-exist", unknown.Name)
	s.ErrorIs(err, pageobject.ErrInvalidArgument)
	s.Contains(err.Error(), "this-key-does-not-exist")
	s.Empty(s.driver.Calls)
}

func (s *S) TestElement() {
	s.driver.On("Element", mock.Anything, "field_1").Return("el", nil)
	s.driver.On("Element", mock.Anything, "field_2").Return(nil, nil)

	p := pageobject.New(s.driver, fooPage)

	el, err := p.Element("fieldOne")
	s.Require().NoError(err)
	s.Equal("el", el)

	_, err = p.Element("fieldTwo")
	var resErr *pageobject.LocatorResolutionError
	s.Require().ErrorAs(err, &resErr)
	s.True(resErr.Has("fieldTwo"))

	_, err = p.Element("nope")
	s.ErrorIs(err, pageobject.ErrInvalidArgument)
	s.driver.AssertNumberOfCalls(s.T(), "Element", 2)
}

func (s *S) TestPreConditionsFailure() {
	errPre := errors.New("not logged in")

	p := pageobject.New(s.driver, fooPage, pageobject.WithPreConditions(func(*pageobject.PageObject) error {
		return errPre
	}))

	_, err := p.Load()
	s.ErrorIs(err, errPre)
	s.Empty(s.driver.Calls)
}

func (s *S) TestPostConditionsFailure() {
	s.stubLoadable()
	errPost := errors.New("banner missing")

	p := pageobject.New(s.driver, fooPage, pageobject.WithPostConditions(func(*pageobject.PageObject) error {
		return errPost
	}))

	_, err := p.Load()
	s.ErrorIs(err, errPost)
	s.False(p.Loaded())
	s.driver.AssertNumberOfCalls(s.T(), "Element", 3)
}

// a page type that overrides all the hooks
type hookedPage struct {
	pageobject.Config
	steps *[]string
}

func (h hookedPage) AssertPreConditions(*pageobject.PageObject) error {
	*h.steps = append(*h.steps, "pre")
	return nil
}

func (h hookedPage) AssertMapConditions(p *pageobject.PageObject) error {
	*h.steps = append(*h.steps, "map")
	return p.AssertMapConditions()
}

func (h hookedPage) AssertPostConditions(*pageobject.PageObject) error {
	*h.steps = append(*h.steps, "post")
	return nil
}

func (s *S) TestDefinitionHooks() {
	s.stubLoadable()

	steps := []string{}
	p := pageobject.New(s.driver, hookedPage{fooPage, &steps})

	_, err := p.Load()
	s.Require().NoError(err)
	s.Equal([]string{"pre", "map", "post"}, steps)
	s.driver.AssertNumberOfCalls(s.T(), "Element", 3)

	s.Equal("foo123.html", p.URL())
	s.Equal("Foo 123", p.Title())
	s.Equal(3, p.Locators().Len())
	s.Same(s.driver, p.Driver())
}

func (s *S) TestOptionsOverrideDefinitionHooks() {
	s.stubLoadable()

	steps := []string{}
	p := pageobject.New(s.driver, hookedPage{fooPage, &steps},
		pageobject.WithPreConditions(func(*pageobject.PageObject) error {
			steps = append(steps, "option")
			return nil
		}),
	)

	_, err := p.Load()
	s.Require().NoError(err)
	s.Equal([]string{"option", "map", "post"}, steps)
}

func (s *S) TestReload() {
	s.stubLoadable()

	p := pageobject.New(s.driver, fooPage)
	p.MustLoad().MustLoad("bar.html")

	s.driver.AssertNumberOfCalls(s.T(), "Navigate", 2)
	s.driver.AssertNumberOfCalls(s.T(), "Title", 2)
	s.driver.AssertNumberOfCalls(s.T(), "Element", 6)
}

func (s *S) TestMust() {
	s.driver.On("Navigate", mock.Anything, mock.Anything).Return(nil)
	s.driver.On("Title", mock.Anything).Return("Wrong Title", nil)

	p := pageobject.New(s.driver, fooPage)

	s.Panics(func() { p.MustLoad() })
	s.Panics(func() { p.MustAssertPageTitle() })
	s.Panics(func() { p.MustGetLocator("nope") })
	s.Panics(func() { p.MustElement("nope") })
	s.Panics(func() { pageobject.MustLocatorMap("a") })

	var failures []interface{}
	withPanic := p.WithPanic(func(v interface{}) { failures = append(failures, v) })

	s.NotPanics(func() { withPanic.MustLoad() })
	s.NotPanics(func() { withPanic.MustGetLocator("nope") })
	s.Len(failures, 2)
	s.IsType(&pageobject.TitleMismatchError{}, failures[0])
	s.IsType(&pageobject.UnknownFieldError{}, failures[1])
}

func (s *S) TestMustAssertMapConditions() {
	s.driver.On("Element", mock.Anything, mock.Anything).Return("not_null", nil)

	p := pageobject.New(s.driver, fooPage)
	s.Same(p, p.MustAssertMapConditions())
}

type ctxKey struct{}

func (s *S) TestContext() {
	ctx := context.WithValue(context.Background(), ctxKey{}, "value")

	isCtx := mock.MatchedBy(func(c context.Context) bool {
		return c.Value(ctxKey{}) == "value"
	})
	s.driver.On("Navigate", isCtx, "foo123.html").Return(nil)
	s.driver.On("Title", isCtx).Return("Foo 123", nil)
	s.driver.On("Element", isCtx, mock.Anything).Return("not_null", nil)

	p := pageobject.New(s.driver, fooPage)
	s.Same(p, p.Context(p.GetContext()))

	withCtx := p.Context(ctx)
	s.NotSame(p, withCtx)
	withCtx.MustLoad()

	withOption := pageobject.New(s.driver, fooPage, pageobject.WithContext(ctx))
	withOption.MustLoad()

	s.driver.AssertNumberOfCalls(s.T(), "Navigate", 2)
}

func (s *S) TestTimeout() {
	p := pageobject.New(s.driver, fooPage).Timeout(time.Minute)
	_, has := p.GetContext().Deadline()
	s.True(has)

	p.CancelTimeout()
	s.Error(p.GetContext().Err())

	// cancel is a no-op without timeout
	pageobject.New(s.driver, fooPage).CancelTimeout()
}

func (s *S) TestTrace() {
	s.stubLoadable()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p := pageobject.New(s.driver, fooPage, pageobject.WithLogger(logger),
		pageobject.WithPreConditions(func(*pageobject.PageObject) error { return nil }),
	)
	p.MustLoad()

	traces := []string{}
	loadID := hook.AllEntries()[0].Data["load_id"]
	for _, e := range hook.AllEntries() {
		traces = append(traces, e.Data["trace"].(string)+" "+e.Message)
		s.Equal(loadID, e.Data["load_id"])
	}

	s.Equal([]string{
		"hook pre-conditions",
		"navigate foo123.html",
		"title Foo 123",
		"locator fieldOne",
		"locator fieldTwo",
		"locator fieldThree",
	}, traces)
	s.Equal(true, hook.LastEntry().Data["found"])
}

func (s *S) TestTraceMapConditionsHook() {
	s.stubLoadable()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p := pageobject.New(s.driver, fooPage, pageobject.WithLogger(logger),
		pageobject.WithMapConditions(func(p *pageobject.PageObject) error {
			return p.AssertMapConditions()
		}),
	)
	p.MustLoad()

	entries := hook.AllEntries()
	s.Require().Len(entries, 6)

	loadID := entries[0].Data["load_id"]
	s.NotEmpty(loadID)
	for _, e := range entries {
		s.Equal(loadID, e.Data["load_id"], e.Message)
	}
	s.Equal("locator", hook.LastEntry().Data["trace"])

	// outside of Load there is no load id
	hook.Reset()
	s.Require().NoError(p.AssertMapConditions())
	s.NotContains(hook.LastEntry().Data, "load_id")
}
