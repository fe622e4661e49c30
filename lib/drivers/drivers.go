// Package drivers opens a pageobject.Driver by name, the options of the drivers are
// read from the defaults package.
package drivers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-rod/pageobject"
	"github.com/go-rod/pageobject/lib/defaults"
	"github.com/go-rod/pageobject/lib/drivers/cdpdriver"
	"github.com/go-rod/pageobject/lib/drivers/pwdriver"
	"github.com/go-rod/pageobject/lib/drivers/roddriver"
	"github.com/go-rod/pageobject/lib/drivers/static"
	"github.com/go-rod/pageobject/lib/drivers/wddriver"
	"github.com/sirupsen/logrus"
)

// Driver that holds resources which should be released by Close
type Driver interface {
	pageobject.Driver
	Close() error
}

var launchPlaywright = func(install bool) (Driver, error) {
	d, err := pwdriver.Launch(install)
	if err != nil {
		return nil, err
	}
	return d, nil
}

type opener func(ctx context.Context, logger logrus.FieldLogger) (Driver, error)

var openers = map[string]opener{
	"rod": func(ctx context.Context, _ logrus.FieldLogger) (Driver, error) {
		d, err := roddriver.Launch(ctx)
		if err != nil {
			return nil, err
		}
		return d, nil
	},
	"chromedp": func(ctx context.Context, logger logrus.FieldLogger) (Driver, error) {
		d, err := cdpdriver.Launch(ctx, logger)
		if err != nil {
			return nil, err
		}
		return d, nil
	},
	"playwright": func(ctx context.Context, _ logrus.FieldLogger) (Driver, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return launchPlaywright(defaults.Install)
	},
	"selenium": func(ctx context.Context, _ logrus.FieldLogger) (Driver, error) {
		d, err := wddriver.Launch(ctx)
		if err != nil {
			return nil, err
		}
		return d, nil
	},
	"static": func(context.Context, logrus.FieldLogger) (Driver, error) {
		d, err := static.New(nil, defaults.Base)
		if err != nil {
			return nil, err
		}
		return nopCloser{d}, nil
	},
}

// Names of the available drivers
func Names() []string {
	list := make([]string, 0, len(openers))
	for name := range openers {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// Open the driver by name, if name is empty defaults.Driver will be used
func Open(ctx context.Context, name string, logger logrus.FieldLogger) (Driver, error) {
	if name == "" {
		name = defaults.Driver
	}

	open, has := openers[name]
	if !has {
		return nil, fmt.Errorf("%w: unknown driver %q, available drivers: %s",
			pageobject.ErrInvalidArgument, name, strings.Join(Names(), ", "))
	}

	logger.WithField("driver", name).Debug("open driver")

	return open(ctx, logger)
}

type nopCloser struct {
	*static.Driver
}

func (nopCloser) Close() error {
	return nil
}
