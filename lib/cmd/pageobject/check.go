package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-rod/pageobject"
	"github.com/go-rod/pageobject/lib/defaults"
	"github.com/go-rod/pageobject/lib/drivers"
	"github.com/go-rod/pageobject/lib/manifest"
	"github.com/go-rod/pageobject/lib/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// errCheckFailed is returned when any page fails to load
var errCheckFailed = errors.New("check failed")

type checkFlags struct {
	driver  string
	serve   string
	base    string
	timeout time.Duration
	trace   bool
}

func getCmdCheck() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check <manifest> [page...]",
		Short: "Load the pages of the manifest and report the failures",
		Long: `Load the pages of the manifest and report the failures.

  Each page is navigated to, its title is compared and every locator is resolved.
  If page names are given only those pages are checked. The relative page urls are
  resolved against --base, or the address of the --serve server.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, flags, args[0], args[1:])
		},
	}

	cmd.Flags().StringVarP(&flags.driver, "driver", "d", "", "the driver to use, defaults to the pageobject env var or rod")
	cmd.Flags().StringVar(&flags.serve, "serve", "", "serve the directory over http and use it as the base url")
	cmd.Flags().StringVar(&flags.base, "base", "", "the base url to resolve relative page urls")
	cmd.Flags().DurationVarP(&flags.timeout, "timeout", "t", 0, "timeout of the whole check, defaults to the timeout option of the pageobject env var")
	cmd.Flags().BoolVar(&flags.trace, "trace", false, "print the trace log of each step")

	return cmd
}

func selectPages(m *manifest.Manifest, names []string) ([]manifest.Page, error) {
	if len(names) == 0 {
		return m.Pages, nil
	}

	list := make([]manifest.Page, 0, len(names))
	for _, name := range names {
		p, has := m.Page(name)
		if !has {
			return nil, fmt.Errorf("%w: no such page %q in the manifest", pageobject.ErrInvalidArgument, name)
		}
		list = append(list, p)
	}
	return list, nil
}

func runCheck(cmd *cobra.Command, flags *checkFlags, path string, names []string) error {
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	pages, err := selectPages(m, names)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := flags.timeout
	if timeout == 0 {
		timeout = defaults.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	base := flags.base
	if base == "" {
		base = defaults.Base
	}
	if flags.serve != "" {
		u, close := utils.ServeDir("", flags.serve)
		defer close()
		base = u + "/"
	}

	// the static driver reads its base from the defaults
	prevBase := defaults.Base
	defaults.Base = base
	defer func() { defaults.Base = prevBase }()

	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	if flags.trace || defaults.Trace {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	d, err := drivers.Open(ctx, flags.driver, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.WithError(err).Warn("failed to close the driver")
		}
	}()

	out := cmd.OutOrStdout()
	failed := 0

	for _, page := range pages {
		u, err := resolve(base, page.URL)
		if err == nil {
			_, err = pageobject.New(d, page,
				pageobject.WithContext(ctx),
				pageobject.WithLogger(logger),
			).Load(u)
		}

		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %s %s\n", failColor.Sprint("FAIL"), nameColor.Sprint(page.Name), err)
			continue
		}
		fmt.Fprintf(out, "%s %s %s\n", passColor.Sprint("PASS"), nameColor.Sprint(page.Name), u)
	}

	fmt.Fprintf(out, "\n%d passed, %d failed\n", len(pages)-failed, failed)

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d pages", errCheckFailed, failed, len(pages))
	}
	return nil
}

// resolve the page url against the base, it returns the page url as it is when the base is empty
func resolve(base, ref string) (string, error) {
	if base == "" {
		return ref, nil
	}

	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base url: %v", pageobject.ErrInvalidArgument, err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: invalid page url: %v", pageobject.ErrInvalidArgument, err)
	}
	return b.ResolveReference(r).String(), nil
}
