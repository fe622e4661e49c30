// Package wddriver drives a browser through the WebDriver protocol with selenium.
// WebDriver calls have no context support, only the cancellation of the context is checked.
package wddriver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"time"

	"github.com/go-rod/pageobject"
	"github.com/go-rod/pageobject/lib/defaults"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/ysmood/leakless"
)

// Driver implements pageobject.Driver
type Driver struct {
	wd   selenium.WebDriver
	stop func() error
}

var _ pageobject.Driver = &Driver{}

// New driver that controls an existing session, Close won't quit the session.
func New(wd selenium.WebDriver) *Driver {
	return &Driver{wd: wd}
}

// Connect creates a chrome session on the webdriver server at the url prefix,
// such as "http://127.0.0.1:4444/wd/hub".
func Connect(urlPrefix string) (*Driver, error) {
	caps := selenium.Capabilities{"browserName": "chrome"}

	args := []string{"--no-first-run"}
	if !defaults.Show {
		args = append(args, "--headless=new")
	}
	caps.AddChrome(chrome.Capabilities{Args: args})

	wd, err := selenium.NewRemote(caps, urlPrefix)
	if err != nil {
		return nil, err
	}

	return &Driver{wd: wd, stop: func() error { return nil }}, nil
}

// Launch connects to defaults.URL if it's set, or starts a chromedriver then connects to it.
// defaults.Bin is the path of the chromedriver, if it's empty chromedriver will be searched in the PATH.
func Launch(ctx context.Context) (*Driver, error) {
	if defaults.URL != "" {
		return Connect(defaults.URL)
	}

	bin := defaults.Bin
	if bin == "" {
		var err error
		bin, err = exec.LookPath("chromedriver")
		if err != nil {
			return nil, err
		}
	}

	u, stop, err := StartService(ctx, bin, 0)
	if err != nil {
		return nil, err
	}

	d, err := Connect(u)
	if err != nil {
		_ = stop()
		return nil, err
	}
	d.stop = stop
	return d, nil
}

// StartService runs a webdriver server binary that accepts the "--port" flag, such as chromedriver.
// If port is 0 a free port will be used. It waits until the server is ready, then returns the
// url prefix of the server and the function to stop it. The process is guarded by leakless,
// so it won't outlive the current process.
func StartService(ctx context.Context, bin string, port int) (string, func() error, error) {
	if port == 0 {
		var err error
		port, err = freePort()
		if err != nil {
			return "", nil, err
		}
	}

	args := []string{fmt.Sprintf("--port=%d", port)}

	var cmd *exec.Cmd
	if leakless.Support() {
		cmd = leakless.New().Command(bin, args...)
	} else {
		cmd = exec.Command(bin, args...)
	}

	if err := cmd.Start(); err != nil {
		return "", nil, err
	}

	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	stop := func() error {
		_ = cmd.Process.Kill()
		<-exited
		return nil
	}

	u := fmt.Sprintf("http://127.0.0.1:%d", port)

	if err := waitReady(ctx, u+"/status", exited); err != nil {
		_ = stop()
		return "", nil, err
	}

	return u, stop, nil
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer func() { _ = l.Close() }()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// waitReady polls the status endpoint until it responds 200
func waitReady(ctx context.Context, u string, exited chan error) error {
	t := time.NewTicker(100 * time.Millisecond)
	defer t.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}

		res, err := http.DefaultClient.Do(req)
		if err == nil {
			_ = res.Body.Close()
			if res.StatusCode == http.StatusOK {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-exited:
			// keep it for the stop func
			exited <- err
			return fmt.Errorf("webdriver service exited: %v", err)
		case <-t.C:
		}
	}
}

// WebDriver session being driven
func (d *Driver) WebDriver() selenium.WebDriver {
	return d.wd
}

// Navigate to the url
func (d *Driver) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.wd.Get(url)
}

// Title of the current page
func (d *Driver) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.wd.Title()
}

// Element returns the first selenium.WebElement that matches the selector
func (d *Driver) Element(ctx context.Context, selector string) (pageobject.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	list, err := d.wd.FindElements(selenium.ByCSSSelector, selector)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// Close quits the session and stops the service if they are started by Connect or Launch
func (d *Driver) Close() error {
	if d.stop == nil {
		return nil
	}
	err := d.wd.Quit()
	if stopErr := d.stop(); err == nil {
		err = stopErr
	}
	return err
}
