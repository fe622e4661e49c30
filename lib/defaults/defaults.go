// Package defaults holds some commonly used options parsed from env var "pageobject".
// Set them will set the default value of options used by pageobject and its drivers.
// Each value is separated by a ",", key and value are separated by "=",
// For example:
//
//	pageobject=show,trace,driver=rod
//
//	pageobject=driver=playwright,install
//
//	pageobject=trace,driver=static,base=http://127.0.0.1:8080,timeout=10s
package defaults

import (
	"os"
	"strings"
	"time"

	"github.com/go-rod/pageobject/lib/utils"
)

// Driver is the default driver name used by drivers.Open
var Driver string

// Trace enables the trace log of the load protocol
var Trace bool

// Show disables the headless mode of the browser drivers
var Show bool

// Slow is the slow motion delay of the drivers that support it
var Slow time.Duration

// Timeout is the default of the --timeout flag of "pageobject check", zero means no timeout
var Timeout time.Duration

// Bin is the browser or webdriver executable path
var Bin string

// URL of a remote control endpoint, such as the websocket debugger url of a browser,
// or the address of a webdriver server.
var URL string

// Install allows the drivers to download what they need, such as the browsers of playwright
var Install bool

// Base is the base url to resolve relative page urls, only used by the static driver
var Base string

// Parse the flags
func init() {
	ResetWithEnv()
}

// Reset all flags to their init values.
func Reset() {
	Driver = "rod"
	Trace = false
	Show = false
	Slow = 0
	Timeout = 0
	Bin = ""
	URL = ""
	Base = ""
	Install = false
}

// ResetWithEnv all flags by the value of the pageobject env var.
func ResetWithEnv() {
	Reset()
	Parse(os.Getenv("pageobject"))
}

// Parse options and set them globally, it panics on unknown options
func Parse(options string) {
	if options == "" {
		return
	}

	for _, f := range strings.Split(options, ",") {
		kv := strings.SplitN(f, "=", 2)
		rule, has := rules[kv[0]]
		if !has {
			panic("no such pageobject option: " + kv[0])
		}
		if len(kv) == 2 {
			rule(kv[1])
		} else {
			rule("")
		}
	}
}

func duration(v string) time.Duration {
	d, err := time.ParseDuration(v)
	utils.E(err)
	return d
}

var rules = map[string]func(string){
	"driver": func(v string) {
		Driver = v
	},
	"trace": func(string) {
		Trace = true
	},
	"show": func(string) {
		Show = true
	},
	"slow": func(v string) {
		Slow = duration(v)
	},
	"timeout": func(v string) {
		Timeout = duration(v)
	},
	"bin": func(v string) {
		Bin = v
	},
	"url": func(v string) {
		URL = v
	},
	"base": func(v string) {
		Base = v
	},
	"install": func(string) {
		Install = true
	},
}
