package browser

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Errors reported by backends
var (
	ErrNoSuchElement       = errors.New("no such element")
	ErrStaleElement        = errors.New("stale element reference")
	ErrInvalidLocator      = errors.New("invalid locator")
	ErrUnsupportedBrowser  = errors.New("unsupported browser")
	ErrUnsupportedBackend  = errors.New("unsupported driver backend")
	ErrMissingWebDriverURL = errors.New("webdriver URL is required for the webdriver backend")
	ErrSessionClosed       = errors.New("session closed")
)

// Element is a handle to one element of the live page
type Element interface {
	// Text is the rendered text, trimmed; hidden elements have none
	Text() (string, error)
	Click() error
	Clear() error
	SendKeys(text string) error
	IsDisplayed() (bool, error)
	IsEnabled() (bool, error)
	FindElement(by By) (Element, error)
	FindElements(by By) ([]Element, error)
}

// Session owns one browser context. A session is used from a single
// goroutine; callers that want parallel journeys open one session each.
type Session interface {
	Navigate(url string) error
	FindElement(by By) (Element, error)
	FindElements(by By) ([]Element, error)
	Close() error
}

// Browser names accepted by Open
const (
	Chrome  = "chrome"
	Firefox = "firefox"
)

// Backend names accepted by Open
const (
	BackendPlaywright = "playwright"
	BackendWebDriver  = "webdriver"
)

// DefaultImplicitWait is applied to element actions when Options leaves it unset
const DefaultImplicitWait = 10 * time.Second

// Options configures a new session
type Options struct {
	Browser      string
	URL          string
	ImplicitWait time.Duration
	Maximize     bool
	Headless     bool
	Backend      string
	WebDriverURL string

	// InstallDriver downloads the Playwright driver and the selected browser
	// before starting it. Ignored by the webdriver backend.
	InstallDriver bool
}

// Normalize validates the options and fills defaults. Open runs it before
// any driver process is started.
func (o Options) Normalize() (Options, error) {
	o.Browser = strings.ToLower(strings.TrimSpace(o.Browser))
	if o.Browser == "" {
		o.Browser = Chrome
	}
	if o.Browser != Chrome && o.Browser != Firefox {
		return o, fmt.Errorf("%w: %s", ErrUnsupportedBrowser, o.Browser)
	}

	o.Backend = strings.ToLower(strings.TrimSpace(o.Backend))
	if o.Backend == "" {
		o.Backend = BackendPlaywright
	}
	switch o.Backend {
	case BackendPlaywright:
	case BackendWebDriver:
		if o.WebDriverURL == "" {
			return o, ErrMissingWebDriverURL
		}
	default:
		return o, fmt.Errorf("%w: %s", ErrUnsupportedBackend, o.Backend)
	}

	if o.URL == "" {
		return o, fmt.Errorf("target URL is required")
	}
	if o.ImplicitWait <= 0 {
		o.ImplicitWait = DefaultImplicitWait
	}
	return o, nil
}

// Open starts a browser with the selected backend, applies the window and
// timeout settings and navigates to opts.URL.
func Open(opts Options) (Session, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	var sess Session
	switch opts.Backend {
	case BackendWebDriver:
		sess, err = openWebDriver(opts)
	default:
		sess, err = openPlaywright(opts)
	}
	if err != nil {
		return nil, err
	}

	if err := sess.Navigate(opts.URL); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to open %s: %w", opts.URL, err), sess.Close())
	}
	return sess, nil
}
