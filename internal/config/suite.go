package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/travelqa/staysuite/internal/browser"
)

// DefaultPropertiesFile is read when no other properties file is named
const DefaultPropertiesFile = "global.properties"

// EnvPrefix is prepended to an upper-cased property name to override it
// from the environment, e.g. STAYSUITE_URL overrides url.
const EnvPrefix = "STAYSUITE_"

// Browser and driver errors are the browser package sentinels, wrapped
var (
	ErrMissingURL       = errors.New("url is required")
	ErrInvalidLogFormat = errors.New("unsupported log format")
)

// SuiteConfig holds the options a journey run is started with
type SuiteConfig struct {
	Browser      string
	URL          string
	Headless     bool
	Driver       string
	WebDriverURL string
	LogLevel     logrus.Level
	LogFormat    string

	// InstallDriver fetches the Playwright driver before each run
	InstallDriver bool
}

// ReadProperties parses a key=value properties file. A missing file yields
// no properties rather than an error.
func ReadProperties(path string) (map[string]string, error) {
	props, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read properties %s: %w", path, err)
	}
	return props, nil
}

// Lookup resolves a property name, preferring the STAYSUITE_ environment
// override over the properties file.
func Lookup(props map[string]string, getenv func(string) string) func(string) string {
	return func(key string) string {
		if v := getenv(EnvPrefix + strings.ToUpper(key)); v != "" {
			return v
		}
		return props[key]
	}
}

// LoadSuiteConfig loads the suite configuration. lookup is keyed by
// property name (browser, url, ...), typically built with Lookup.
func LoadSuiteConfig(lookup func(string) string) (*SuiteConfig, error) {
	config := &SuiteConfig{
		URL:           strings.TrimSpace(lookup("url")),
		Headless:      true,
		LogLevel:      logrus.InfoLevel,
		LogFormat:     strings.ToLower(strings.TrimSpace(lookup("log_format"))),
		InstallDriver: true,
	}

	if config.URL == "" {
		return nil, ErrMissingURL
	}

	opts, err := browser.Options{
		Browser:      lookup("browser"),
		URL:          config.URL,
		Backend:      lookup("driver"),
		WebDriverURL: strings.TrimSpace(lookup("webdriver_url")),
	}.Normalize()
	if err != nil {
		return nil, fmt.Errorf("invalid browser settings: %w", err)
	}
	config.Browser = opts.Browser
	config.Driver = opts.Backend
	config.WebDriverURL = opts.WebDriverURL

	if v := strings.TrimSpace(lookup("headless")); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("headless must be a boolean, got %q", v)
		}
		config.Headless = headless
	}

	if v := strings.TrimSpace(lookup("install_driver")); v != "" {
		install, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("install_driver must be a boolean, got %q", v)
		}
		config.InstallDriver = install
	}

	if v := strings.TrimSpace(lookup("log_level")); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("log_level: %w", err)
		}
		config.LogLevel = level
	}

	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
	if config.LogFormat != "text" && config.LogFormat != "json" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.LogFormat)
	}

	return config, nil
}

// BrowserOptions converts the configuration into session options
func (c *SuiteConfig) BrowserOptions() browser.Options {
	return browser.Options{
		Browser:      c.Browser,
		URL:          c.URL,
		ImplicitWait: browser.DefaultImplicitWait,
		Maximize:     true,
		Headless:     c.Headless,
		Backend:      c.Driver,
		WebDriverURL: c.WebDriverURL,

		InstallDriver: c.InstallDriver && c.Driver == browser.BackendPlaywright,
	}
}
