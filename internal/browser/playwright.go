package browser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// playwrightSession drives a single page of a Playwright browser context
type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

// playwrightRunOptions limits the driver download to the browser being launched
func playwrightRunOptions(opts Options) *playwright.RunOptions {
	name := "chromium"
	if opts.Browser == Firefox {
		name = "firefox"
	}
	return &playwright.RunOptions{Browsers: []string{name}}
}

func openPlaywright(opts Options) (Session, error) {
	runOpts := playwrightRunOptions(opts)
	if opts.InstallDriver {
		if err := playwright.Install(runOpts); err != nil {
			return nil, fmt.Errorf("failed to install playwright driver: %w", err)
		}
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	browserType := pw.Chromium
	if opts.Browser == Firefox {
		browserType = pw.Firefox
	} else if opts.Maximize {
		launch.Args = []string{"--start-maximized"}
	}

	b, err := browserType.Launch(launch)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to launch %s: %w", opts.Browser, err), pw.Stop())
	}

	// A maximized headed window sizes the page itself; headless and Firefox
	// windows have no screen to fill, so they get a full-HD viewport instead.
	ctxOpts := playwright.BrowserNewContextOptions{}
	if opts.Maximize {
		if opts.Browser == Chrome && !opts.Headless {
			ctxOpts.NoViewport = playwright.Bool(true)
		} else {
			ctxOpts.Viewport = &playwright.Size{Width: 1920, Height: 1080}
		}
	}

	bctx, err := b.NewContext(ctxOpts)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to create browser context: %w", err), b.Close(), pw.Stop())
	}
	bctx.SetDefaultTimeout(float64(opts.ImplicitWait.Milliseconds()))

	page, err := bctx.NewPage()
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to open page: %w", err), b.Close(), pw.Stop())
	}

	return &playwrightSession{pw: pw, browser: b, context: bctx, page: page}, nil
}

func (s *playwrightSession) Navigate(url string) error {
	if s.page == nil {
		return ErrSessionClosed
	}
	if _, err := s.page.Goto(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (s *playwrightSession) FindElement(by By) (Element, error) {
	if s.page == nil {
		return nil, ErrSessionClosed
	}
	if err := by.Validate(); err != nil {
		return nil, err
	}
	return firstLocator(s.page.Locator(by.selector()), by)
}

func (s *playwrightSession) FindElements(by By) ([]Element, error) {
	if s.page == nil {
		return nil, ErrSessionClosed
	}
	if err := by.Validate(); err != nil {
		return nil, err
	}
	return allLocators(s.page.Locator(by.selector()))
}

func (s *playwrightSession) Close() error {
	if s.pw == nil {
		return nil
	}
	var errs []error
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser context: %w", err))
		}
	}
	if err := s.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
	}
	if err := s.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
	}
	s.pw, s.browser, s.context, s.page = nil, nil, nil, nil
	return errors.Join(errs...)
}

// playwrightElement is a locator pinned to one match by position
type playwrightElement struct {
	loc playwright.Locator
}

func firstLocator(loc playwright.Locator, by By) (Element, error) {
	n, err := loc.Count()
	if err != nil {
		return nil, translatePlaywrightError(err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchElement, by)
	}
	return &playwrightElement{loc: loc.First()}, nil
}

func allLocators(loc playwright.Locator) ([]Element, error) {
	all, err := loc.All()
	if err != nil {
		return nil, translatePlaywrightError(err)
	}
	elems := make([]Element, 0, len(all))
	for _, l := range all {
		elems = append(elems, &playwrightElement{loc: l})
	}
	return elems, nil
}

// Text matches WebDriver getText, which reports nothing for hidden elements
func (e *playwrightElement) Text() (string, error) {
	visible, err := e.loc.IsVisible()
	if err != nil {
		return "", translatePlaywrightError(err)
	}
	if !visible {
		return "", nil
	}
	text, err := e.loc.InnerText()
	if err != nil {
		return "", translatePlaywrightError(err)
	}
	return strings.TrimSpace(text), nil
}

func (e *playwrightElement) Click() error {
	return translatePlaywrightError(e.loc.Click())
}

func (e *playwrightElement) Clear() error {
	return translatePlaywrightError(e.loc.Clear())
}

// SendKeys types key by key so the page sees input events as a user would
// produce them; Fill would replace the value in one step.
func (e *playwrightElement) SendKeys(text string) error {
	return translatePlaywrightError(e.loc.PressSequentially(text))
}

func (e *playwrightElement) IsDisplayed() (bool, error) {
	ok, err := e.loc.IsVisible()
	return ok, translatePlaywrightError(err)
}

func (e *playwrightElement) IsEnabled() (bool, error) {
	ok, err := e.loc.IsEnabled()
	return ok, translatePlaywrightError(err)
}

func (e *playwrightElement) FindElement(by By) (Element, error) {
	if err := by.Validate(); err != nil {
		return nil, err
	}
	return firstLocator(e.loc.Locator(by.selector()), by)
}

func (e *playwrightElement) FindElements(by By) ([]Element, error) {
	if err := by.Validate(); err != nil {
		return nil, err
	}
	return allLocators(e.loc.Locator(by.selector()))
}

// translatePlaywrightError maps "element went away" failures onto
// ErrStaleElement so waits can keep polling through a re-render.
func translatePlaywrightError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "not attached to the DOM") || strings.Contains(msg, "Execution context was destroyed") {
		return fmt.Errorf("%w: %v", ErrStaleElement, err)
	}
	return err
}
