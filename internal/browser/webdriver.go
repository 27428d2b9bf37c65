package browser

import (
	"errors"
	"fmt"

	"github.com/tebeka/selenium"
)

// webDriverSession talks to a remote WebDriver endpoint (chromedriver,
// geckodriver or a Selenium grid).
type webDriverSession struct {
	wd selenium.WebDriver
}

func openWebDriver(opts Options) (Session, error) {
	caps := selenium.Capabilities{"browserName": opts.Browser}
	if opts.Headless {
		switch opts.Browser {
		case Chrome:
			caps["goog:chromeOptions"] = map[string]interface{}{"args": []string{"--headless=new"}}
		case Firefox:
			caps["moz:firefoxOptions"] = map[string]interface{}{"args": []string{"-headless"}}
		}
	}

	wd, err := selenium.NewRemote(caps, opts.WebDriverURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open webdriver session at %s: %w", opts.WebDriverURL, err)
	}

	if err := wd.SetImplicitWaitTimeout(opts.ImplicitWait); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to set implicit wait: %w", err), wd.Quit())
	}
	if opts.Maximize {
		if err := wd.MaximizeWindow(""); err != nil {
			return nil, errors.Join(fmt.Errorf("failed to maximize window: %w", err), wd.Quit())
		}
	}

	return &webDriverSession{wd: wd}, nil
}

func (s *webDriverSession) Navigate(url string) error {
	if s.wd == nil {
		return ErrSessionClosed
	}
	if err := s.wd.Get(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (s *webDriverSession) FindElement(by By) (Element, error) {
	if s.wd == nil {
		return nil, ErrSessionClosed
	}
	strategy, value, err := by.webDriver()
	if err != nil {
		return nil, err
	}
	el, err := s.wd.FindElement(strategy, value)
	if err != nil {
		return nil, translateWebDriverError(err, by)
	}
	return &webDriverElement{el: el}, nil
}

func (s *webDriverSession) FindElements(by By) ([]Element, error) {
	if s.wd == nil {
		return nil, ErrSessionClosed
	}
	strategy, value, err := by.webDriver()
	if err != nil {
		return nil, err
	}
	els, err := s.wd.FindElements(strategy, value)
	if err != nil {
		return nil, translateWebDriverError(err, by)
	}
	return wrapWebElements(els), nil
}

func (s *webDriverSession) Close() error {
	if s.wd == nil {
		return nil
	}
	err := s.wd.Quit()
	s.wd = nil
	if err != nil {
		return fmt.Errorf("failed to quit webdriver session: %w", err)
	}
	return nil
}

type webDriverElement struct {
	el selenium.WebElement
}

func wrapWebElements(els []selenium.WebElement) []Element {
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, &webDriverElement{el: el})
	}
	return out
}

func (e *webDriverElement) Text() (string, error) {
	text, err := e.el.Text()
	return text, translateWebDriverError(err, By{})
}

func (e *webDriverElement) Click() error {
	return translateWebDriverError(e.el.Click(), By{})
}

func (e *webDriverElement) Clear() error {
	return translateWebDriverError(e.el.Clear(), By{})
}

func (e *webDriverElement) SendKeys(text string) error {
	return translateWebDriverError(e.el.SendKeys(text), By{})
}

func (e *webDriverElement) IsDisplayed() (bool, error) {
	ok, err := e.el.IsDisplayed()
	return ok, translateWebDriverError(err, By{})
}

func (e *webDriverElement) IsEnabled() (bool, error) {
	ok, err := e.el.IsEnabled()
	return ok, translateWebDriverError(err, By{})
}

func (e *webDriverElement) FindElement(by By) (Element, error) {
	strategy, value, err := by.webDriver()
	if err != nil {
		return nil, err
	}
	el, err := e.el.FindElement(strategy, value)
	if err != nil {
		return nil, translateWebDriverError(err, by)
	}
	return &webDriverElement{el: el}, nil
}

func (e *webDriverElement) FindElements(by By) ([]Element, error) {
	strategy, value, err := by.webDriver()
	if err != nil {
		return nil, err
	}
	els, err := e.el.FindElements(strategy, value)
	if err != nil {
		return nil, translateWebDriverError(err, by)
	}
	return wrapWebElements(els), nil
}

// webDriver maps the locator onto a W3C location strategy
func (b By) webDriver() (string, string, error) {
	if err := b.Validate(); err != nil {
		return "", "", err
	}
	switch b.Kind {
	case KindID:
		return selenium.ByID, b.Value, nil
	case KindClass:
		return selenium.ByClassName, b.Value, nil
	case KindTag:
		return selenium.ByTagName, b.Value, nil
	case KindXPath:
		return selenium.ByXPATH, b.Value, nil
	default:
		return selenium.ByCSSSelector, b.Value, nil
	}
}

// translateWebDriverError maps W3C error codes onto the package sentinels
func translateWebDriverError(err error, by By) error {
	if err == nil {
		return nil
	}
	var wdErr *selenium.Error
	if errors.As(err, &wdErr) {
		switch wdErr.Err {
		case "no such element":
			if by.Kind == "" {
				return fmt.Errorf("%w: %v", ErrNoSuchElement, err)
			}
			return fmt.Errorf("%w: %s", ErrNoSuchElement, by)
		case "stale element reference":
			return fmt.Errorf("%w: %v", ErrStaleElement, err)
		}
	}
	return err
}
