// Package waits blocks a journey until an element reaches a state, polling
// the browser session the way WebDriver's explicit and fluent waits do.
package waits

import (
	"errors"
	"fmt"
	"time"

	"github.com/travelqa/staysuite/internal/browser"
)

// DefaultPoll matches WebDriver's explicit-wait polling interval
const DefaultPoll = 500 * time.Millisecond

// ErrTimeout is matched by every *TimeoutError
var ErrTimeout = errors.New("wait timed out")

// TimeoutError reports a condition that did not hold within its budget
type TimeoutError struct {
	Locator   browser.By
	Condition string
	Timeout   time.Duration
	// Last is the most recent transient error seen while polling, if any
	Last error
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s waiting for %s to be %s", e.Timeout, e.Locator, e.Condition)
	if e.Last != nil {
		msg += ": " + e.Last.Error()
	}
	return msg
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

func (e *TimeoutError) Unwrap() error { return e.Last }

// Waiter polls a single session
type Waiter struct {
	sess browser.Session
	poll time.Duration
}

// New returns a Waiter polling sess every DefaultPoll
func New(sess browser.Session) *Waiter {
	return &Waiter{sess: sess, poll: DefaultPoll}
}

// WithPoll returns a copy of w polling at the given interval
func (w *Waiter) WithPoll(poll time.Duration) *Waiter {
	cp := *w
	if poll > 0 {
		cp.poll = poll
	}
	return &cp
}

// Visible blocks until an element matching by is present and displayed
func (w *Waiter) Visible(by browser.By, timeout time.Duration) (browser.Element, error) {
	return w.until(by, "visible", timeout, w.poll, isVisible)
}

// Clickable blocks until an element matching by is displayed and enabled
func (w *Waiter) Clickable(by browser.By, timeout time.Duration) (browser.Element, error) {
	return w.until(by, "clickable", timeout, w.poll, isClickable)
}

// Fluent behaves like Visible but polls at an explicit interval
func (w *Waiter) Fluent(by browser.By, timeout, poll time.Duration) (browser.Element, error) {
	if poll <= 0 {
		poll = w.poll
	}
	return w.until(by, "visible", timeout, poll, isVisible)
}

func isVisible(el browser.Element) (bool, error) {
	return el.IsDisplayed()
}

func isClickable(el browser.Element) (bool, error) {
	shown, err := el.IsDisplayed()
	if err != nil || !shown {
		return false, err
	}
	return el.IsEnabled()
}

// until evaluates cond at least once, then every poll until it holds or
// timeout elapses. Absent and stale elements count as "not yet"; any
// other error ends the wait.
func (w *Waiter) until(by browser.By, condition string, timeout, poll time.Duration, cond func(browser.Element) (bool, error)) (browser.Element, error) {
	deadline := time.Now().Add(timeout)
	var last error
	for {
		el, err := w.sess.FindElement(by)
		if err == nil {
			var ok bool
			ok, err = cond(el)
			if err == nil && ok {
				return el, nil
			}
		}
		if err != nil {
			if !transient(err) {
				return nil, fmt.Errorf("waiting for %s to be %s: %w", by, condition, err)
			}
			last = err
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, &TimeoutError{Locator: by, Condition: condition, Timeout: timeout, Last: last}
		}
		time.Sleep(min(poll, remaining))
	}
}

func transient(err error) bool {
	return errors.Is(err, browser.ErrNoSuchElement) || errors.Is(err, browser.ErrStaleElement)
}
