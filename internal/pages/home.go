package pages

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/travelqa/staysuite/internal/browser"
	"github.com/travelqa/staysuite/internal/waits"
)

// Wait budgets used by the page objects
const (
	DefaultTimeout  = 10 * time.Second
	ResultsTimeout  = 15 * time.Second
	RerenderTimeout = 25 * time.Second
)

// DefaultSettleDelay gives the calendar time to re-render after paging to
// the next month. The page offers no signal to wait on instead.
const DefaultSettleDelay = 150 * time.Millisecond

// Home drives the landing page's location, date and room controls
type Home struct {
	waits  *waits.Waiter
	log    logrus.FieldLogger
	now    func() time.Time
	settle time.Duration
}

// HomeOption customises a Home page object
type HomeOption func(*Home)

// WithClock replaces time.Now for the check-in/check-out day rule
func WithClock(now func() time.Time) HomeOption {
	return func(h *Home) { h.now = now }
}

// WithSettleDelay overrides DefaultSettleDelay
func WithSettleDelay(d time.Duration) HomeOption {
	return func(h *Home) { h.settle = d }
}

// WithHomeLogger sets the logger for diagnostics
func WithHomeLogger(l logrus.FieldLogger) HomeOption {
	return func(h *Home) { h.log = l }
}

// WithHomeWaiter replaces the default waiter, mostly to shorten polling in tests
func WithHomeWaiter(w *waits.Waiter) HomeOption {
	return func(h *Home) { h.waits = w }
}

// NewHome binds the landing page object to sess
func NewHome(sess browser.Session, opts ...HomeOption) *Home {
	h := &Home{
		waits:  waits.New(sess),
		log:    logrus.StandardLogger(),
		now:    time.Now,
		settle: DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// EnterLocation types text into the location field and picks the matching
// autocomplete suggestion. It reports whether a suggestion was clicked.
func (h *Home) EnterLocation(text string) (bool, error) {
	field, err := h.waits.Visible(LocationField, DefaultTimeout)
	if err != nil {
		return false, fmt.Errorf("location field: %w", err)
	}
	if err := field.Click(); err != nil {
		return false, fmt.Errorf("failed to focus location field: %w", err)
	}
	if err := field.Clear(); err != nil {
		return false, fmt.Errorf("failed to clear location field: %w", err)
	}
	if err := field.SendKeys(text); err != nil {
		return false, fmt.Errorf("failed to type location: %w", err)
	}
	return h.SelectDropdownOption(text)
}

// SelectDropdownOption clicks the first suggestion, top to bottom, having
// any span whose text contains text case-insensitively.
func (h *Home) SelectDropdownOption(text string) (bool, error) {
	container, err := h.waits.Visible(LocationSuggestions, DefaultTimeout)
	if err != nil {
		return false, fmt.Errorf("location suggestions: %w", err)
	}
	list, err := container.FindElement(tagUL)
	if err != nil {
		return false, fmt.Errorf("location suggestions: %w", err)
	}
	items, err := list.FindElements(tagLI)
	if err != nil {
		return false, fmt.Errorf("location suggestions: %w", err)
	}

	want := strings.ToLower(text)
	for _, item := range items {
		spans, err := item.FindElements(tagSpan)
		if err != nil {
			return false, fmt.Errorf("location suggestion spans: %w", err)
		}
		for _, span := range spans {
			got, err := span.Text()
			if err != nil {
				return false, fmt.Errorf("location suggestion text: %w", err)
			}
			if strings.Contains(strings.ToLower(got), want) {
				if err := item.Click(); err != nil {
					return false, fmt.Errorf("failed to pick suggestion %q: %w", got, err)
				}
				h.log.WithField("location", text).Debug("Picked location suggestion")
				return true, nil
			}
		}
	}

	h.log.WithField("location", text).Warn("No location suggestion matched")
	return false, nil
}

// SelectCheckInDate clicks today's day cell, or tomorrow's after 18:59
func (h *Home) SelectCheckInDate() (bool, error) {
	return h.selectDay("check-in")
}

// SelectCheckOutDate pages the calendar monthsForward months ahead and
// then applies the check-in day rule.
func (h *Home) SelectCheckOutDate(monthsForward int) (bool, error) {
	for m := 0; m < monthsForward; m++ {
		next, err := h.waits.Visible(CalendarNext, DefaultTimeout)
		if err != nil {
			return false, fmt.Errorf("calendar next month: %w", err)
		}
		shown, err := next.IsDisplayed()
		if err != nil {
			return false, fmt.Errorf("calendar next month: %w", err)
		}
		if !shown {
			continue
		}
		if err := next.Click(); err != nil {
			return false, fmt.Errorf("failed to page calendar: %w", err)
		}
		time.Sleep(h.settle)
	}
	return h.selectDay("check-out")
}

func (h *Home) selectDay(which string) (bool, error) {
	table, err := h.waits.Visible(CalendarMonth, DefaultTimeout)
	if err != nil {
		return false, fmt.Errorf("%s calendar: %w", which, err)
	}
	cells, err := table.FindElements(tagTD)
	if err != nil {
		return false, fmt.Errorf("%s calendar cells: %w", which, err)
	}

	day := TargetDay(h.now())
	for _, cell := range cells {
		got, err := cell.Text()
		if err != nil {
			return false, fmt.Errorf("%s calendar cell: %w", which, err)
		}
		if got == day {
			if err := cell.Click(); err != nil {
				return false, fmt.Errorf("failed to pick %s day %s: %w", which, day, err)
			}
			return true, nil
		}
	}

	h.log.WithFields(logrus.Fields{"date": which, "day": day}).Warn("Day not shown in the current month")
	return false, nil
}

// TargetDay returns the day-of-month label to pick: today's, unless the
// hour is past 18, in which case tomorrow's.
func TargetDay(now time.Time) string {
	if now.Hour() > 18 {
		now = now.AddDate(0, 0, 1)
	}
	return strconv.Itoa(now.Day())
}

// SelectRoomSize clicks the room menu entry whose trimmed text equals
// description, ignoring case.
func (h *Home) SelectRoomSize(description string) (bool, error) {
	menu, err := h.waits.Visible(RoomMenu, DefaultTimeout)
	if err != nil {
		return false, fmt.Errorf("room menu: %w", err)
	}
	options, err := menu.FindElements(tagLI)
	if err != nil {
		return false, fmt.Errorf("room menu options: %w", err)
	}

	want := strings.TrimSpace(description)
	for _, opt := range options {
		got, err := opt.Text()
		if err != nil {
			return false, fmt.Errorf("room menu option: %w", err)
		}
		if strings.EqualFold(strings.TrimSpace(got), want) {
			if err := opt.Click(); err != nil {
				return false, fmt.Errorf("failed to pick room size %q: %w", description, err)
			}
			return true, nil
		}
	}

	h.log.WithField("room", description).Warn("Room size not offered")
	return false, nil
}

// ClickSearch clicks the search button when it is visible and enabled
func (h *Home) ClickSearch() (bool, error) {
	btn, err := h.waits.Visible(SearchButton, DefaultTimeout)
	if err != nil {
		return false, fmt.Errorf("search button: %w", err)
	}
	shown, err := btn.IsDisplayed()
	if err != nil {
		return false, fmt.Errorf("search button: %w", err)
	}
	enabled, err := btn.IsEnabled()
	if err != nil {
		return false, fmt.Errorf("search button: %w", err)
	}
	if !shown || !enabled {
		return false, nil
	}
	if err := btn.Click(); err != nil {
		return false, fmt.Errorf("failed to click search: %w", err)
	}
	return true, nil
}
