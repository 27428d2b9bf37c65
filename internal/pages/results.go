package pages

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/travelqa/staysuite/internal/browser"
	"github.com/travelqa/staysuite/internal/waits"
)

// Results drives the hotel list and its filter toolbar
type Results struct {
	waits *waits.Waiter
	log   logrus.FieldLogger
}

// ResultsOption customises a Results page object
type ResultsOption func(*Results)

// WithResultsLogger sets the logger for diagnostics
func WithResultsLogger(l logrus.FieldLogger) ResultsOption {
	return func(r *Results) { r.log = l }
}

// WithResultsWaiter replaces the default waiter
func WithResultsWaiter(w *waits.Waiter) ResultsOption {
	return func(r *Results) { r.waits = w }
}

// NewResults binds the results page object to sess
func NewResults(sess browser.Session, opts ...ResultsOption) *Results {
	r := &Results{
		waits: waits.New(sess),
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ListResults returns the non-blank hotel names currently rendered, in page
// order. Every call reads the live page.
func (r *Results) ListResults() ([]string, error) {
	container, err := r.waits.Visible(ResultsContainer, ResultsTimeout)
	if err != nil {
		return nil, fmt.Errorf("results: %w", err)
	}
	cards, err := container.FindElements(ResultCard)
	if err != nil {
		return nil, fmt.Errorf("result cards: %w", err)
	}

	names := make([]string, 0, len(cards))
	for _, card := range cards {
		heading, err := card.FindElement(tagH3)
		if err != nil {
			return nil, fmt.Errorf("result card heading: %w", err)
		}
		name, err := heading.Text()
		if err != nil {
			return nil, fmt.Errorf("result card heading: %w", err)
		}
		if strings.TrimSpace(name) == "" {
			continue
		}
		r.log.WithField("hotel", name).Info("Listed")
		names = append(names, name)
	}
	return names, nil
}

// HotelInResults reports whether any listed name contains name. filterLabel
// is only used in the diagnostic line.
func (r *Results) HotelInResults(name, filterLabel string) (bool, error) {
	names, err := r.ListResults()
	if err != nil {
		return false, err
	}

	found := false
	for _, listed := range names {
		if strings.Contains(listed, name) {
			found = true
			break
		}
	}

	r.log.WithFields(logrus.Fields{
		"hotel":  name,
		"filter": filterLabel,
		"listed": found,
	}).Info("Checked hotel against results")
	return found, nil
}

// ApplyFilter opens the filter selector, types filterName and picks the
// matching suggestion. It succeeds only when both the selector opened and
// the suggestion was confirmed; the text is typed either way.
func (r *Results) ApplyFilter(filterName string) (bool, error) {
	opened, err := r.openSelector()
	if err != nil {
		return false, err
	}

	input, err := r.waits.Visible(FilterInput, DefaultTimeout)
	if err != nil {
		return false, fmt.Errorf("filter input: %w", err)
	}
	if err := input.SendKeys(filterName); err != nil {
		return false, fmt.Errorf("failed to type filter %q: %w", filterName, err)
	}

	picked, err := r.clickInContainer(FilterSuggestions, tagLI, filterName, LostFocus)
	if err != nil {
		return false, err
	}

	r.log.WithFields(logrus.Fields{
		"filter":  filterName,
		"opened":  opened,
		"applied": picked,
	}).Info("Applied filter")
	return opened && picked, nil
}

// openSelector clicks the toolbar's "Select" span. Only the first span
// carrying that label is considered.
func (r *Results) openSelector() (bool, error) {
	spans, err := r.toolbarSpans()
	if err != nil {
		return false, err
	}
	for _, span := range spans {
		text, err := span.Text()
		if err != nil {
			return false, fmt.Errorf("filter toolbar: %w", err)
		}
		if !strings.EqualFold(text, SelectLabel) {
			continue
		}
		shown, err := span.IsDisplayed()
		if err != nil {
			return false, fmt.Errorf("filter selector: %w", err)
		}
		if !shown {
			return false, nil
		}
		if err := span.Click(); err != nil {
			return false, fmt.Errorf("failed to open filter selector: %w", err)
		}
		return true, nil
	}
	return false, nil
}

func (r *Results) toolbarSpans() ([]browser.Element, error) {
	toolbar, err := r.waits.Visible(FilterToolbar, DefaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("filter toolbar: %w", err)
	}
	spans, err := toolbar.FindElements(tagSpan)
	if err != nil {
		return nil, fmt.Errorf("filter toolbar: %w", err)
	}
	return spans, nil
}

// IsFilterApplied reports whether the toolbar shows the "(1) Filter" badge
func (r *Results) IsFilterApplied() (bool, error) {
	spans, err := r.toolbarSpans()
	if err != nil {
		return false, err
	}
	for _, span := range spans {
		text, err := span.Text()
		if err != nil {
			return false, fmt.Errorf("filter toolbar: %w", err)
		}
		if strings.EqualFold(strings.TrimSpace(text), FilterAppliedLabel) {
			r.log.Debug("Filter is applied")
			return true, nil
		}
	}
	return false, nil
}

// ClearFilter resets the active filter. It does nothing and returns false
// when no filter is applied.
func (r *Results) ClearFilter() (bool, error) {
	applied, err := r.IsFilterApplied()
	if err != nil || !applied {
		return false, err
	}

	if _, err := r.clickInContainer(FilterToolbar, tagSpan, FilterAppliedLabel, FilterReset); err != nil {
		return false, err
	}
	blur, err := r.waits.Visible(LostFocus, DefaultTimeout)
	if err != nil {
		return false, fmt.Errorf("lost-focus control: %w", err)
	}
	if err := blur.Click(); err != nil {
		return false, fmt.Errorf("failed to leave filter panel: %w", err)
	}

	r.log.Info("Filter reset")
	return true, nil
}

// clickInContainer clicks the first item inside container whose text equals
// text, then the follow-up action, and waits for the results to render
// again. Only the first exact match is considered.
func (r *Results) clickInContainer(container, item browser.By, text string, action browser.By) (bool, error) {
	box, err := r.waits.Visible(container, DefaultTimeout)
	if err != nil {
		return false, fmt.Errorf("container %s: %w", container, err)
	}
	items, err := box.FindElements(item)
	if err != nil {
		return false, fmt.Errorf("container %s: %w", container, err)
	}

	for _, it := range items {
		got, err := it.Text()
		if err != nil {
			return false, fmt.Errorf("container %s item: %w", container, err)
		}
		if got != text {
			continue
		}

		shown, err := it.IsDisplayed()
		if err != nil || !shown {
			return false, err
		}
		if err := it.Click(); err != nil {
			return false, fmt.Errorf("failed to click %q: %w", text, err)
		}

		act, err := r.waits.Visible(action, DefaultTimeout)
		if err != nil {
			return false, fmt.Errorf("action %s: %w", action, err)
		}
		shown, err = act.IsDisplayed()
		if err != nil {
			return false, fmt.Errorf("action %s: %w", action, err)
		}
		enabled, err := act.IsEnabled()
		if err != nil {
			return false, fmt.Errorf("action %s: %w", action, err)
		}
		if !shown || !enabled {
			return false, nil
		}
		if err := act.Click(); err != nil {
			return false, fmt.Errorf("failed to click %s: %w", action, err)
		}

		if _, err := r.waits.Visible(ResultsContainer, RerenderTimeout); err != nil {
			return false, fmt.Errorf("results after %q: %w", text, err)
		}
		return true, nil
	}
	return false, nil
}
