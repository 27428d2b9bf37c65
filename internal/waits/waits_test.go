package waits

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelqa/staysuite/internal/browser"
	"github.com/travelqa/staysuite/internal/browser/browsertest"
)

func TestWaiter_VisibleImmediately(t *testing.T) {
	page := browsertest.NewPage(browsertest.E("div", "", browsertest.E("table", ".cal-month")))

	el, err := New(page).Visible(browser.Class("cal-month"), time.Second)
	require.NoError(t, err)
	require.NotNil(t, el)
}

func TestWaiter_VisibleAfterReveal(t *testing.T) {
	panel := browsertest.E("div", "#filter-panel")
	panel.Hidden = true
	page := browsertest.NewPage(browsertest.E("body", "", panel))

	go func() {
		time.Sleep(30 * time.Millisecond)
		page.Do(func(*browsertest.Node) { panel.Hidden = false })
	}()

	start := time.Now()
	el, err := New(page).WithPoll(5*time.Millisecond).Visible(browser.ID("filter-panel"), time.Second)
	require.NoError(t, err)
	require.NotNil(t, el)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestWaiter_Timeout(t *testing.T) {
	page := browsertest.NewPage(browsertest.E("body", ""))

	_, err := New(page).WithPoll(5*time.Millisecond).Visible(browser.ID("missing"), 40*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, browser.ErrNoSuchElement)

	var te *TimeoutError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, browser.ID("missing"), te.Locator)
	assert.Equal(t, "visible", te.Condition)
}

func TestWaiter_ClickableRequiresEnabled(t *testing.T) {
	btn := browsertest.T("button", "Search")
	btn.ID = "search"
	btn.Disabled = true
	page := browsertest.NewPage(browsertest.E("form", "", btn))
	w := New(page).WithPoll(5 * time.Millisecond)

	_, err := w.Clickable(browser.ID("search"), 30*time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)

	// visibility alone is enough for Visible
	_, err = w.Visible(browser.ID("search"), 30*time.Millisecond)
	assert.NoError(t, err)

	page.Do(func(*browsertest.Node) { btn.Disabled = false })
	_, err = w.Clickable(browser.ID("search"), 30*time.Millisecond)
	assert.NoError(t, err)
}

func TestWaiter_FluentToleratesAbsence(t *testing.T) {
	root := browsertest.E("body", "")
	page := browsertest.NewPage(root)

	go func() {
		time.Sleep(20 * time.Millisecond)
		page.Do(func(r *browsertest.Node) {
			r.Children = append(r.Children, browsertest.E("div", "#late"))
		})
	}()

	el, err := New(page).Fluent(browser.ID("late"), time.Second, 2*time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, el)
}

func TestWaiter_HardErrorsAbort(t *testing.T) {
	page := browsertest.NewPage(browsertest.E("body", ""))
	require.NoError(t, page.Close())

	start := time.Now()
	_, err := New(page).Visible(browser.ID("x"), 5*time.Second)
	assert.ErrorIs(t, err, browser.ErrSessionClosed)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
}
