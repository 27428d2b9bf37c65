package scenarios

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bt "github.com/travelqa/staysuite/internal/browser/browsertest"
	"github.com/travelqa/staysuite/internal/logging"
	"github.com/travelqa/staysuite/internal/pages"
	"github.com/travelqa/staysuite/internal/waits"
)

// fakeSite is a two-page in-memory travel site: submitting the landing
// form swaps in the results page. results runs inside click callbacks, so
// it registers paths with the page lock already held.
type fakeSite struct {
	page      *bt.Page
	amenities map[string][]string
	order     []string
	filter    string
	pending   string
	searched  bool
	room      string
}

func newFakeSite() *fakeSite {
	s := &fakeSite{
		amenities: map[string][]string{
			"The River Lee":            {"Spa", "Free WiFi"},
			"Cork International Hotel": {"Free WiFi"},
			"Jurys Inn Cork":           nil,
		},
		order: []string{"The River Lee", "Cork International Hotel", "Jurys Inn Cork"},
	}
	s.page = bt.NewPage(bt.E("body", ""))
	s.page.Replace(s.landing())
	return s
}

func (s *fakeSite) landing() *bt.Node {
	suggestions := bt.E("div", "#horus-suggestions", bt.E("ul", "",
		bt.E("li", "", bt.T("span", "Cork"), bt.T("span", "Ireland")),
	))
	suggestions.Hidden = true
	field := bt.E("input", "#horus-querytext")
	field.OnKeys = func(*bt.Page, *bt.Node) { suggestions.Hidden = false }

	var cells []*bt.Node
	for d := 1; d <= 31; d++ {
		cells = append(cells, bt.T("td", strconv.Itoa(d)))
	}
	next := bt.E("button", ".cal-btn-next")

	var rooms []*bt.Node
	for _, name := range []string{"Single room", "Double room"} {
		li := bt.T("li", name)
		li.OnClick = func(_ *bt.Page, n *bt.Node) { s.room = n.Text }
		rooms = append(rooms, li)
	}

	search := bt.T("button", "Search")
	search.OnClick = func(p *bt.Page, _ *bt.Node) {
		s.searched = true
		p.SetRootLocked(s.results())
	}
	s.page.Register(pages.SearchButton.Value, search)

	return bt.E("div", "#js-fullscreen-hero", bt.E("form", "",
		field, suggestions,
		bt.E("table", ".cal-month", bt.E("tr", "", cells...)), next,
		bt.E("div", "#roomtype-menu", bt.E("ul", "", rooms...)),
		search,
	))
}

func (s *fakeSite) results() *bt.Node {
	panel := bt.E("div", "#filter-panel")
	panel.Hidden = true

	var label *bt.Node
	if s.filter == "" {
		label = bt.T("span", "Select")
	} else {
		label = bt.T("span", "(1) Filter")
	}
	label.OnClick = func(*bt.Page, *bt.Node) { panel.Hidden = false }

	var options []*bt.Node
	for _, name := range []string{"Spa", "Free WiFi"} {
		li := bt.T("li", name)
		li.OnClick = func(_ *bt.Page, n *bt.Node) { s.pending = n.Text }
		options = append(options, li)
	}
	reset := bt.T("button", "Reset")
	reset.OnClick = func(p *bt.Page, _ *bt.Node) {
		s.filter, s.pending = "", ""
		p.SetRootLocked(s.results())
	}
	panel.Children = []*bt.Node{
		bt.E("input", "#undefined-input"),
		bt.E("div", "#filter-suggestions", bt.E("ul", "", options...)),
		reset,
	}

	blur := bt.E("button", "#lost-focus")
	blur.OnClick = func(p *bt.Page, _ *bt.Node) {
		if s.pending != "" {
			s.filter, s.pending = s.pending, ""
			p.SetRootLocked(s.results())
			return
		}
		panel.Hidden = true
	}

	var cards []*bt.Node
	for _, name := range s.order {
		if s.filter != "" && !has(s.amenities[name], s.filter) {
			continue
		}
		cards = append(cards, bt.E("div", ".item__details", bt.T("h3", name)))
	}
	list := bt.E("div", ".result-list", cards...)

	s.page.RegisterLocked(pages.ResultsContainer.Value, list)
	s.page.RegisterLocked(pages.FilterReset.Value, reset)
	return bt.E("body", "",
		bt.E("section", ".filter-toolbar", label),
		panel,
		bt.E("div", "#main_content", bt.E("div", ""), list),
		blur,
	)
}

func has(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (s *fakeSite) journey() *Journey {
	log := logging.Discard()
	w := waits.New(s.page).WithPoll(time.Millisecond)
	home := pages.NewHome(s.page, pages.WithHomeLogger(log), pages.WithHomeWaiter(w), pages.WithSettleDelay(0))
	results := pages.NewResults(s.page, pages.WithResultsLogger(log), pages.WithResultsWaiter(w))
	return NewJourneyFromPages(home, results, log)
}

func TestJourney_SpaFilter(t *testing.T) {
	site := newFakeSite()
	j := site.journey()

	require.NoError(t, j.Search(DefaultSearch))
	assert.True(t, site.searched)
	assert.Equal(t, "Double room", site.room)

	names, err := j.ShowResults()
	require.NoError(t, err)
	assert.Contains(t, names, "The River Lee")
	assert.Contains(t, names, "Cork International Hotel")

	err = j.ApplyFilter(FilterCheck{Filter: "Spa", Present: "The River Lee", Absent: "Jurys Inn Cork"})
	require.NoError(t, err)
}

func TestJourney_WiFiFilterWithReset(t *testing.T) {
	site := newFakeSite()
	j := site.journey()
	require.NoError(t, j.Search(DefaultSearch))

	require.NoError(t, j.ApplyFilter(FilterCheck{Filter: "Free WiFi", Absent: "Jurys Inn Cork"}))
	require.NoError(t, j.ResetFilter())
	assert.Empty(t, site.filter)
	require.NoError(t, j.ApplyFilter(FilterCheck{Filter: "Free WiFi", Present: "Cork International Hotel"}))
}

func TestJourney_Run(t *testing.T) {
	tests := []struct {
		name string
		plan Plan
	}{
		{name: "spa", plan: SpaPlan},
		{name: "wifi with reset", plan: WiFiPlan},
		{name: "search only", plan: Plan{Search: DefaultSearch}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := newFakeSite()
			require.NoError(t, site.journey().Run(tt.plan))
			assert.True(t, site.searched)
			assert.Equal(t, tt.plan.Check.Filter, site.filter)
		})
	}
}

func TestJourney_Run_FailedCheck(t *testing.T) {
	site := newFakeSite()
	plan := SpaPlan
	plan.Check.Present = "Cork International Hotel"

	err := site.journey().Run(plan)
	assert.ErrorIs(t, err, ErrAssertion)
	assert.Contains(t, err.Error(), "Cork International Hotel")
}

func TestJourney_AssertionFailures(t *testing.T) {
	site := newFakeSite()
	j := site.journey()
	require.NoError(t, j.Search(DefaultSearch))

	err := j.Verify(FilterCheck{Filter: "none", Absent: "The River Lee"})
	assert.ErrorIs(t, err, ErrAssertion)

	err = j.Verify(FilterCheck{Filter: "none", Present: "Imperial Hotel"})
	assert.ErrorIs(t, err, ErrAssertion)

	err = j.ResetFilter()
	assert.ErrorIs(t, err, ErrAssertion, "nothing to reset")

	err = j.ApplyFilter(FilterCheck{Filter: "Pool"})
	assert.ErrorIs(t, err, ErrAssertion)
}

func TestSearchCriteria_Validate(t *testing.T) {
	assert.NoError(t, DefaultSearch.Validate())
	assert.Error(t, SearchCriteria{}.Validate())
	assert.Error(t, SearchCriteria{Location: "Cork", MonthsForward: -1}.Validate())

	err := newFakeSite().journey().Search(SearchCriteria{Location: "Cork", MonthsForward: -2})
	assert.Error(t, err)
}
