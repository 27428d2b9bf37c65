// Package scenarios sequences page-object operations into the booking
// journeys and turns unmet expectations into errors.
package scenarios

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/travelqa/staysuite/internal/browser"
	"github.com/travelqa/staysuite/internal/pages"
)

// ErrAssertion marks a journey expectation that did not hold
var ErrAssertion = errors.New("assertion failed")

// SearchCriteria drives the landing-page search
type SearchCriteria struct {
	Location      string
	RoomSize      string
	MonthsForward int
}

// DefaultSearch is the Cork journey used by the suite
var DefaultSearch = SearchCriteria{Location: "Cork", RoomSize: "Double room", MonthsForward: 1}

// Validate rejects criteria that cannot describe a search
func (c SearchCriteria) Validate() error {
	if c.Location == "" {
		return errors.New("location is required")
	}
	if c.MonthsForward < 0 {
		return fmt.Errorf("months forward must not be negative, got %d", c.MonthsForward)
	}
	return nil
}

// FilterCheck applies Filter and checks one hotel that must be listed and
// one that must not. Either name may be empty to skip that check.
type FilterCheck struct {
	Filter  string
	Present string
	Absent  string
}

// Plan is one complete search-and-filter run
type Plan struct {
	Search SearchCriteria
	Check  FilterCheck
	// Reset applies the filter checking only Absent, resets it, then applies
	// it again checking Present.
	Reset bool
}

// Journeys run by the suite
var (
	SpaPlan = Plan{
		Search: DefaultSearch,
		Check:  FilterCheck{Filter: "Spa", Present: "The River Lee", Absent: "Jurys Inn Cork"},
	}
	WiFiPlan = Plan{
		Search: DefaultSearch,
		Check:  FilterCheck{Filter: "Free WiFi", Present: "Cork International Hotel", Absent: "Jurys Inn Cork"},
		Reset:  true,
	}
)

// Journey runs scenarios against one owned session
type Journey struct {
	Home    *pages.Home
	Results *pages.Results
	log     logrus.FieldLogger
}

// NewJourney builds the page objects for sess. The run id ties together
// the log lines of one journey.
func NewJourney(sess browser.Session, log logrus.FieldLogger, homeOpts ...pages.HomeOption) *Journey {
	log = log.WithField("run_id", uuid.NewString())
	homeOpts = append([]pages.HomeOption{pages.WithHomeLogger(log)}, homeOpts...)
	return &Journey{
		Home:    pages.NewHome(sess, homeOpts...),
		Results: pages.NewResults(sess, pages.WithResultsLogger(log)),
		log:     log,
	}
}

// NewJourneyFromPages wraps page objects built elsewhere
func NewJourneyFromPages(home *pages.Home, results *pages.Results, log logrus.FieldLogger) *Journey {
	return &Journey{Home: home, Results: results, log: log}
}

// Search fills the landing page and submits it. Unmatched location, day or
// room size are logged but do not fail the journey; a search button that
// cannot be clicked does.
func (j *Journey) Search(c SearchCriteria) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid search: %w", err)
	}
	log := j.log.WithFields(logrus.Fields{"location": c.Location, "room": c.RoomSize, "months": c.MonthsForward})
	log.Info("Searching")

	if _, err := j.Home.EnterLocation(c.Location); err != nil {
		return err
	}
	if _, err := j.Home.SelectCheckInDate(); err != nil {
		return err
	}
	if _, err := j.Home.SelectCheckOutDate(c.MonthsForward); err != nil {
		return err
	}
	if _, err := j.Home.SelectRoomSize(c.RoomSize); err != nil {
		return err
	}

	clicked, err := j.Home.ClickSearch()
	if err != nil {
		return err
	}
	if !clicked {
		return fmt.Errorf("%w: search button was not clicked or not visible", ErrAssertion)
	}
	return nil
}

// ShowResults lists the current results and fails when there are none
func (j *Journey) ShowResults() ([]string, error) {
	names, err := j.Results.ListResults()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no results listed", ErrAssertion)
	}
	j.log.WithField("count", len(names)).Info("Results listed")
	return names, nil
}

// ApplyFilter applies chk.Filter and verifies the expected hotels
func (j *Journey) ApplyFilter(chk FilterCheck) error {
	ok, err := j.Results.ApplyFilter(chk.Filter)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: filter could not be applied: %s", ErrAssertion, chk.Filter)
	}
	return j.Verify(chk)
}

// Verify checks chk's expectations against the current results
func (j *Journey) Verify(chk FilterCheck) error {
	if chk.Absent != "" {
		found, err := j.Results.HotelInResults(chk.Absent, chk.Filter)
		if err != nil {
			return err
		}
		if found {
			return fmt.Errorf("%w: unexpectedly found hotel in filtered list: %s", ErrAssertion, chk.Absent)
		}
	}
	if chk.Present != "" {
		found, err := j.Results.HotelInResults(chk.Present, chk.Filter)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: expected hotel not found in filtered list: %s", ErrAssertion, chk.Present)
		}
	}
	return nil
}

// ResetFilter clears the active filter and fails if none was active
func (j *Journey) ResetFilter() error {
	ok, err := j.Results.ClearFilter()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: filter could not be reset", ErrAssertion)
	}
	return nil
}

// Run searches, lists the results and applies the plan's filter checks
func (j *Journey) Run(p Plan) error {
	if err := j.Search(p.Search); err != nil {
		return err
	}
	if _, err := j.ShowResults(); err != nil {
		return err
	}
	if p.Check.Filter == "" {
		return nil
	}
	if !p.Reset {
		return j.ApplyFilter(p.Check)
	}

	if err := j.ApplyFilter(FilterCheck{Filter: p.Check.Filter, Absent: p.Check.Absent}); err != nil {
		return err
	}
	if err := j.ResetFilter(); err != nil {
		return err
	}
	return j.ApplyFilter(FilterCheck{Filter: p.Check.Filter, Present: p.Check.Present})
}
