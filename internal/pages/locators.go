package pages

import "github.com/travelqa/staysuite/internal/browser"

// Landing page
var (
	LocationField       = browser.ID("horus-querytext")
	LocationSuggestions = browser.ID("horus-suggestions")
	CalendarMonth       = browser.Class("cal-month")
	CalendarNext        = browser.Class("cal-btn-next")
	RoomMenu            = browser.ID("roomtype-menu")
	SearchButton        = browser.XPath("//*[@id='js-fullscreen-hero']//form//button[@type='submit']")
)

// Results page
var (
	ResultsContainer  = browser.XPath("//*[@id='main_content']/div[2]")
	ResultCard        = browser.Class("item__details")
	FilterToolbar     = browser.Class("filter-toolbar")
	FilterInput       = browser.ID("undefined-input")
	FilterSuggestions = browser.ID("filter-suggestions")
	FilterReset       = browser.CSS(".refinement-row__actions .refinement-row__reset")
	LostFocus         = browser.ID("lost-focus")
)

var (
	tagUL   = browser.Tag("ul")
	tagLI   = browser.Tag("li")
	tagTD   = browser.Tag("td")
	tagH3   = browser.Tag("h3")
	tagSpan = browser.Tag("span")
)

// Toolbar labels
const (
	SelectLabel        = "Select"
	FilterAppliedLabel = "(1) Filter"
)
