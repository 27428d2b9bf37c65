package cli

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelqa/staysuite/internal/browser"
	bt "github.com/travelqa/staysuite/internal/browser/browsertest"
	"github.com/travelqa/staysuite/internal/config"
	"github.com/travelqa/staysuite/internal/scenarios"
)

// failingClose wraps a fake page whose Close reports an error
type failingClose struct {
	*bt.Page
}

func (f failingClose) Close() error {
	f.Page.Close()
	return errors.New("driver already gone")
}

func suiteConfig(t *testing.T) *config.SuiteConfig {
	t.Helper()
	cfg, err := config.LoadSuiteConfig(func(key string) string {
		return map[string]string{"url": "http://localhost:8080", "browser": "firefox"}[key]
	})
	require.NoError(t, err)
	return cfg
}

func TestRunJourney_OpenFailure(t *testing.T) {
	// GIVEN
	logger, _ := test.NewNullLogger()
	openErr := errors.New("no browser installed")
	open := func(browser.Options) (browser.Session, error) { return nil, openErr }

	// WHEN
	err := RunJourney(suiteConfig(t), scenarios.SpaPlan, open, logger)

	// THEN
	assert.ErrorIs(t, err, openErr)
}

func TestRunJourney_ClosesSessionOnFailure(t *testing.T) {
	// GIVEN
	logger, hook := test.NewNullLogger()
	page := bt.NewPage(bt.E("body", ""))
	var got browser.Options
	open := func(opts browser.Options) (browser.Session, error) {
		got = opts
		return failingClose{page}, nil
	}

	// WHEN
	err := RunJourney(suiteConfig(t), scenarios.Plan{}, open, logger)

	// THEN
	assert.ErrorContains(t, err, "invalid search")
	assert.True(t, page.Closed())
	assert.Equal(t, browser.Firefox, got.Browser)
	assert.Equal(t, "http://localhost:8080", got.URL)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "Failed to close browser session" {
			warned = true
		}
	}
	assert.True(t, warned, "close failure is logged at warn level")
}

func TestRunJourney_DefaultConfigInstallsPlaywrightDriver(t *testing.T) {
	// GIVEN
	logger, _ := test.NewNullLogger()
	var got browser.Options
	open := func(opts browser.Options) (browser.Session, error) {
		got = opts
		return nil, errors.New("stop before launching")
	}

	// WHEN
	err := RunJourney(suiteConfig(t), scenarios.SpaPlan, open, logger)

	// THEN
	require.Error(t, err)
	assert.Equal(t, browser.BackendPlaywright, got.Backend)
	assert.True(t, got.InstallDriver, "a clean machine needs the driver fetched")
}
