//go:build e2e

package e2e

import (
	"fmt"
	"net"
	"os"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/travelqa/staysuite/internal/browser"
	"github.com/travelqa/staysuite/internal/cli"
	"github.com/travelqa/staysuite/internal/config"
	"github.com/travelqa/staysuite/internal/models"
	"github.com/travelqa/staysuite/internal/repository"
	"github.com/travelqa/staysuite/internal/scenarios"
	"github.com/travelqa/staysuite/internal/services"
)

var baseURL string

// TestMain installs the browser driver and serves the fixture site on a free port
func TestMain(m *testing.M) {
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}, Verbose: false}); err != nil {
		panic(err)
	}

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	catalog := services.NewCatalogService(repository.NewMemoryHotelRepository(models.SeedHotels()...))
	deps, err := cli.BuildServerDependencies(config.ServerConfig{Port: "0"}, catalog, "..", log)
	if err != nil {
		panic(err)
	}
	listener, server, err := cli.StartServer(deps)
	if err != nil {
		panic(err)
	}
	baseURL = fmt.Sprintf("http://localhost:%d/", listener.Addr().(*net.TCPAddr).Port)

	code := m.Run()

	server.Close()
	listener.Close()
	os.Exit(code)
}

// newJourney opens a fresh headless session on the landing page
func newJourney(t *testing.T) *scenarios.Journey {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)

	sess, err := browser.Open(browser.Options{
		Browser:      browser.Chrome,
		URL:          baseURL,
		Headless:     true,
		Maximize:     true,
		ImplicitWait: browser.DefaultImplicitWait,
	})
	require.NoError(t, err, "failed to open browser")
	t.Cleanup(func() {
		cli.CloseSession(sess, log)
	})

	return scenarios.NewJourney(sess, log.WithField("test", t.Name()))
}
