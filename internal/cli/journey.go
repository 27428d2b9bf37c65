package cli

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/travelqa/staysuite/internal/browser"
	"github.com/travelqa/staysuite/internal/config"
	"github.com/travelqa/staysuite/internal/scenarios"
)

// SessionOpener starts a browser session; browser.Open in production
type SessionOpener func(browser.Options) (browser.Session, error)

// RunJourney opens a session from cfg, runs plan against it and closes the
// session. Close failures are logged, never returned.
func RunJourney(cfg *config.SuiteConfig, plan scenarios.Plan, open SessionOpener, log logrus.FieldLogger) error {
	opts := cfg.BrowserOptions()
	log = log.WithFields(logrus.Fields{"browser": opts.Browser, "driver": opts.Backend, "url": opts.URL})

	sess, err := open(opts)
	if err != nil {
		return fmt.Errorf("failed to open browser session: %w", err)
	}
	defer CloseSession(sess, log)

	start := time.Now()
	if err := scenarios.NewJourney(sess, log).Run(plan); err != nil {
		log.WithError(err).Error("Journey failed")
		return err
	}
	log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("Journey passed")
	return nil
}

// CloseSession closes sess, logging rather than returning a failure
func CloseSession(sess browser.Session, log logrus.FieldLogger) {
	if err := sess.Close(); err != nil {
		log.WithError(err).Warn("Failed to close browser session")
	}
}
