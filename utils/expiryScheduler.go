package utils

import (
	"examportal/engine"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[EXPIRY-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// sweepExpiredSessions grades every ACTIVE session whose deadline has passed,
// using whatever answers were collected. Racing explicit submits are handled
// inside the engine; the sweep only ever produces a result for sessions it
// wins.
func sweepExpiredSessions(manager *engine.Manager) {
	results, err := manager.SweepExpired()
	if err != nil {
		logScheduler("Error sweeping expired sessions: " + err.Error())
	}

	for _, result := range results {
		logScheduler("Auto-submitted expired session, result created")
		go NotifyResult(result)
	}
}

// StartExpiryScheduler runs the expiry sweep every minute
func StartExpiryScheduler(c *cron.Cron, manager *engine.Manager) {
	c.AddFunc("* * * * *", func() {
		sweepExpiredSessions(manager)
	})
	logScheduler("Expiry scheduler started - runs every minute")
}

// InitializeSchedulers initializes all background schedulers
func InitializeSchedulers(manager *engine.Manager) *cron.Cron {
	logScheduler("Initializing schedulers...")

	c := cron.New()

	StartExpiryScheduler(c, manager)

	c.Start()

	logScheduler("All schedulers initialized successfully")
	return c
}
