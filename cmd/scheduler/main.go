package main

import (
	"birthdaybot/internal/app/deps"
	"birthdaybot/internal/app/services"
	"birthdaybot/internal/core/domain/logging"
	scanbirthdays "birthdaybot/internal/core/services/scan_birthdays"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(
		context.Background(),
		"Starting daily birthday scanner.",
		logging.Entry("hour", deps.Config.ReminderHour),
		logging.Entry("minute", deps.Config.ReminderMinute),
	)

loop:
	for {
		timer := time.NewTimer(time.Until(nextRun(deps.Now(), deps.Config.ReminderHour, deps.Config.ReminderMinute)))

		select {
		case <-stopCh:
			timer.Stop()
			log.Info(context.Background(), "Stopping daily birthday scanner.")
			break loop
		case <-timer.C:
			log.Info(context.Background(), "Launching birthday scanning service.")
			result, err := services.ScanBirthdays.Run(context.Background(), scanbirthdays.Input{})
			if err != nil {
				log.Error(context.Background(), "Scanning service returned an error.", logging.Entry("err", err))
				continue
			}
			log.Info(
				context.Background(),
				"Birthday scanning finished.",
				logging.Entry("ownerCount", result.OwnerCount),
				logging.Entry("scheduledCount", result.ScheduledCount),
			)
		}
	}
}

// nextRun returns the next moment the scan must fire, in UTC. If
// today's fire time has already passed the scan goes to tomorrow.
func nextRun(now time.Time, hour int, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
