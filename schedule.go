package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"
)

// runScheduled syncs every interval until ctx is done. The first run
// starts immediately. A run still in progress when the next one is due
// makes the next one skip.
func runScheduled(ctx context.Context, handler *SyncHandler, interval time.Duration) error {
	scheduler := gocron.NewScheduler(time.UTC)
	_, jobErr := scheduler.Every(interval).Do(func() {
		if _, syncErr := handler.Sync(ctx); syncErr != nil {
			log.Warn(fmt.Sprintf("Scheduled sync failed: %s", syncErr))
		}
	})
	if jobErr != nil {
		return fmt.Errorf("scheduling sync every %s: %w", interval, jobErr)
	}

	log.Info(fmt.Sprintf("Syncing every %s", interval))
	scheduler.StartAsync()
	<-ctx.Done()
	scheduler.Stop()

	return nil
}
