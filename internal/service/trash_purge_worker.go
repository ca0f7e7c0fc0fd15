package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// TrashPurgeConfig holds settings for the trash purge worker.
type TrashPurgeConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// TrashPurgeWorker periodically deletes quotes that have been in the trash
// longer than the retention window.
type TrashPurgeWorker struct {
	quotes QuoteService
	cfg    TrashPurgeConfig
	log    logrus.FieldLogger
}

// NewTrashPurgeWorker creates a new TrashPurgeWorker.
func NewTrashPurgeWorker(quotes QuoteService, cfg TrashPurgeConfig, log logrus.FieldLogger) *TrashPurgeWorker {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &TrashPurgeWorker{quotes: quotes, cfg: cfg, log: log}
}

// Start purges once immediately, then on every tick until ctx is canceled.
// Purges run on the calling goroutine, so Start returns only after the
// current purge has finished.
func (w *TrashPurgeWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	w.log.WithFields(logrus.Fields{
		"interval":  w.cfg.Interval,
		"retention": w.cfg.Retention,
	}).Info("trashPurgeWorker: started")

	w.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			w.log.Info("trashPurgeWorker: shutdown complete")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *TrashPurgeWorker) runOnce(ctx context.Context) {
	// A fresh context lets a purge that started before shutdown finish.
	purgeCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := w.quotes.PurgeExpired(purgeCtx, w.cfg.Retention)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.log.WithError(err).Error("trashPurgeWorker: purge failed")
		return
	}
	w.log.WithField("deleted", n).Debug("trashPurgeWorker: purge complete")
}
