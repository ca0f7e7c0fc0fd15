package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"preventivi/internal/logger"
	"preventivi/internal/service"
	"preventivi/mocks"
)

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func TestTrashPurgeWorker_PurgesOnStartAndTick(t *testing.T) {
	quotes := new(mocks.MockQuoteService)
	retention := 30 * 24 * time.Hour
	purged := make(chan struct{}, 8)

	quotes.On("PurgeExpired", mock.Anything, retention).
		Run(func(mock.Arguments) { notify(purged) }).
		Return(int64(1), nil)

	w := service.NewTrashPurgeWorker(quotes, service.TrashPurgeConfig{
		Interval:  10 * time.Millisecond,
		Retention: retention,
	}, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-purged:
		case <-time.After(2 * time.Second):
			t.Fatalf("purge %d did not run", i+1)
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestTrashPurgeWorker_ErrorsDoNotStopWorker(t *testing.T) {
	quotes := new(mocks.MockQuoteService)
	purged := make(chan struct{}, 8)

	quotes.On("PurgeExpired", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { notify(purged) }).
		Return(int64(0), errors.New("connection refused"))

	w := service.NewTrashPurgeWorker(quotes, service.TrashPurgeConfig{
		Interval:  10 * time.Millisecond,
		Retention: time.Hour,
	}, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	for i := 0; i < 3; i++ {
		select {
		case <-purged:
		case <-time.After(2 * time.Second):
			t.Fatalf("purge %d did not run", i+1)
		}
	}
}
