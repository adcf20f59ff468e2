package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunOnce(t *testing.T) {
	s := NewScheduler()

	var ran1, ran2 atomic.Int32
	s.Register(Job{
		Name:     "job-1",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			ran1.Add(1)
			return nil
		},
	})
	s.Register(Job{
		Name:     "job-2",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			ran2.Add(1)
			return errors.New("boom")
		},
	})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), ran1.Load())
	// A failing job must not stop the others.
	assert.Equal(t, int32(1), ran2.Load())
}

func TestStartRunOnStart(t *testing.T) {
	s := NewScheduler()

	var ran atomic.Int32
	s.Register(Job{
		Name:       "startup-job",
		Interval:   time.Hour,
		RunOnStart: true,
		Fn: func(ctx context.Context) error {
			ran.Add(1)
			return nil
		},
	})

	s.Start()
	assert.Eventually(t, func() bool { return ran.Load() == 1 }, time.Second, 10*time.Millisecond)
	s.Stop()
}

func TestStopCancelsContext(t *testing.T) {
	s := NewScheduler()

	done := make(chan struct{})
	s.Register(Job{
		Name:       "blocking-job",
		Interval:   time.Hour,
		RunOnStart: true,
		Fn: func(ctx context.Context) error {
			<-ctx.Done()
			close(done)
			return ctx.Err()
		},
	})

	s.Start()
	go s.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job context was not cancelled on Stop")
	}
}
