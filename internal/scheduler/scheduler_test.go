package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEveryRunsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var runs atomic.Int32

	done := make(chan struct{})
	go func() {
		Every(ctx, 5*time.Millisecond, "test", func(context.Context) error {
			if runs.Add(1) >= 3 {
				cancel()
			}
			return errors.New("keeps going")
		}, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Every did not stop after cancel")
	}
	assert.GreaterOrEqual(t, runs.Load(), int32(3))
}
