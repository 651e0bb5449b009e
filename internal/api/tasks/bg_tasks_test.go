package tasks

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	bgTasks := New(slog.Default(), 3, 10)
	bgTasks.Run()
	done := make(chan struct{})
	bgTasks.Add(func() {
		close(done)
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task was not executed")
	}
	require.NoError(t, bgTasks.Shutdown(context.Background()))
	assert.True(t, bgTasks.IsEmpty())
}

func TestShutdownDrainsQueue(t *testing.T) {
	bgTasks := New(slog.Default(), 2, 10)
	var executed atomic.Int32
	for i := 0; i < 5; i++ {
		bgTasks.Add(func() {
			executed.Add(1)
		})
	}
	bgTasks.Run()
	require.NoError(t, bgTasks.Shutdown(context.Background()))
	assert.Equal(t, int32(5), executed.Load())
}
