package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (c *countingSweeper) Sweep(context.Context) (int, error) {
	c.calls.Add(1)
	return 2, c.err
}

func TestRunSessionSweep(t *testing.T) {
	n, err := RunSessionSweep(context.Background(), &countingSweeper{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = RunSessionSweep(context.Background(), &countingSweeper{err: errors.New("redis down")}, nil)
	assert.EqualError(t, err, "redis down")
}

func TestSchedulerRunsSweep(t *testing.T) {
	sw := &countingSweeper{}
	s := NewScheduler(nil)
	require.NoError(t, s.AddSessionSweep("@every 1s", sw, time.Second))
	s.Start()
	defer func() { _ = s.Stop(context.Background()) }()

	assert.Eventually(t, func() bool { return sw.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	err := NewScheduler(nil).AddSessionSweep("every hour", &countingSweeper{}, 0)
	assert.Error(t, err)
}
