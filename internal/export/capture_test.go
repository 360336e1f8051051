package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitImagesComplete_StopsOncePagesReportDone(t *testing.T) {
	calls := 0
	probe := func(ctx context.Context) (bool, error) {
		calls++
		return calls >= 3, nil
	}

	err := waitImagesComplete(context.Background(), probe, time.Second, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWaitImagesComplete_TimeoutIsNotAnError(t *testing.T) {
	// Images never finish loading; the capture must proceed regardless.
	probe := func(ctx context.Context) (bool, error) { return false, nil }

	start := time.Now()
	err := waitImagesComplete(context.Background(), probe, 20*time.Millisecond, time.Millisecond)

	assert.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitImagesComplete_ProbeErrorSurfaces(t *testing.T) {
	probeErr := errors.New("target crashed")
	probe := func(ctx context.Context) (bool, error) { return false, probeErr }

	err := waitImagesComplete(context.Background(), probe, time.Second, time.Millisecond)

	assert.ErrorIs(t, err, probeErr)
}

func TestWaitImagesComplete_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	probe := func(ctx context.Context) (bool, error) { return false, nil }

	err := waitImagesComplete(ctx, probe, time.Second, 10*time.Millisecond)

	assert.ErrorIs(t, err, context.Canceled)
}
