package keymap

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaumaturge/keymapper/hid"
	"github.com/thaumaturge/keymapper/hid/virtual"
)

func TestRunnerDrivesFrameUpdates(t *testing.T) {
	held := make(chan bool, 8)
	fx := newFixture(t, func(c *Config) {
		c.StateCallback = func(control string, h bool) { held <- h }
	})
	pad := virtual.NewGamepad("pad0")
	fx.devices.Connect(pad)
	require.NoError(t, fx.mapper.Register("lean-left", AxisInput("left_x"), hid.ClassGamepad, Held, nil, -1, 0))

	mock := clock.NewMock()
	r := NewRunner(fx.mapper, mock, 10*time.Millisecond, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	// Let the loop arm its ticker before stepping the mock clock.
	time.Sleep(20 * time.Millisecond)
	pad.SetAxis("left_x", -0.9)
	mock.Add(10 * time.Millisecond)

	select {
	case h := <-held:
		assert.True(t, h)
	case <-time.After(2 * time.Second):
		t.Fatal("no frame update observed")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestRunnerStopsOnContextCancel(t *testing.T) {
	fx := newFixture(t, nil)
	r := NewRunner(fx.mapper, nil, 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, r.Run(ctx), context.Canceled)
}
