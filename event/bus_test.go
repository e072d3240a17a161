package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribePublish(t *testing.T) {
	bus := NewBus()
	var got []any
	bus.Subscribe("space", func(args ...any) { got = append(got, args...) })

	bus.Publish("space", 1)
	bus.Publish("other")

	assert.Equal(t, []any{1}, got)
}

func TestMultipleHandlersSameName(t *testing.T) {
	bus := NewBus()
	count := 0
	bus.Subscribe("jump", func(...any) { count++ })
	bus.Subscribe("jump", func(...any) { count++ })

	bus.Publish("jump")
	assert.Equal(t, 2, count)
}

func TestCancel(t *testing.T) {
	bus := NewBus()
	count := 0
	sub := bus.Subscribe("space", func(...any) { count++ })

	bus.Publish("space")
	sub.Cancel()
	bus.Publish("space")
	sub.Cancel() // second cancel is a no-op

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, bus.HandlerCount("space"))
}

func TestCancelDuringPublish(t *testing.T) {
	bus := NewBus()
	count := 0
	var sub Subscription
	sub = bus.Subscribe("space", func(...any) {
		count++
		sub.Cancel()
	})

	bus.Publish("space")
	bus.Publish("space")

	assert.Equal(t, 1, count)
}

func TestOff(t *testing.T) {
	bus := NewBus()
	count := 0
	bus.Subscribe("space", func(...any) { count++ })
	bus.Subscribe("space", func(...any) { count++ })

	bus.Off("space")
	bus.Publish("space")

	assert.Zero(t, count)
}

func TestReleaseName(t *testing.T) {
	assert.Equal(t, "space-up", ReleaseName("space"))
}
