package hid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassStringRoundTrip(t *testing.T) {
	for _, class := range Classes() {
		parsed, err := ParseClass(class.String())
		require.NoError(t, err)
		assert.Equal(t, class, parsed)
	}
}

func TestParseClassUnknown(t *testing.T) {
	_, err := ParseClass("toaster")
	assert.Error(t, err)
}

func TestPollable(t *testing.T) {
	assert.False(t, ClassKeyboard.Pollable())
	assert.False(t, ClassMouse.Pollable())
	assert.False(t, ClassUnknown.Pollable())
	assert.True(t, ClassGamepad.Pollable())
	assert.True(t, ClassFlightStick.Pollable())
}
