package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "released", Released.String())
	assert.Equal(t, "pressed", Pressed.String())
	assert.Equal(t, "pressed-and-released", PressedAndReleased.String())
	assert.Equal(t, "held", Held.String())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "awaiting-rebind", AwaitingRebind.String())
	assert.Equal(t, "conflict-pending", ConflictPending.String())
}

func TestValidateCallback(t *testing.T) {
	single := Single(func(string, Kind) {})
	pair := Pair{OnPress: func(string) {}, OnRelease: func(string) {}}

	tests := []struct {
		name    string
		kind    Kind
		cb      Callback
		wantErr bool
	}{
		{"held needs nothing", Held, nil, false},
		{"pressed with single", Pressed, single, false},
		{"pressed without callback", Pressed, nil, true},
		{"pressed with pair", Pressed, pair, true},
		{"released with single", Released, single, false},
		{"released without callback", Released, nil, true},
		{"both edges with single", PressedAndReleased, single, false},
		{"both edges with pair", PressedAndReleased, pair, false},
		{"both edges without callback", PressedAndReleased, nil, true},
		{"both edges with half a pair", PressedAndReleased, Pair{OnPress: func(string) {}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCallback("ctl", tt.kind, tt.cb)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGroupMaskOverlaps(t *testing.T) {
	assert.True(t, GroupMask(1).Overlaps(1))
	assert.True(t, GroupMask(3).Overlaps(2))
	assert.False(t, GroupMask(1).Overlaps(2))
	assert.False(t, GroupMask(4).Overlaps(3))
}
