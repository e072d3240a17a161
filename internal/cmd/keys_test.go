package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want []string
	}{
		{"letters", []byte("wq"), []string{"w", "q"}},
		{"uppercase folds", []byte("W"), []string{"w"}},
		{"space", []byte(" "), []string{"space"}},
		{"enter", []byte("\r"), []string{"enter"}},
		{"tab", []byte("\t"), []string{"tab"}},
		{"backspace", []byte{0x7f}, []string{"backspace"}},
		{"ctrl-c", []byte{0x03}, []string{"ctrl-c"}},
		{"bare escape", []byte{0x1b}, []string{"escape"}},
		{"arrow up", []byte{0x1b, '[', 'A'}, []string{"arrow_up"}},
		{"arrow down", []byte{0x1b, '[', 'B'}, []string{"arrow_down"}},
		{"arrow right", []byte{0x1b, '[', 'C'}, []string{"arrow_right"}},
		{"arrow left", []byte{0x1b, '[', 'D'}, []string{"arrow_left"}},
		{"arrow then letter", []byte{0x1b, '[', 'D', 'x'}, []string{"arrow_left", "x"}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeKeys(tt.buf))
		})
	}
}
