// Package virtual provides a scriptable in-memory device used by tests
// and the CLI tooling in place of real hardware. Importing the package
// registers the "gamepad" backend kind.
package virtual

import (
	"sync"

	"github.com/thaumaturge/keymapper/event"
	"github.com/thaumaturge/keymapper/hid"
)

func init() {
	hid.RegisterBackend("gamepad", func(name string) (hid.Device, error) {
		return NewGamepad(name), nil
	})
}

// Device is a virtual axis-bearing device whose values are set by the
// test or tool driving it.
type Device struct {
	name  string
	class hid.Class

	mu     sync.Mutex
	order  []string
	values map[string]float64
}

// New creates a virtual device exposing the named axes, all at 0.
func New(name string, class hid.Class, axes ...string) *Device {
	d := &Device{name: name, class: class, values: make(map[string]float64)}
	for _, axis := range axes {
		d.order = append(d.order, axis)
		d.values[axis] = 0
	}
	return d
}

// NewGamepad creates a virtual gamepad with the usual stick and
// trigger axes.
func NewGamepad(name string) *Device {
	return New(name, hid.ClassGamepad,
		"left_x", "left_y", "right_x", "right_y", "left_trigger", "right_trigger")
}

func (d *Device) Name() string     { return d.name }
func (d *Device) Class() hid.Class { return d.class }

func (d *Device) Axes() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

func (d *Device) AxisValue(axis string) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.values[axis]
}

// SetAxis moves an axis to the given value. Axes not declared at
// construction are added on first set.
func (d *Device) SetAxis(axis string, value float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.values[axis]; !ok {
		d.order = append(d.order, axis)
	}
	d.values[axis] = value
}

// Press publishes the press event for a button input on the bus, as a
// hardware backend would after decoding a report.
func Press(bus *event.Bus, input string) { bus.Publish(input) }

// Release publishes the matching release event.
func Release(bus *event.Bus, input string) { bus.Publish(event.ReleaseName(input)) }

// Tap publishes a press immediately followed by a release.
func Tap(bus *event.Bus, input string) {
	Press(bus, input)
	Release(bus, input)
}
