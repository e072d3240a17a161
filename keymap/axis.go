package keymap

import (
	"strings"

	"github.com/thaumaturge/keymapper/hid"
)

const axisPrefix = "axis."

// AxisInput encodes an axis name as a bindable input string.
func AxisInput(axis string) string { return axisPrefix + axis }

// IsAxisInput reports whether an input string names a device axis
// rather than a button.
func IsAxisInput(input string) bool {
	return strings.HasPrefix(strings.ToLower(input), axisPrefix)
}

func axisName(input string) string { return input[len(axisPrefix):] }

// axisEntry pairs up to two controls with the two directions of one
// analog axis. An entry exists only while at least one direction is
// bound.
type axisEntry struct {
	axis     string
	deadZone float64

	positive string // control bound to positive values, "" when free
	negative string

	classPos hid.Class
	classNeg hid.Class

	devicePos hid.Device
	deviceNeg hid.Device
}

func (m *Mapper) findAxis(axis string) *axisEntry {
	for _, entry := range m.axes {
		if entry.axis == axis {
			return entry
		}
	}
	return nil
}

// upsertAxis records which control owns which direction of an axis and
// which connected device currently satisfies it.
func (m *Mapper) upsertAxis(control, axis string, class hid.Class, device hid.Device, dir int) {
	entry := m.findAxis(axis)
	if entry == nil {
		entry = &axisEntry{axis: axis, deadZone: m.deadZone}
		m.axes = append(m.axes, entry)
	}
	switch {
	case dir > 0:
		entry.positive = control
		entry.classPos = class
		entry.devicePos = device
	case dir < 0:
		entry.negative = control
		entry.classNeg = class
		entry.deviceNeg = device
	}
}

// pruneAxes drops entries with both directions unbound.
func (m *Mapper) pruneAxes() {
	kept := m.axes[:0]
	for _, entry := range m.axes {
		if entry.positive != "" || entry.negative != "" {
			kept = append(kept, entry)
		}
	}
	m.axes = kept
}

// axisDirectionFor reports which axis direction, if any, a control
// currently claims.
func (m *Mapper) axisDirectionFor(control string) int {
	b, ok := m.bindings[control]
	if !ok || !IsAxisInput(b.Input) {
		return 0
	}
	for _, entry := range m.axes {
		if entry.positive == control {
			return 1
		}
		if entry.negative == control {
			return -1
		}
	}
	return 0
}

// SetDeadZoneForAllAxes applies one dead-zone value to every axis in
// use and makes it the default for axes bound later.
func (m *Mapper) SetDeadZoneForAllAxes(deadZone float64) {
	for _, entry := range m.axes {
		entry.deadZone = deadZone
	}
	m.deadZone = deadZone
}

// SetDeadZoneForAxis applies a dead-zone value to the axis with the
// given name. Unknown axes are ignored.
func (m *Mapper) SetDeadZoneForAxis(axis string, deadZone float64) {
	if entry := m.findAxis(axis); entry != nil {
		entry.deadZone = deadZone
	}
}

// FindAxisAndSetDeadZone applies a dead-zone value to the named axis
// when it is associated with the given device class.
func (m *Mapper) FindAxisAndSetDeadZone(axis string, class hid.Class, deadZone float64) {
	for _, entry := range m.axes {
		if entry.axis == axis && (entry.classPos == class || entry.classNeg == class) {
			entry.deadZone = deadZone
		}
	}
}
