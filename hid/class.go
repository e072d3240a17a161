// Package hid models the physical input devices a key mapper draws
// bindings from: a closed device-class enumeration, a small Device
// interface for axis-bearing hardware, and a Manager that tracks
// hot-plugged devices.
package hid

import "fmt"

// Class is the closed enumeration of device classes a binding can be
// scoped to. Persisted profiles store the string form.
type Class int

const (
	ClassUnknown Class = iota
	ClassKeyboard
	ClassMouse
	ClassGamepad
	ClassFlightStick
	ClassSteeringWheel
	ClassDancePad
	ClassDigitizer
	ClassSpatial
	ClassHMD
)

var classNames = map[Class]string{
	ClassUnknown:       "unknown",
	ClassKeyboard:      "keyboard",
	ClassMouse:         "mouse",
	ClassGamepad:       "gamepad",
	ClassFlightStick:   "flight_stick",
	ClassSteeringWheel: "steering_wheel",
	ClassDancePad:      "dance_pad",
	ClassDigitizer:     "digitizer",
	ClassSpatial:       "spatial",
	ClassHMD:           "hmd",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseClass converts the persisted string form back into a Class.
func ParseClass(s string) (Class, error) {
	for c, name := range classNames {
		if name == s {
			return c, nil
		}
	}
	return ClassUnknown, fmt.Errorf("hid: unknown device class %q", s)
}

// Classes returns every concrete class, keyboard and mouse included.
func Classes() []Class {
	return []Class{
		ClassKeyboard, ClassMouse, ClassGamepad, ClassFlightStick,
		ClassSteeringWheel, ClassDancePad, ClassDigitizer, ClassSpatial,
		ClassHMD,
	}
}

// Pollable reports whether devices of this class expose axes that the
// mapper samples per frame. Keyboard and mouse input arrives as events
// instead.
func (c Class) Pollable() bool {
	switch c {
	case ClassKeyboard, ClassMouse, ClassUnknown:
		return false
	default:
		return true
	}
}
