package keymap

import "math"

// Capture thresholds for synthesizing an interception from axis
// movement: absolute travel for axes with no baseline sample, and
// delta from the baseline otherwise.
const (
	captureAbsThreshold   = 0.5
	captureDeltaThreshold = 0.3
)

// binaryThreshold is the half-travel point where non-held axis
// controls switch state.
const binaryThreshold = 0.5

// Update advances the mapper by one frame. While awaiting a rebind it
// polls every connected pollable device's axes against the capture
// baseline and synthesizes at most one interception per tick. While
// idle it drives each axis entry through the dead-zone and
// edge-trigger logic that updates the control-state table and fires
// callbacks.
func (m *Mapper) Update(dt float64) error {
	_ = dt
	switch m.state {
	case AwaitingRebind:
		return m.pollForCapture()
	case Idle:
		m.driveAxes()
	}
	return nil
}

func (m *Mapper) pollForCapture() error {
	if m.cfg.Devices == nil {
		return nil
	}
	for _, d := range m.cfg.Devices.All() {
		if !d.Class().Pollable() {
			continue
		}
		base := m.baselines[d]
		for _, axis := range d.Axes() {
			v := d.AxisValue(axis)
			rest, sampled := base[axis]
			moved := (!sampled && math.Abs(v) > captureAbsThreshold) ||
				(sampled && math.Abs(v-rest) > captureDeltaThreshold)
			if !moved {
				continue
			}
			input := AxisInput(axis)
			m.Intercept(d.Class(), input, v)
			// One synthetic event per frame.
			return m.Release(input)
		}
	}
	return nil
}

func (m *Mapper) driveAxes() {
	for _, entry := range m.axes {
		var vPos, vNeg float64
		if entry.devicePos != nil {
			vPos = math.Max(0, entry.devicePos.AxisValue(entry.axis))
		}
		if entry.deviceNeg != nil {
			vNeg = math.Min(0, entry.deviceNeg.AxisValue(entry.axis))
		}
		m.driveAxisControl(entry.positive, vPos, entry.deadZone)
		m.driveAxisControl(entry.negative, vNeg, entry.deadZone)
	}
}

// driveAxisControl feeds one sampled axis value through a control's
// threshold logic. Non-held controls are binary at half travel and
// fire edge callbacks exactly once per crossing; held controls store
// the magnitude (signed or absolute per the SignedAxes flag) with the
// dead-zone zeroing small values.
func (m *Mapper) driveAxisControl(control string, value, deadZone float64) {
	if control == "" {
		return
	}
	b := m.bindings[control]
	absValue := math.Abs(value)
	oldState := math.Abs(m.values[control])

	if b.Kind != Held {
		switch {
		case oldState < binaryThreshold && absValue > binaryThreshold:
			result := 1.0
			if m.cfg.SignedAxes && value < 0 {
				result = -1
			}
			m.values[control] = result
			if b.Kind == Pressed || b.Kind == PressedAndReleased {
				m.firePressed(b)
			}
		case oldState > binaryThreshold && absValue < binaryThreshold:
			m.values[control] = 0
			if b.Kind == Released || b.Kind == PressedAndReleased {
				m.fireReleased(b)
			}
		}
		return
	}

	switch {
	case absValue < deadZone:
		m.values[control] = 0
		if m.cfg.StateCallback != nil && oldState != 0 {
			m.cfg.StateCallback(control, false)
		}
	case m.cfg.SignedAxes:
		m.values[control] = value
		if m.cfg.StateCallback != nil && oldState == 0 {
			m.cfg.StateCallback(control, true)
		}
	default:
		m.values[control] = absValue
		if m.cfg.StateCallback != nil && oldState == 0 {
			m.cfg.StateCallback(control, true)
		}
	}
}

func (m *Mapper) firePressed(b *Binding) {
	switch c := b.Callback.(type) {
	case Single:
		c(b.Control, Pressed)
	case Pair:
		c.OnPress(b.Control)
	}
}

func (m *Mapper) fireReleased(b *Binding) {
	switch c := b.Callback.(type) {
	case Single:
		c(b.Control, Released)
	case Pair:
		c.OnRelease(b.Control)
	}
}
