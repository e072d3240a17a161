package keymap

import (
	"strings"

	"github.com/thaumaturge/keymapper/hid"
)

// Bus event names for raw input interception. A host whose input layer
// cannot call Intercept/Release directly can publish these instead:
// EventIntercept carries (hid.Class, input string, value float64),
// EventInterceptRelease carries (input string).
const (
	EventIntercept        = "key-intercept"
	EventInterceptRelease = "key-release"
)

// BeginRebind puts the mapper into the AwaitingRebind state for the
// named control. Raw input events and device axis movement are
// captured until a qualifying press is released, the rebind is
// cancelled, or a conflict is resolved. An in-progress capture is
// abandoned first.
func (m *Mapper) BeginRebind(control string) error {
	if _, ok := m.bindings[control]; !ok {
		return ErrUnknownControl
	}
	m.CancelRebind()
	m.target = control
	m.cand = candidate{}
	m.state = AwaitingRebind
	m.snapshotBaselines()
	m.subscribeCapture()
	m.log.Debug("awaiting rebind", "control", control)
	return nil
}

// CancelRebind abandons any in-progress capture or pending conflict,
// dropping every temporary raw-input subscription.
func (m *Mapper) CancelRebind() {
	if m.state == Idle {
		return
	}
	m.unsubscribeCapture()
	m.baselines = nil
	m.cand = candidate{}
	m.target = ""
	m.conflictKey = ""
	m.state = Idle
}

// RebindTarget returns the control awaiting a new binding, if any.
func (m *Mapper) RebindTarget() string { return m.target }

// Conflict returns the candidate input and the control it collides
// with while a conflict is pending.
func (m *Mapper) Conflict() (input, control string) {
	if m.state != ConflictPending {
		return "", ""
	}
	return m.cand.input, m.conflictKey
}

// Intercept records the latest raw input as the rebind candidate.
// Outside the AwaitingRebind state it is ignored. The value's sign
// becomes the candidate's axis direction; ClassUnknown is inferred
// from the input name.
func (m *Mapper) Intercept(class hid.Class, input string, value float64) {
	if m.state != AwaitingRebind {
		return
	}
	if !m.cfg.AcceptCombinations && strings.Contains(input, "-") {
		return
	}
	if class == hid.ClassUnknown {
		class = inferClass(input)
	}
	dir := 0
	if value > 0 {
		dir = 1
	} else if value < 0 {
		dir = -1
	}
	m.cand = candidate{input: input, class: class, dir: dir, ok: true}
}

// Release finalizes the pending candidate: it scans for a conflicting
// control (same input, overlapping group mask; axis bindings conflict
// only on the same direction) and either enters ConflictPending or
// commits the binding and returns to Idle.
func (m *Mapper) Release(input string) error {
	if m.state != AwaitingRebind {
		return nil
	}
	if !m.cand.ok {
		// Mouse presses can be swallowed while a rebind prompt is
		// up, so accept the release itself as the candidate.
		if strings.Contains(input, "mouse") && (m.cfg.AcceptCombinations || !strings.Contains(input, "-")) {
			m.cand = candidate{input: input, class: hid.ClassMouse, ok: true}
		} else {
			return nil
		}
	}
	if m.cand.class == hid.ClassUnknown {
		m.cand.class = inferClass(m.cand.input)
	}

	if conflict := m.findConflict(); conflict != "" {
		m.conflictKey = conflict
		m.state = ConflictPending
		m.unsubscribeCapture()
		m.log.Debug("binding conflict", "input", m.cand.input, "conflicting", conflict)
		return nil
	}
	return m.commitCandidate()
}

// ResolveConflict resolves a pending conflict: overwrite clears the
// conflicting control's binding and commits the candidate; cancel
// discards the candidate and returns to awaiting input.
func (m *Mapper) ResolveConflict(overwrite bool) error {
	if m.state != ConflictPending {
		return ErrNoConflict
	}
	if overwrite {
		m.conflictKey = ""
		return m.commitCandidate()
	}
	m.cand = candidate{}
	m.conflictKey = ""
	m.state = AwaitingRebind
	m.snapshotBaselines()
	m.subscribeCapture()
	return nil
}

// findConflict returns the control the candidate collides with, or "".
func (m *Mapper) findConflict() string {
	target := m.bindings[m.target]
	conflict := ""
	for _, control := range m.order {
		b := m.bindings[control]
		if b.Input != m.cand.input || control == m.target || !b.Group.Overlaps(target.Group) {
			continue
		}
		if IsAxisInput(b.Input) {
			for _, entry := range m.axes {
				if entry.positive == control && m.cand.dir > 0 {
					conflict = control
				}
				if entry.negative == control && m.cand.dir < 0 {
					conflict = control
				}
			}
		} else {
			conflict = control
		}
	}
	return conflict
}

// commitCandidate binds the captured input to the rebind target, exits
// capture and autosaves the mapping.
func (m *Mapper) commitCandidate() error {
	control := m.target
	b := m.bindings[control]
	if err := m.bindKey(control, m.cand.input, b.Kind, b.Callback, m.cand.class, m.cand.dir); err != nil {
		m.CancelRebind()
		return err
	}
	m.log.Info("rebound control", "control", control, "input", m.cand.input, "class", m.cand.class.String(), "direction", m.cand.dir)
	m.unsubscribeCapture()
	m.baselines = nil
	m.cand = candidate{}
	m.target = ""
	m.state = Idle
	return m.SaveCurrent()
}

func (m *Mapper) subscribeCapture() {
	bus := m.cfg.Bus
	m.captureSubs = append(m.captureSubs,
		bus.Subscribe(EventIntercept, func(args ...any) {
			if len(args) < 3 {
				return
			}
			class, _ := args[0].(hid.Class)
			input, ok := args[1].(string)
			if !ok {
				return
			}
			value, _ := args[2].(float64)
			m.Intercept(class, input, value)
		}),
		bus.Subscribe(EventInterceptRelease, func(args ...any) {
			if len(args) < 1 {
				return
			}
			input, ok := args[0].(string)
			if !ok {
				return
			}
			if err := m.Release(input); err != nil {
				m.log.Error("failed to finalize rebind", "input", input, "error", err)
			}
		}),
	)
}

func (m *Mapper) unsubscribeCapture() {
	for _, sub := range m.captureSubs {
		sub.Cancel()
	}
	m.captureSubs = nil
}

// snapshotBaselines records every pollable device's current axis
// values so capture reacts to movement, not resting positions.
func (m *Mapper) snapshotBaselines() {
	m.baselines = make(map[hid.Device]map[string]float64)
	if m.cfg.Devices == nil {
		return
	}
	for _, d := range m.cfg.Devices.All() {
		if d.Class().Pollable() {
			m.snapshotBaseline(d)
		}
	}
}

func (m *Mapper) snapshotBaseline(d hid.Device) {
	if m.baselines == nil {
		m.baselines = make(map[hid.Device]map[string]float64)
	}
	values := make(map[string]float64)
	for _, axis := range d.Axes() {
		values[axis] = d.AxisValue(axis)
	}
	m.baselines[d] = values
}

func inferClass(input string) hid.Class {
	if strings.HasPrefix(input, "mouse") {
		return hid.ClassMouse
	}
	return hid.ClassKeyboard
}
