package keymap

import (
	"github.com/thaumaturge/keymapper/event"
	"github.com/thaumaturge/keymapper/hid"
)

// bindKey commits a binding for a control: it releases the input from
// any other control whose conflict group overlaps, drops the control's
// previous subscriptions, subscribes fresh handlers for the binding
// kind and updates the axis table. Idempotent re-registration is the
// normal path for rebinds and profile loads.
func (m *Mapper) bindKey(control, input string, kind Kind, cb Callback, class hid.Class, axisDir int) error {
	b, ok := m.bindings[control]
	if !ok {
		return ErrUnknownControl
	}
	if input != "" {
		if err := validateCallback(control, kind, cb); err != nil {
			return err
		}
	}

	// Steal the input from overlapping controls, then clear this
	// control's own old binding.
	m.clearInput(input, axisDir, b.Group, control)
	m.unbindSelf(control)

	b.Input = input
	b.Kind = kind
	b.Callback = cb
	b.Class = class
	b.AxisDir = axisDir

	if input == "" {
		return nil
	}
	if !IsAxisInput(input) {
		m.subscribeControl(control, input, kind, cb)
	}
	if class != hid.ClassUnknown {
		device := m.addUsedDevice(class)
		if IsAxisInput(input) {
			m.upsertAxis(control, axisName(input), class, device, axisDir)
		}
	}
	return nil
}

// ClearBinding removes the physical input from whichever control(s)
// currently hold it, regardless of group mask, then prunes unused axis
// entries and devices.
func (m *Mapper) ClearBinding(input string, dir int) {
	m.clearInput(input, dir, 0, "")
}

// clearInput unbinds the controls currently holding input. A non-zero
// group limits button clearing to controls with overlapping masks
// (axis direction claims are structural and always stolen). exclude is
// skipped entirely.
func (m *Mapper) clearInput(input string, dir int, group GroupMask, exclude string) {
	if input == "" {
		return
	}

	var cleared []string
	if IsAxisInput(input) {
		name := axisName(input)
		for _, entry := range m.axes {
			if entry.axis != name {
				continue
			}
			if dir < 0 && entry.negative != "" && entry.negative != exclude {
				cleared = append(cleared, entry.negative)
				entry.negative = ""
				entry.classNeg = hid.ClassUnknown
				entry.deviceNeg = nil
			}
			if dir > 0 && entry.positive != "" && entry.positive != exclude {
				cleared = append(cleared, entry.positive)
				entry.positive = ""
				entry.classPos = hid.ClassUnknown
				entry.devicePos = nil
			}
		}
	} else {
		for _, control := range m.order {
			b := m.bindings[control]
			if b.Input != input || control == exclude {
				continue
			}
			if group != 0 && !b.Group.Overlaps(group) {
				continue
			}
			cleared = append(cleared, control)
		}
	}

	var staleClasses []hid.Class
	for _, control := range cleared {
		b := m.bindings[control]
		staleClasses = append(staleClasses, b.Class)
		m.dropSubscriptions(control)
		b.Input = ""
		b.Class = hid.ClassUnknown
		m.values[control] = 0
	}

	// Devices are pruned by re-scan: a class stays in use only while
	// some binding still references it.
	for _, class := range staleClasses {
		m.pruneClass(class)
	}

	m.pruneAxes()
}

// unbindSelf clears a single control's current binding without
// touching other holders of the same input.
func (m *Mapper) unbindSelf(control string) {
	b := m.bindings[control]
	if !b.Bound() {
		return
	}
	if IsAxisInput(b.Input) {
		name := axisName(b.Input)
		for _, entry := range m.axes {
			if entry.axis != name {
				continue
			}
			if entry.positive == control {
				entry.positive = ""
				entry.classPos = hid.ClassUnknown
				entry.devicePos = nil
			}
			if entry.negative == control {
				entry.negative = ""
				entry.classNeg = hid.ClassUnknown
				entry.deviceNeg = nil
			}
		}
	}
	class := b.Class
	m.dropSubscriptions(control)
	b.Input = ""
	b.Class = hid.ClassUnknown
	m.values[control] = 0
	m.pruneClass(class)
	m.pruneAxes()
}

// pruneClass drops the class's devices from the in-use table when no
// bound control references it any more.
func (m *Mapper) pruneClass(class hid.Class) {
	if class == hid.ClassUnknown {
		return
	}
	for _, b := range m.bindings {
		if b.Bound() && b.Class == class {
			return
		}
	}
	m.removeUsedDevice(class)
}

func (m *Mapper) dropSubscriptions(control string) {
	for _, sub := range m.subs[control] {
		sub.Cancel()
	}
	delete(m.subs, control)
}

// subscribeControl wires the bus handlers for a button binding. Axis
// bindings are poll-driven and get no subscriptions.
func (m *Mapper) subscribeControl(control, input string, kind Kind, cb Callback) {
	bus := m.cfg.Bus
	add := func(sub event.Subscription) {
		m.subs[control] = append(m.subs[control], sub)
	}

	switch kind {
	case Held:
		add(bus.Subscribe(input, func(...any) { m.setHeld(control, 1) }))
		add(bus.Subscribe(event.ReleaseName(input), func(...any) { m.setHeld(control, 0) }))
	case Pressed:
		single := cb.(Single)
		add(bus.Subscribe(input, func(...any) { single(control, Pressed) }))
	case Released:
		single := cb.(Single)
		add(bus.Subscribe(event.ReleaseName(input), func(...any) { single(control, Released) }))
	case PressedAndReleased:
		switch c := cb.(type) {
		case Single:
			add(bus.Subscribe(input, func(...any) { c(control, Pressed) }))
			add(bus.Subscribe(event.ReleaseName(input), func(...any) { c(control, Released) }))
		case Pair:
			add(bus.Subscribe(input, func(...any) { c.OnPress(control) }))
			add(bus.Subscribe(event.ReleaseName(input), func(...any) { c.OnRelease(control) }))
		}
	}
}

func (m *Mapper) setHeld(control string, value float64) {
	if m.cfg.StateCallback != nil {
		m.cfg.StateCallback(control, value != 0)
	}
	m.values[control] = value
}
