package hid

import (
	"sync"

	"github.com/thaumaturge/keymapper/event"
)

// Event names published on the bus when devices come and go. The
// device is passed as the single argument, typed as hid.Device.
const (
	EventConnect    = "connect-device"
	EventDisconnect = "disconnect-device"
)

// Manager tracks the set of currently connected devices and announces
// hot-plug changes on the event bus.
type Manager struct {
	bus *event.Bus

	mu      sync.Mutex
	devices []Device
}

func NewManager(bus *event.Bus) *Manager {
	return &Manager{bus: bus}
}

// Connect adds a device and publishes EventConnect. Adding the same
// device twice is a no-op.
func (m *Manager) Connect(d Device) {
	m.mu.Lock()
	for _, existing := range m.devices {
		if existing == d {
			m.mu.Unlock()
			return
		}
	}
	m.devices = append(m.devices, d)
	m.mu.Unlock()

	if m.bus != nil {
		m.bus.Publish(EventConnect, d)
	}
}

// Disconnect removes a device and publishes EventDisconnect.
func (m *Manager) Disconnect(d Device) {
	m.mu.Lock()
	found := false
	for i, existing := range m.devices {
		if existing == d {
			m.devices = append(m.devices[:i:i], m.devices[i+1:]...)
			found = true
			break
		}
	}
	m.mu.Unlock()

	if found && m.bus != nil {
		m.bus.Publish(EventDisconnect, d)
	}
}

// All returns a snapshot of the connected devices.
func (m *Manager) All() []Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Device, len(m.devices))
	copy(out, m.devices)
	return out
}

// Devices returns the connected devices of the given class.
func (m *Manager) Devices(class Class) []Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Device
	for _, d := range m.devices {
		if d.Class() == class {
			out = append(out, d)
		}
	}
	return out
}

// First returns the first connected device of the given class, or nil.
func (m *Manager) First(class Class) Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.devices {
		if d.Class() == class {
			return d
		}
	}
	return nil
}
