// Package keymap implements the binding registry and interception
// state machine: abstract controls mapped to physical inputs, with
// interactive rebinding, group-masked conflict detection, axis
// pairing with dead-zones, and named profile persistence.
//
// The mapper is frame-driven and single-threaded: every state
// transition happens either inside an event-bus callback or inside
// Update, and the host is expected to publish input events and drive
// Update from the same goroutine (the Runner does the latter).
package keymap

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"

	"github.com/thaumaturge/keymapper/event"
	"github.com/thaumaturge/keymapper/hid"
	"github.com/thaumaturge/keymapper/profileio"
)

// State is the rebind state machine's current phase.
type State int

const (
	// Idle is normal operation: polling drives the control-state
	// table and bound callbacks fire.
	Idle State = iota
	// AwaitingRebind means a rebind was requested and raw input is
	// being captured; the first qualifying press becomes the
	// candidate.
	AwaitingRebind
	// ConflictPending means the candidate collides with another
	// control and the user must choose to overwrite or cancel.
	ConflictPending
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingRebind:
		return "awaiting-rebind"
	case ConflictPending:
		return "conflict-pending"
	default:
		return "unknown"
	}
}

// DefaultDeadZone is the dead-zone threshold new axis entries start
// with.
const DefaultDeadZone = 0.3

// Config bundles the external collaborators and policy flags a Mapper
// needs. Bus and BindingFile are required.
type Config struct {
	// BindingFile is the live binding file the current mapping is
	// saved to after every successful rebind.
	BindingFile string
	// Store locates default and user profile directories. Optional;
	// without it profile discovery is disabled.
	Store *profileio.Store
	// Save and Load perform the actual byte I/O for profiles.
	Save profileio.SaveFunc
	Load profileio.LoadFunc

	// Bus carries input press/release events and device hot-plug
	// notifications.
	Bus *event.Bus
	// Devices answers which physical devices are connected. Optional
	// for keyboard/mouse-only games.
	Devices *hid.Manager

	// AcceptCombinations admits modifier-combination inputs (those
	// containing '-') during rebind capture.
	AcceptCombinations bool
	// SignedAxes makes held axis controls store the raw signed value
	// instead of its absolute value.
	SignedAxes bool
	// DeadZone overrides DefaultDeadZone for new axis entries.
	DeadZone float64

	// StateCallback, when set, is invoked whenever a held control
	// crosses between held and not held.
	StateCallback func(control string, held bool)
	// Notify receives user-facing error messages (the host shows
	// them however it likes). Errors are still returned to callers.
	Notify func(msg string)

	Logger *slog.Logger
}

type candidate struct {
	input string
	class hid.Class
	dir   int
	ok    bool
}

// Mapper owns the control-state table, the binding registry and the
// rebind state machine.
type Mapper struct {
	cfg Config
	log *slog.Logger

	values   map[string]float64
	bindings map[string]*Binding
	order    []string
	axes     []*axisEntry
	inUse    map[hid.Device]struct{}

	subs    map[string][]event.Subscription
	sysSubs []event.Subscription

	state       State
	target      string
	cand        candidate
	conflictKey string
	captureSubs []event.Subscription
	baselines   map[hid.Device]map[string]float64

	profiles map[string]string
	deadZone float64
	setup    bool
}

// New creates a Mapper. Controls are added with Register, then Setup
// loads the saved mapping and arms the state machine.
func New(cfg Config) (*Mapper, error) {
	if cfg.Bus == nil {
		return nil, &ConfigError{Reason: "event bus is required"}
	}
	if cfg.BindingFile == "" {
		return nil, &ConfigError{Reason: "binding file path is required"}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	deadZone := cfg.DeadZone
	if deadZone == 0 {
		deadZone = DefaultDeadZone
	}
	m := &Mapper{
		cfg:      cfg,
		log:      logger,
		values:   make(map[string]float64),
		bindings: make(map[string]*Binding),
		inUse:    make(map[hid.Device]struct{}),
		subs:     make(map[string][]event.Subscription),
		profiles: make(map[string]string),
		deadZone: deadZone,
	}
	m.sysSubs = append(m.sysSubs,
		cfg.Bus.Subscribe(hid.EventConnect, m.onDeviceConnect),
		cfg.Bus.Subscribe(hid.EventDisconnect, m.onDeviceDisconnect),
	)
	return m, nil
}

// Register adds a control with its default binding. It must be called
// before Setup; duplicate control names are rejected.
func (m *Mapper) Register(control, defaultInput string, class hid.Class, kind Kind, cb Callback, axisDir int, group GroupMask) error {
	if m.setup {
		return fmt.Errorf("%w: %q", ErrSetupDone, control)
	}
	if _, exists := m.bindings[control]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateControl, control)
	}
	if group == 0 {
		group = DefaultGroup
	}
	m.values[control] = 0
	m.bindings[control] = &Binding{
		Control:      control,
		DefaultInput: defaultInput,
		DefaultClass: class,
		Kind:         kind,
		Callback:     cb,
		Group:        group,
	}
	m.order = append(m.order, control)
	if err := m.bindKey(control, defaultInput, kind, cb, class, axisDir); err != nil {
		return err
	}
	m.log.Debug("registered control", "control", control, "default", defaultInput, "kind", kind.String(), "class", class.String())
	return nil
}

// Setup finishes initialisation after all controls are registered: it
// discovers profiles, loads the live binding file (a missing file
// keeps the defaults) and saves the result back.
func (m *Mapper) Setup() error {
	if m.setup {
		return nil
	}
	if m.cfg.Store != nil {
		if err := m.cfg.Store.EnsureDirs(); err != nil {
			m.log.Warn("failed to create profile directories", "error", err)
		}
		m.discoverProfiles()
	}
	if err := m.loadMapping(m.cfg.BindingFile); err != nil {
		return err
	}
	if err := m.SaveCurrent(); err != nil {
		return err
	}
	m.setup = true
	m.state = Idle
	return nil
}

// Value returns a control's live value in [-1, 1] ({0, 1} for binary
// controls). Unregistered controls read as 0.
func (m *Mapper) Value(control string) float64 { return m.values[control] }

// IsHeld reports whether a control's value is past the half-travel
// threshold.
func (m *Mapper) IsHeld(control string) bool { return math.Abs(m.values[control]) > 0.5 }

// CancelAll marks every control as unpressed, for focus loss and
// similar host events.
func (m *Mapper) CancelAll() {
	for control := range m.values {
		m.values[control] = 0
	}
}

// Controls returns the control names in registration order.
func (m *Mapper) Controls() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Current returns a copy of a control's binding entry.
func (m *Mapper) Current(control string) (Binding, bool) {
	b, ok := m.bindings[control]
	if !ok {
		return Binding{}, false
	}
	return *b, true
}

// State returns the rebind state machine's current phase.
func (m *Mapper) State() State { return m.state }

func (m *Mapper) notify(msg string) {
	m.log.Error(msg)
	if m.cfg.Notify != nil {
		m.cfg.Notify(msg)
	}
}

// Close tears down every event subscription and clears the binding
// registry. The mapper is unusable afterwards.
func (m *Mapper) Close() {
	m.CancelRebind()
	for _, sub := range m.sysSubs {
		sub.Cancel()
	}
	m.sysSubs = nil
	for control, list := range m.subs {
		for _, sub := range list {
			sub.Cancel()
		}
		delete(m.subs, control)
	}
	m.bindings = make(map[string]*Binding)
	m.values = make(map[string]float64)
	m.order = nil
	m.axes = nil
	m.inUse = make(map[hid.Device]struct{})
}

// onDeviceConnect wires a hot-plugged device into any bindings that
// reference its class and, mid-capture, snapshots its axis baseline.
func (m *Mapper) onDeviceConnect(args ...any) {
	d, ok := firstDevice(args)
	if !ok {
		return
	}
	for _, b := range m.bindings {
		if b.Bound() && b.Class == d.Class() {
			m.addUsedDevice(d.Class())
			break
		}
	}
	if m.state == AwaitingRebind {
		m.snapshotBaseline(d)
	}
	m.log.Debug("device connected", "device", d.Name(), "class", d.Class().String())
}

// onDeviceDisconnect discards the device's capture baseline and drops
// it from the in-use table.
func (m *Mapper) onDeviceDisconnect(args ...any) {
	d, ok := firstDevice(args)
	if !ok {
		return
	}
	if m.baselines != nil {
		delete(m.baselines, d)
	}
	if _, used := m.inUse[d]; used {
		m.removeUsedDevice(d.Class())
	}
	m.log.Debug("device disconnected", "device", d.Name(), "class", d.Class().String())
}

func firstDevice(args []any) (hid.Device, bool) {
	if len(args) == 0 {
		return nil, false
	}
	d, ok := args[0].(hid.Device)
	return d, ok
}

// addUsedDevice ensures a connected device of the class is in the
// in-use table and wires it into matching axis entries. Returns nil
// when no such device is connected.
func (m *Mapper) addUsedDevice(class hid.Class) hid.Device {
	for d := range m.inUse {
		if d.Class() == class {
			return d
		}
	}
	if m.cfg.Devices == nil {
		return nil
	}
	d := m.cfg.Devices.First(class)
	if d == nil {
		return nil
	}
	m.inUse[d] = struct{}{}
	for _, entry := range m.axes {
		if entry.classPos == class {
			entry.devicePos = d
		}
		if entry.classNeg == class {
			entry.deviceNeg = d
		}
	}
	return d
}

// removeUsedDevice drops every in-use device of the class and clears
// axis references to it. Keyboard and mouse are never tracked.
func (m *Mapper) removeUsedDevice(class hid.Class) {
	if class == hid.ClassKeyboard || class == hid.ClassMouse {
		return
	}
	var drop []hid.Device
	for d := range m.inUse {
		if d.Class() == class {
			drop = append(drop, d)
		}
	}
	for _, d := range drop {
		for _, entry := range m.axes {
			if entry.devicePos == d {
				entry.devicePos = nil
			}
			if entry.deviceNeg == d {
				entry.deviceNeg = nil
			}
		}
		delete(m.inUse, d)
	}
}

// BindingLabel formats a binding for display, marking axis directions
// with a +/- suffix.
func BindingLabel(input string, dir int) string {
	if input == "" {
		return "<none set>"
	}
	switch {
	case dir > 0:
		return input + " +"
	case dir < 0:
		return input + " -"
	default:
		return input
	}
}

// ActiveFileBase returns the basename of the live binding file, which
// profile discovery excludes.
func (m *Mapper) ActiveFileBase() string { return filepath.Base(m.cfg.BindingFile) }
