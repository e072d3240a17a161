package keymap

import "github.com/thaumaturge/keymapper/hid"

// GroupMask partitions controls into conflict-detection scopes. Two
// controls may share a physical input only if their masks are
// disjoint.
type GroupMask uint32

// DefaultGroup is the mask controls get when none is specified.
const DefaultGroup GroupMask = 1

// Overlaps reports whether the two masks share any bits.
func (m GroupMask) Overlaps(o GroupMask) bool { return m&o != 0 }

// Binding is one control's registration: its current and default
// physical input plus everything needed to re-subscribe it.
type Binding struct {
	Control      string
	Input        string // current physical input, "" when unbound
	DefaultInput string
	Kind         Kind
	Callback     Callback
	Class        hid.Class
	DefaultClass hid.Class
	AxisDir      int // -1, 0 or +1 for axis bindings
	Group        GroupMask
}

// Bound reports whether the control currently has a physical input.
func (b *Binding) Bound() bool { return b.Input != "" }
