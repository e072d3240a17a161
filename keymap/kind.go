package keymap

// Kind selects how a control's binding delivers input to the game.
type Kind int

const (
	// Released invokes the callback once when the input is released.
	Released Kind = iota
	// Pressed invokes the callback once when the input is pressed.
	Pressed
	// PressedAndReleased invokes callbacks on both edges.
	PressedAndReleased
	// Held exposes the input's live value through the control-state
	// table for per-frame polling; no callback is involved.
	Held
)

func (k Kind) String() string {
	switch k {
	case Released:
		return "released"
	case Pressed:
		return "pressed"
	case PressedAndReleased:
		return "pressed-and-released"
	case Held:
		return "held"
	default:
		return "unknown"
	}
}

// Callback is the tagged variant carried by event-driven binding
// kinds: either a Single function receiving the edge kind, or a Pair
// of per-edge functions.
type Callback interface{ isCallback() }

// Single is one callback invoked for every edge the binding kind
// covers; kind distinguishes press from release for
// PressedAndReleased bindings.
type Single func(control string, kind Kind)

func (Single) isCallback() {}

// Pair carries separate press and release callbacks for
// PressedAndReleased bindings.
type Pair struct {
	OnPress   func(control string)
	OnRelease func(control string)
}

func (Pair) isCallback() {}

// validateCallback enforces the callback contract for a binding kind
// at bind time, per the configuration-error rules.
func validateCallback(control string, kind Kind, cb Callback) error {
	switch kind {
	case Held:
		return nil
	case Pressed, Released:
		single, ok := cb.(Single)
		if !ok || single == nil {
			return &ConfigError{Control: control, Reason: "binding kind " + kind.String() + " requires a Single callback"}
		}
		return nil
	case PressedAndReleased:
		switch c := cb.(type) {
		case Single:
			if c == nil {
				return &ConfigError{Control: control, Reason: "nil callback for pressed-and-released binding"}
			}
			return nil
		case Pair:
			if c.OnPress == nil || c.OnRelease == nil {
				return &ConfigError{Control: control, Reason: "pressed-and-released binding requires both press and release callbacks"}
			}
			return nil
		default:
			return &ConfigError{Control: control, Reason: "missing callback for pressed-and-released binding"}
		}
	default:
		return &ConfigError{Control: control, Reason: "unknown binding kind"}
	}
}
