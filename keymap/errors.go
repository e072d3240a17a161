package keymap

import (
	"errors"
	"fmt"
)

var (
	// ErrSetupDone is returned when Register is called after Setup.
	ErrSetupDone = errors.New("keymap: cannot register controls after setup")
	// ErrDuplicateControl is returned when a control name is
	// registered twice.
	ErrDuplicateControl = errors.New("keymap: duplicate control name")
	// ErrUnknownControl is returned for operations naming a control
	// that was never registered, including stale names in loaded
	// profiles.
	ErrUnknownControl = errors.New("keymap: unknown control")
	// ErrUnknownProfile is returned when loading a profile that was
	// not discovered in either profile directory.
	ErrUnknownProfile = errors.New("keymap: unknown profile")
	// ErrNoConflict is returned by ResolveConflict outside the
	// ConflictPending state.
	ErrNoConflict = errors.New("keymap: no binding conflict pending")
)

// ConfigError reports a fatal registration problem, such as a missing
// callback for an event-driven binding kind or an absent save/load
// collaborator.
type ConfigError struct {
	Control string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Control == "" {
		return fmt.Sprintf("keymap: %s", e.Reason)
	}
	return fmt.Sprintf("keymap: control %q: %s", e.Control, e.Reason)
}
