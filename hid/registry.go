package hid

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// BackendFunc creates a device instance for a backend kind. The name is
// the device name the caller wants, e.g. "pad0".
type BackendFunc func(name string) (Device, error)

var (
	backendRegistry   = make(map[string]BackendFunc)
	backendRegistryMu sync.RWMutex
)

// RegisterBackend registers a device backend for creation by kind.
// Intended to be called from backend package init() functions. Kind
// lookup is case-insensitive.
func RegisterBackend(kind string, fn BackendFunc) {
	backendRegistryMu.Lock()
	defer backendRegistryMu.Unlock()
	backendRegistry[strings.ToLower(kind)] = fn
}

// NewDevice creates a device through a registered backend.
func NewDevice(kind, name string) (Device, error) {
	backendRegistryMu.RLock()
	fn := backendRegistry[strings.ToLower(kind)]
	backendRegistryMu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("hid: unknown device backend %q", kind)
	}
	return fn(name)
}

// BackendKinds returns the registered backend kinds, sorted.
func BackendKinds() []string {
	backendRegistryMu.RLock()
	defer backendRegistryMu.RUnlock()
	kinds := make([]string, 0, len(backendRegistry))
	for kind := range backendRegistry {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
