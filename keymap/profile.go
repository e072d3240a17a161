package keymap

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/thaumaturge/keymapper/hid"
	"github.com/thaumaturge/keymapper/profileio"
)

// SaveCurrent persists the live mapping to the binding file. Called
// automatically after every successful rebind; failures are notified
// and returned, never swallowed.
func (m *Mapper) SaveCurrent() error {
	return m.save(m.cfg.BindingFile)
}

func (m *Mapper) save(path string) error {
	if m.cfg.Save == nil {
		err := &ConfigError{Reason: "no save callback configured; bindings will not be saved"}
		m.notify(err.Error())
		return err
	}
	keys := make([]profileio.KeyRecord, 0, len(m.order))
	for _, control := range m.order {
		b := m.bindings[control]
		keys = append(keys, profileio.KeyRecord{
			Control:       control,
			Binding:       b.Input,
			DeviceClass:   b.Class.String(),
			AxisDirection: b.AxisDir,
		})
	}
	axes := make([]profileio.AxisRecord, 0, len(m.axes))
	for _, entry := range m.axes {
		axes = append(axes, profileio.AxisRecord{Axis: entry.axis, DeadZone: entry.deadZone})
	}
	if err := m.cfg.Save(keys, axes, path); err != nil {
		m.notify(fmt.Sprintf("failed to save key bindings to %s: %v", path, err))
		return fmt.Errorf("keymap: save %s: %w", path, err)
	}
	m.log.Debug("saved key mapping", "path", path, "controls", len(keys), "axes", len(axes))
	return nil
}

// loadMapping reads a snapshot and applies it. A missing file is
// "nothing to load". The load is transactional: every saved control
// name is resolved against the registry before any binding is
// mutated, so a stale name aborts with the current bindings intact.
func (m *Mapper) loadMapping(path string) error {
	if m.cfg.Load == nil {
		err := &ConfigError{Reason: "no load callback configured; bindings will not be loaded"}
		m.notify(err.Error())
		return err
	}
	keys, axes, err := m.cfg.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		m.notify(fmt.Sprintf("failed to load key bindings from %s: %v", path, err))
		return fmt.Errorf("keymap: load %s: %w", path, err)
	}

	type staged struct {
		rec   profileio.KeyRecord
		class hid.Class
	}
	plan := make([]staged, 0, len(keys))
	for _, rec := range keys {
		if _, ok := m.bindings[rec.Control]; !ok {
			err := fmt.Errorf("%w: saved profile names control %q", ErrUnknownControl, rec.Control)
			m.notify(err.Error())
			return err
		}
		class := hid.ClassUnknown
		if rec.DeviceClass != "" {
			parsed, perr := hid.ParseClass(rec.DeviceClass)
			if perr != nil {
				m.notify(fmt.Sprintf("profile %s: %v", path, perr))
				return fmt.Errorf("keymap: load %s: %w", path, perr)
			}
			class = parsed
		}
		plan = append(plan, staged{rec: rec, class: class})
	}

	// Dead-zones are restored first; bindKey re-links controls and
	// devices into the entries.
	m.axes = m.axes[:0]
	for _, rec := range axes {
		m.axes = append(m.axes, &axisEntry{axis: rec.Axis, deadZone: rec.DeadZone})
	}
	for _, s := range plan {
		b := m.bindings[s.rec.Control]
		if err := m.bindKey(s.rec.Control, s.rec.Binding, b.Kind, b.Callback, s.class, s.rec.AxisDirection); err != nil {
			return err
		}
	}
	m.log.Info("loaded key mapping", "path", path, "controls", len(plan))
	return nil
}

// Profiles returns the discovered profile names, sorted.
func (m *Mapper) Profiles() []string {
	names := make([]string, 0, len(m.profiles))
	for name := range m.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// discoverProfiles re-scans both profile directories, merging into the
// known set.
func (m *Mapper) discoverProfiles() {
	if m.cfg.Store == nil {
		return
	}
	found, err := m.cfg.Store.Discover(m.ActiveFileBase())
	if err != nil {
		m.log.Warn("profile discovery failed", "error", err)
		return
	}
	for name, path := range found {
		m.profiles[name] = path
	}
}

// LoadProfile applies a previously saved profile and persists it as
// the live mapping. Controls absent from the profile keep their
// current binding.
func (m *Mapper) LoadProfile(name string) error {
	m.discoverProfiles()
	path, ok := m.profiles[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	if err := m.loadMapping(path); err != nil {
		return err
	}
	return m.SaveCurrent()
}

// SaveProfile snapshots the current mapping as a named user profile.
func (m *Mapper) SaveProfile(name string) error {
	if m.cfg.Store == nil {
		err := &ConfigError{Reason: "no profile store configured"}
		m.notify(err.Error())
		return err
	}
	if err := m.save(m.cfg.Store.UserPath(name)); err != nil {
		return err
	}
	m.discoverProfiles()
	return nil
}
