package keymap

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaumaturge/keymapper/event"
	"github.com/thaumaturge/keymapper/hid"
	"github.com/thaumaturge/keymapper/hid/virtual"
	"github.com/thaumaturge/keymapper/profileio"
)

func rebindTo(t *testing.T, m *Mapper, control, input string) {
	t.Helper()
	require.NoError(t, m.BeginRebind(control))
	m.Intercept(hid.ClassKeyboard, input, 1)
	require.NoError(t, m.Release(input))
	require.Equal(t, Idle, m.State())
}

func TestSetupWithMissingFileKeepsDefaults(t *testing.T) {
	fx := newFixture(t, nil)
	require.NoError(t, fx.mapper.Register("jump", "space", hid.ClassKeyboard, Held, nil, 0, 0))

	require.NoError(t, fx.mapper.Setup())

	b, _ := fx.mapper.Current("jump")
	assert.Equal(t, "space", b.Input)
	// Setup writes the live mapping back out.
	assert.Equal(t, "space", fx.mem.binding(t, testBindingFile, "jump").Binding)
}

func TestSetupLoadsSavedMapping(t *testing.T) {
	fx := newFixture(t, nil)
	require.NoError(t, fx.mapper.Register("jump", "space", hid.ClassKeyboard, Held, nil, 0, 0))
	require.NoError(t, fx.mapper.Setup())
	rebindTo(t, fx.mapper, "jump", "e")

	// A fresh mapper over the same storage picks up the rebind.
	bus := event.NewBus()
	m, err := New(Config{
		BindingFile: testBindingFile,
		Save:        fx.mem.save,
		Load:        fx.mem.load,
		Bus:         bus,
		Logger:      discardLogger(),
	})
	require.NoError(t, err)
	require.NoError(t, m.Register("jump", "space", hid.ClassKeyboard, Held, nil, 0, 0))
	require.NoError(t, m.Setup())

	b, _ := m.Current("jump")
	assert.Equal(t, "e", b.Input)
	bus.Publish("e")
	assert.Equal(t, 1.0, m.Value("jump"))
}

func TestLoadAbortsOnStaleControl(t *testing.T) {
	fx := newFixture(t, nil)
	fx.mem.files[testBindingFile] = memSnapshot{keys: []profileio.KeyRecord{
		{Control: "warp", Binding: "x", DeviceClass: "keyboard"},
	}}
	require.NoError(t, fx.mapper.Register("jump", "space", hid.ClassKeyboard, Held, nil, 0, 0))

	err := fx.mapper.Setup()
	require.ErrorIs(t, err, ErrUnknownControl)

	// Nothing was mutated by the failed load.
	b, _ := fx.mapper.Current("jump")
	assert.Equal(t, "space", b.Input)
}

func TestLoadRejectsUnknownDeviceClass(t *testing.T) {
	fx := newFixture(t, nil)
	fx.mem.files[testBindingFile] = memSnapshot{keys: []profileio.KeyRecord{
		{Control: "jump", Binding: "x", DeviceClass: "toaster"},
	}}
	require.NoError(t, fx.mapper.Register("jump", "space", hid.ClassKeyboard, Held, nil, 0, 0))

	assert.Error(t, fx.mapper.Setup())
	b, _ := fx.mapper.Current("jump")
	assert.Equal(t, "space", b.Input)
}

func TestSaveFailureNotifies(t *testing.T) {
	var notified []string
	fx := newFixture(t, func(c *Config) {
		c.Notify = func(msg string) { notified = append(notified, msg) }
	})
	require.NoError(t, fx.mapper.Register("jump", "space", hid.ClassKeyboard, Held, nil, 0, 0))

	diskFull := errors.New("disk full")
	fx.mem.failSave = diskFull

	err := fx.mapper.SaveCurrent()
	require.ErrorIs(t, err, diskFull)
	require.Len(t, notified, 1)
	assert.Contains(t, notified[0], testBindingFile)
}

func TestMissingSaveCallback(t *testing.T) {
	fx := newFixture(t, func(c *Config) { c.Save = nil })
	var cfgErr *ConfigError
	assert.ErrorAs(t, fx.mapper.SaveCurrent(), &cfgErr)
}

func TestMissingLoadCallback(t *testing.T) {
	fx := newFixture(t, func(c *Config) { c.Load = nil })
	var cfgErr *ConfigError
	assert.ErrorAs(t, fx.mapper.Setup(), &cfgErr)
}

func TestSaveProfileWithoutStore(t *testing.T) {
	fx := newFixture(t, nil)
	var cfgErr *ConfigError
	assert.ErrorAs(t, fx.mapper.SaveProfile("alt"), &cfgErr)
}

// storeFixture builds a mapper persisting through the TOML codec into
// real profile directories.
func storeFixture(t *testing.T) (*Mapper, *profileio.Store) {
	t.Helper()
	root := t.TempDir()
	store := &profileio.Store{
		DefaultDir: filepath.Join(root, "default"),
		UserDir:    filepath.Join(root, "user"),
	}
	m, err := New(Config{
		BindingFile: filepath.Join(store.UserDir, "bindings"+profileio.DefaultExt),
		Store:       store,
		Save:        profileio.SaveTOML,
		Load:        profileio.LoadTOML,
		Bus:         event.NewBus(),
		Logger:      discardLogger(),
	})
	require.NoError(t, err)
	require.NoError(t, m.Register("jump", "space", hid.ClassKeyboard, Held, nil, 0, 0))
	require.NoError(t, m.Register("fire", "f", hid.ClassKeyboard, Held, nil, 0, 0))
	require.NoError(t, m.Setup())
	return m, store
}

func TestProfileSaveLoadRoundTrip(t *testing.T) {
	m, _ := storeFixture(t)

	rebindTo(t, m, "jump", "e")
	require.NoError(t, m.SaveProfile("alt"))
	assert.Contains(t, m.Profiles(), "alt")

	rebindTo(t, m, "jump", "g")
	require.NoError(t, m.LoadProfile("alt"))

	b, _ := m.Current("jump")
	assert.Equal(t, "e", b.Input)
	fire, _ := m.Current("fire")
	assert.Equal(t, "f", fire.Input, "untouched control survives the round trip")
}

func TestLoadProfileUnknownName(t *testing.T) {
	m, _ := storeFixture(t)
	assert.ErrorIs(t, m.LoadProfile("nope"), ErrUnknownProfile)
}

func TestProfileDiscoveryExcludesLiveBindingFile(t *testing.T) {
	m, _ := storeFixture(t)
	require.NoError(t, m.SaveProfile("alt"))

	names := m.Profiles()
	assert.Contains(t, names, "alt")
	assert.NotContains(t, names, "bindings")
}

func TestDefaultProfileShadowedByUserProfile(t *testing.T) {
	m, store := storeFixture(t)

	// Ship a default profile binding jump to "d".
	require.NoError(t, profileio.SaveTOML([]profileio.KeyRecord{
		{Control: "jump", Binding: "d", DeviceClass: "keyboard"},
		{Control: "fire", Binding: "f", DeviceClass: "keyboard"},
	}, nil, filepath.Join(store.DefaultDir, "alt"+profileio.DefaultExt)))

	require.NoError(t, m.LoadProfile("alt"))
	b, _ := m.Current("jump")
	assert.Equal(t, "d", b.Input)

	// A user profile of the same name wins.
	rebindTo(t, m, "jump", "u")
	require.NoError(t, m.SaveProfile("alt"))
	rebindTo(t, m, "jump", "g")
	require.NoError(t, m.LoadProfile("alt"))
	b, _ = m.Current("jump")
	assert.Equal(t, "u", b.Input)
}

func TestProfilePersistsAxisDeadZones(t *testing.T) {
	fx := newFixture(t, nil)
	fx.devices.Connect(virtual.NewGamepad("pad0"))
	require.NoError(t, fx.mapper.Register("lean-left", AxisInput("left_x"), hid.ClassGamepad, Held, nil, -1, 0))
	require.NoError(t, fx.mapper.Setup())
	fx.mapper.SetDeadZoneForAxis("left_x", 0.42)
	require.NoError(t, fx.mapper.SaveCurrent())

	snap := fx.mem.files[testBindingFile]
	require.Len(t, snap.axes, 1)
	assert.Equal(t, "left_x", snap.axes[0].Axis)
	assert.InDelta(t, 0.42, snap.axes[0].DeadZone, 1e-9)

	rec := fx.mem.binding(t, testBindingFile, "lean-left")
	assert.Equal(t, AxisInput("left_x"), rec.Binding)
	assert.Equal(t, -1, rec.AxisDirection)
	assert.Equal(t, "gamepad", rec.DeviceClass)
}
