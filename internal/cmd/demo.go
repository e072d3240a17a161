package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/thaumaturge/keymapper/event"
	"github.com/thaumaturge/keymapper/hid"
	"github.com/thaumaturge/keymapper/hid/virtual"
	"github.com/thaumaturge/keymapper/keymap"
)

// DemoCmd runs an interactive rebinding loop on a raw terminal with a
// virtual gamepad standing in for real hardware. Terminal input has no
// key-up events, so held keyboard controls pulse; the virtual axis
// shows continuous held behavior instead.
type DemoCmd struct {
	StoreFlags  `embed:""`
	BindingFile string `help:"Live binding file" type:"path"`
	SignedAxes  bool   `help:"Held axis controls report signed values"`
}

func (c *DemoCmd) Run(logger *slog.Logger) error {
	store, err := c.store()
	if err != nil {
		return err
	}
	codec, err := c.codec()
	if err != nil {
		return err
	}
	bindingFile := c.BindingFile
	if bindingFile == "" {
		bindingFile = filepath.Join(store.UserDir, "demo-bindings"+store.Ext)
	}

	bus := event.NewBus()
	devices := hid.NewManager(bus)

	dev, err := hid.NewDevice("gamepad", "demo-pad")
	if err != nil {
		return err
	}
	pad, ok := dev.(*virtual.Device)
	if !ok {
		return fmt.Errorf("gamepad backend returned unexpected device type %T", dev)
	}

	mapper, err := keymap.New(keymap.Config{
		BindingFile: bindingFile,
		Store:       store,
		Save:        codec.Save,
		Load:        codec.Load,
		Bus:         bus,
		Devices:     devices,
		SignedAxes:  c.SignedAxes,
		Notify:      func(msg string) { fmt.Printf("\r\n!! %s\r\n", msg) },
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer mapper.Close()

	jump := keymap.Single(func(control string, kind keymap.Kind) {
		fmt.Printf("\r\n** %s (%s)\r\n", control, kind)
	})
	fire := keymap.Pair{
		OnPress:   func(control string) { fmt.Printf("\r\n** %s down\r\n", control) },
		OnRelease: func(control string) { fmt.Printf("\r\n** %s up\r\n", control) },
	}

	controls := []string{"move-forward", "move-back", "jump", "fire", "lean-left", "lean-right"}
	regs := []error{
		mapper.Register("move-forward", "w", hid.ClassKeyboard, keymap.Held, nil, 0, 0),
		mapper.Register("move-back", "s", hid.ClassKeyboard, keymap.Held, nil, 0, 0),
		mapper.Register("jump", "space", hid.ClassKeyboard, keymap.Pressed, jump, 0, 0),
		mapper.Register("fire", "f", hid.ClassKeyboard, keymap.PressedAndReleased, fire, 0, 0),
		mapper.Register("lean-left", keymap.AxisInput("left_x"), hid.ClassGamepad, keymap.Held, nil, -1, 0),
		mapper.Register("lean-right", keymap.AxisInput("left_x"), hid.ClassGamepad, keymap.Held, nil, 1, 0),
	}
	for _, rerr := range regs {
		if rerr != nil {
			return rerr
		}
	}

	devices.Connect(pad)
	if err := mapper.Setup(); err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("terminal raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	fmt.Print("keys: w/s/space/f play, ,/. move pad axis, z centers, 1-6 rebind, y/n resolve conflict, p save profile, q quit\r\n")

	keyCh := make(chan string, 16)
	go func() {
		buf := make([]byte, 64)
		for {
			n, rerr := os.Stdin.Read(buf)
			if rerr != nil {
				close(keyCh)
				return
			}
			for _, key := range decodeKeys(buf[:n]) {
				keyCh <- key
			}
		}
	}()

	ticker := time.NewTicker(keymap.DefaultFrameInterval)
	defer ticker.Stop()
	last := time.Now()
	axisX := 0.0

	for {
		select {
		case key, open := <-keyCh:
			if !open {
				return nil
			}
			if done := c.handleKey(mapper, pad, bus, key, &axisX); done {
				fmt.Print("\r\n")
				return nil
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if uerr := mapper.Update(dt); uerr != nil {
				logger.Error("frame update failed", "error", uerr)
			}
			renderState(mapper, controls, axisX)
		}
	}
}

func (c *DemoCmd) handleKey(mapper *keymap.Mapper, pad *virtual.Device, bus *event.Bus, key string, axisX *float64) bool {
	switch mapper.State() {
	case keymap.ConflictPending:
		input, conflicting := mapper.Conflict()
		switch key {
		case "y":
			_ = mapper.ResolveConflict(true)
		case "n":
			_ = mapper.ResolveConflict(false)
		default:
			fmt.Printf("\r\n%q is bound to %q; y to overwrite, n to pick another\r\n", input, conflicting)
		}
		return false
	case keymap.AwaitingRebind:
		if key == "escape" {
			mapper.CancelRebind()
			return false
		}
		mapper.Intercept(hid.ClassKeyboard, key, 0)
		_ = mapper.Release(key)
		return false
	}

	switch key {
	case "q", "ctrl-c":
		return true
	case ",":
		*axisX -= 0.25
	case ".":
		*axisX += 0.25
	case "z":
		*axisX = 0
	case "p":
		if err := mapper.SaveProfile("demo"); err == nil {
			fmt.Printf("\r\nsaved profile %q (known: %s)\r\n", "demo", strings.Join(mapper.Profiles(), ", "))
		}
	case "1", "2", "3", "4", "5", "6":
		idx := int(key[0] - '1')
		names := mapper.Controls()
		if idx < len(names) {
			if err := mapper.BeginRebind(names[idx]); err == nil {
				fmt.Printf("\r\npress a key for %q (esc cancels)\r\n", names[idx])
			}
		}
	default:
		virtual.Tap(bus, key)
	}
	if *axisX > 1 {
		*axisX = 1
	}
	if *axisX < -1 {
		*axisX = -1
	}
	pad.SetAxis("left_x", *axisX)
	return false
}

func renderState(mapper *keymap.Mapper, controls []string, axisX float64) {
	var b strings.Builder
	fmt.Fprintf(&b, "\r[%s] axis % .2f |", mapper.State(), axisX)
	for _, control := range controls {
		fmt.Fprintf(&b, " %s=% .2f", control, mapper.Value(control))
	}
	fmt.Print(b.String(), "   ")
}
