package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thaumaturge/keymapper/profileio"
)

// ProfilesCmd groups the profile tooling subcommands.
type ProfilesCmd struct {
	List    ProfilesList    `cmd:"" help:"List discovered profiles"`
	Show    ProfilesShow    `cmd:"" help:"Print the bindings stored in a profile"`
	Convert ProfilesConvert `cmd:"" help:"Convert a profile between TOML and YAML"`
	Watch   ProfilesWatch   `cmd:"" help:"Watch the profile directories and report changes"`
}

type ProfilesList struct {
	StoreFlags `embed:""`
	Active     string `help:"Basename of the live binding file to exclude"`
}

func (c *ProfilesList) Run(logger *slog.Logger) error {
	store, err := c.store()
	if err != nil {
		return err
	}
	found, err := store.Discover(c.Active)
	if err != nil {
		return err
	}
	names, err := store.Names(c.Active)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		logger.Info("no profiles found", "defaultDir", store.DefaultDir, "userDir", store.UserDir)
		return nil
	}
	for _, name := range names {
		fmt.Printf("%s\t%s\n", name, found[name])
	}
	return nil
}

type ProfilesShow struct {
	StoreFlags `embed:""`
	Name       string `arg:"" help:"Profile name (without extension)"`
}

func (c *ProfilesShow) Run(logger *slog.Logger) error {
	store, err := c.store()
	if err != nil {
		return err
	}
	codec, err := c.codec()
	if err != nil {
		return err
	}
	found, err := store.Discover("")
	if err != nil {
		return err
	}
	path, ok := found[c.Name]
	if !ok {
		return fmt.Errorf("profile %q not found", c.Name)
	}
	keys, axes, err := codec.Load(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	for _, rec := range keys {
		binding := rec.Binding
		if binding == "" {
			binding = "<none set>"
		}
		fmt.Printf("%-24s %-20s %-14s %+d\n", rec.Control, binding, rec.DeviceClass, rec.AxisDirection)
	}
	for _, rec := range axes {
		fmt.Printf("axis %-19s dead-zone %.2f\n", rec.Axis, rec.DeadZone)
	}
	logger.Debug("profile shown", "path", path, "controls", len(keys), "axes", len(axes))
	return nil
}

type ProfilesConvert struct {
	Src  string `arg:"" help:"Source profile file" type:"path"`
	Dst  string `arg:"" help:"Destination profile file" type:"path"`
	From string `help:"Source format" enum:"toml,yaml" default:"toml"`
	To   string `help:"Destination format" enum:"toml,yaml" default:"yaml"`
}

func (c *ProfilesConvert) Run(logger *slog.Logger) error {
	src, ok := profileio.CodecFor(c.From)
	if !ok {
		return fmt.Errorf("unsupported source format: %s", c.From)
	}
	dst, ok := profileio.CodecFor(c.To)
	if !ok {
		return fmt.Errorf("unsupported destination format: %s", c.To)
	}
	keys, axes, err := src.Load(c.Src)
	if err != nil {
		return fmt.Errorf("loading %s: %w", c.Src, err)
	}
	if err := dst.Save(keys, axes, c.Dst); err != nil {
		return fmt.Errorf("saving %s: %w", c.Dst, err)
	}
	logger.Info("converted profile", "src", c.Src, "dst", c.Dst, "controls", len(keys))
	return nil
}

type ProfilesWatch struct {
	StoreFlags `embed:""`
	Active     string `help:"Basename of the live binding file to exclude"`
}

func (c *ProfilesWatch) Run(logger *slog.Logger) error {
	store, err := c.store()
	if err != nil {
		return err
	}
	if err := store.EnsureDirs(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching profile directories", "defaultDir", store.DefaultDir, "userDir", store.UserDir)
	err = store.Watch(ctx, func() {
		names, nerr := store.Names(c.Active)
		if nerr != nil {
			logger.Error("profile re-discovery failed", "error", nerr)
			return
		}
		logger.Info("profiles changed", "profiles", names)
	})
	if err == context.Canceled {
		return nil
	}
	return err
}
