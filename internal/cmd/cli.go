// Package cmd defines the keymapctl command tree.
package cmd

import (
	"fmt"

	"github.com/thaumaturge/keymapper/internal/configpaths"
	"github.com/thaumaturge/keymapper/profileio"
)

// CLI is the root command structure parsed by kong.
type CLI struct {
	Log    LogConfig `embed:"" prefix:"log."`
	Config string    `help:"Path to a config file (JSON/YAML/TOML)" type:"path"`

	Profiles ProfilesCmd   `cmd:"" help:"Inspect, convert and watch binding profiles"`
	Demo     DemoCmd       `cmd:"" help:"Interactive terminal rebinding demo"`
	Init     ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}

// LogConfig holds the logging flags shared by all commands.
type LogConfig struct {
	Level string `help:"Log level (debug|info|warn|error)" default:"info" env:"KEYMAPPER_LOG_LEVEL"`
	File  string `help:"Write logs to this file instead of the console" env:"KEYMAPPER_LOG_FILE"`
}

// StoreFlags configures where profile files are looked up. Empty
// directories fall back to the per-user config location.
type StoreFlags struct {
	DefaultDir string `help:"Directory holding shipped default profiles" env:"KEYMAPPER_DEFAULT_PROFILES"`
	UserDir    string `help:"Directory holding user profiles" env:"KEYMAPPER_USER_PROFILES"`
	Ext        string `help:"Profile file extension" default:".keys"`
	Format     string `help:"Profile codec" enum:"toml,yaml" default:"toml"`
}

func (f *StoreFlags) store() (*profileio.Store, error) {
	defaultDir, userDir := f.DefaultDir, f.UserDir
	if defaultDir == "" || userDir == "" {
		d, u, err := configpaths.DefaultProfileDirs()
		if err != nil {
			return nil, fmt.Errorf("resolving profile directories: %w", err)
		}
		if defaultDir == "" {
			defaultDir = d
		}
		if userDir == "" {
			userDir = u
		}
	}
	return &profileio.Store{DefaultDir: defaultDir, UserDir: userDir, Ext: f.Ext}, nil
}

func (f *StoreFlags) codec() (profileio.Codec, error) {
	codec, ok := profileio.CodecFor(f.Format)
	if !ok {
		return profileio.Codec{}, fmt.Errorf("unsupported profile format: %s", f.Format)
	}
	return codec, nil
}
