// Package configpaths resolves where keymapctl configuration and
// profile files live on each platform.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "keymapper"

// DefaultConfigDir returns the platform-specific configuration
// directory.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, appDirName), nil
		}
		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", appDirName), nil
		}
		return "", errors.New("HOME not set")
	}
}

// DefaultProfileDirs returns the default and user profile directories
// under the config dir.
func DefaultProfileDirs() (defaultDir, userDir string, err error) {
	base, err := DefaultConfigDir()
	if err != nil {
		return "", "", err
	}
	return filepath.Join(base, "profiles", "default"), filepath.Join(base, "profiles", "user"), nil
}

// DefaultBindingFile returns the live binding file path.
func DefaultBindingFile(ext string) (string, error) {
	base, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "bindings"+ext), nil
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// ConfigCandidatePaths builds candidate config paths per format. A
// user-supplied path is prioritized and routed to the loader matching
// its extension.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }

	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	wd, _ := os.Getwd()
	dirs := []string{wd}
	if dir, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	if runtime.GOOS != "windows" {
		dirs = append(dirs, filepath.Join("/etc", appDirName))
	}
	for _, dir := range dirs {
		for _, base := range []string{appDirName, "config"} {
			add(&jsonPaths, filepath.Join(dir, base+".json"))
			add(&yamlPaths, filepath.Join(dir, base+".yaml"))
			add(&yamlPaths, filepath.Join(dir, base+".yml"))
			add(&tomlPaths, filepath.Join(dir, base+".toml"))
		}
	}
	return
}
