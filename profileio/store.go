package profileio

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExt is the extension profile files are saved under.
const DefaultExt = ".keys"

// Store locates profile files on disk. Default profiles ship with the
// game; user profiles are written next to the live binding file. A
// user profile shadows a default profile of the same name.
type Store struct {
	DefaultDir string
	UserDir    string
	Ext        string // defaults to DefaultExt when empty
}

func (s *Store) ext() string {
	if s.Ext == "" {
		return DefaultExt
	}
	return s.Ext
}

// EnsureDirs creates both profile directories if they are missing.
func (s *Store) EnsureDirs() error {
	for _, dir := range []string{s.DefaultDir, s.UserDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// UserPath returns the path a user profile of the given name is saved
// to.
func (s *Store) UserPath(name string) string {
	return filepath.Join(s.UserDir, name+s.ext())
}

// Discover scans both directories for profile files, filtered by
// extension. The file named excludeBase (the live binding file) is
// skipped. Returns profile name -> path, with user entries shadowing
// defaults.
func (s *Store) Discover(excludeBase string) (map[string]string, error) {
	found := make(map[string]string)
	for _, dir := range []string{s.DefaultDir, s.UserDir} {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			base := entry.Name()
			if filepath.Ext(base) != s.ext() || base == excludeBase {
				continue
			}
			name := strings.TrimSuffix(base, s.ext())
			found[name] = filepath.Join(dir, base)
		}
	}
	return found, nil
}

// Names returns the discovered profile names, sorted.
func (s *Store) Names(excludeBase string) ([]string, error) {
	found, err := s.Discover(excludeBase)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
