// Package setup persists the values collected by the first-run wizard. Each
// completed wizard step commits immediately; aborting a later step leaves
// earlier commits in place.
package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store reads and writes the setup file. A missing file means the tracker has
// never been initialized.
type Store struct {
	Path string
}

// DefaultPath places the setup file under the user config directory.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".featboard"
	}
	return filepath.Join(base, "featboard", "setup")
}

// KeyInitialized is committed by the last first-run wizard step. Its
// presence, not the file's, decides whether setup has completed: credential
// updates alone must not mark the tracker as initialized.
const KeyInitialized = "initialized"

// Initialized reports whether the first-run wizard has completed.
func (s Store) Initialized() bool {
	values, err := s.Values()
	if err != nil {
		return false
	}
	_, ok := values[KeyInitialized]
	return ok
}

// Values reads all committed key/value pairs.
func (s Store) Values() (map[string]string, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values, nil
}

// Commit writes a single key, preserving everything already committed.
func (s Store) Commit(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("setup key must not be empty")
	}
	values, err := s.Values()
	if err != nil {
		return err
	}
	values[key] = value
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, values[k])
	}
	return os.WriteFile(s.Path, []byte(b.String()), 0o644)
}

// Reset deletes all committed state. There is no undo.
func (s Store) Reset() error {
	err := os.Remove(s.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
