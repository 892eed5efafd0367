package profile

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed builtin/*.md
var builtinFS embed.FS

// DefaultName is the profile used when none is configured
const DefaultName = "ensure"

// ErrUnknown is returned by Get for a name with no profile
var ErrUnknown = errors.New("unknown caller profile")

// Index holds every available profile by name. User profiles override
// built-in ones with the same name.
type Index struct {
	profiles map[string]*Profile
	dir      string
}

// DefaultDir returns ~/.config/intelligenn/profiles
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "intelligenn", "profiles"), nil
}

// NewIndex loads the built-in profiles and every <dir>/<name>/PROFILE.md.
// A missing dir is not an error; unreadable profiles are skipped.
func NewIndex(dir string) (*Index, error) {
	idx := &Index{
		profiles: make(map[string]*Profile),
		dir:      dir,
	}

	if err := idx.loadBuiltin(); err != nil {
		return nil, err
	}

	if dir == "" {
		return idx, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return idx, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		p, err := LoadFile(filepath.Join(dir, entry.Name(), "PROFILE.md"))
		if err != nil {
			continue
		}

		// Use directory name as fallback if no name in frontmatter
		if p.Name == "" {
			p.Name = entry.Name()
		}

		idx.profiles[p.Name] = p
	}

	return idx, nil
}

func (idx *Index) loadBuiltin() error {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return err
		}
		p, err := Parse(data)
		if err != nil {
			return fmt.Errorf("builtin profile %s: %w", entry.Name(), err)
		}
		if p.Name == "" {
			p.Name = strings.TrimSuffix(entry.Name(), ".md")
		}
		idx.profiles[p.Name] = p
	}
	return nil
}

// Get returns a profile by name. An empty name selects DefaultName.
func (idx *Index) Get(name string) (*Profile, error) {
	if name == "" {
		name = DefaultName
	}
	p, ok := idx.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, name)
	}
	return p, nil
}

// List returns all profile names, sorted
func (idx *Index) List() []string {
	result := make([]string, 0, len(idx.profiles))
	for name := range idx.profiles {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Dir returns the user profile directory
func (idx *Index) Dir() string {
	return idx.dir
}

// Count returns the number of loaded profiles
func (idx *Index) Count() int {
	return len(idx.profiles)
}
