// Package profile loads caller profiles: markdown files with YAML
// frontmatter describing who is calling and what they sell.
package profile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Metadata is the frontmatter of a profile file
type Metadata struct {
	Name        string `yaml:"name"`
	Caller      string `yaml:"caller"`
	Description string `yaml:"description"`
	// RebuttalStrategy is inserted into the objection handling brief
	RebuttalStrategy string `yaml:"rebuttal_strategy"`
	Path             string `yaml:"-"` // empty for built-in profiles
}

// Profile is a caller profile with its context body
type Profile struct {
	Metadata
	Body string // caller context handed to the prompt
}

// Parse splits frontmatter from body. A file without frontmatter is all body.
func Parse(data []byte) (*Profile, error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")

	if !strings.HasPrefix(content, "---\n") {
		return &Profile{Body: strings.TrimSpace(content)}, nil
	}

	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, fmt.Errorf("unterminated frontmatter")
	}

	var p Profile
	if err := yaml.Unmarshal([]byte(rest[:end]), &p.Metadata); err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	body := rest[end+len("\n---"):]
	p.Body = strings.TrimSpace(body)
	return &p, nil
}

// LoadFile reads a profile from disk.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.Path = path
	return p, nil
}

// CallerName returns the caller, falling back to the profile name.
func (p *Profile) CallerName() string {
	if p.Caller != "" {
		return p.Caller
	}
	return p.Name
}
