// Package output renders the zone model into server-specific text and
// publishes it all-or-nothing.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// Stage accumulates rendered files and publishes them in one shot, so
// a failed run never leaves a half-written output tree behind.
type Stage struct {
	names []string
	files map[string]string
}

func NewStage() *Stage {
	return &Stage{files: make(map[string]string)}
}

// Add registers one file under a path relative to the publish root.
func (s *Stage) Add(name, content string) {
	if _, ok := s.files[name]; !ok {
		s.names = append(s.names, name)
	}
	s.files[name] = content
}

// Publish writes every staged file into a fresh directory beside the
// target, then swaps the whole directory into place. Readers see either
// the previous tree or the complete new one, never a mix.
func (s *Stage) Publish(dir string) error {
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("creating output parent: %w", err)
	}
	tmp, err := os.MkdirTemp(parent, ".osmium-stage-")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	for _, name := range s.names {
		path := filepath.Join(tmp, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("staging %s: %w", name, err)
		}
		if err := os.WriteFile(path, []byte(s.files[name]), 0o644); err != nil {
			return fmt.Errorf("staging %s: %w", name, err)
		}
	}

	old := dir + ".old"
	if err := os.RemoveAll(old); err != nil {
		return fmt.Errorf("clearing previous output: %w", err)
	}
	if _, err := os.Stat(dir); err == nil {
		if err := os.Rename(dir, old); err != nil {
			return fmt.Errorf("moving previous output aside: %w", err)
		}
	}
	if err := os.Rename(tmp, dir); err != nil {
		// Put the previous tree back so a failed publish changes nothing.
		os.Rename(old, dir)
		return fmt.Errorf("publishing output: %w", err)
	}
	os.RemoveAll(old)
	return nil
}

// PublishFile atomically writes a single output file via a temporary
// sibling and rename.
func PublishFile(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".osmium-out-")
	if err != nil {
		return fmt.Errorf("staging output file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("publishing %s: %w", path, err)
	}
	return nil
}
