// Package serial manages the persisted zone serial number. Serials use
// the date-sequence scheme YYYYMMDDNN and must be strictly increasing
// across runs.
package serial

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// MaxSequence is the highest sequence number one date can carry.
const MaxSequence = 99

// State is the loaded serial file. It moves from loaded to committed
// exactly once per run; the pipeline commits only after every zone and
// network transformed cleanly.
type State struct {
	path      string
	prev      uint32
	hasPrev   bool
	next      uint32
	hasNext   bool
	committed bool
}

// Load reads the persisted serial. A missing or empty file means no
// previous serial; unreadable or garbage content is fatal, because
// silently restarting at zero would hand secondaries a lower serial.
func Load(path string) (*State, error) {
	s := &State{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading serial file %s: %w", path, err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return s, nil
	}
	prev, err := strconv.ParseUint(content, 10, 32)
	if err != nil || len(content) != 10 {
		return nil, fmt.Errorf("serial file %s is corrupt: %q is not a 10-digit serial", path, content)
	}
	s.prev = uint32(prev)
	s.hasPrev = true
	return s, nil
}

// Previous returns the loaded serial, if any.
func (s *State) Previous() (uint32, bool) {
	return s.prev, s.hasPrev
}

// Next computes the serial for this run: today's date prefix with the
// sequence bumped when the previous serial is from the same day. A
// previous serial dated in the future means the system clock went
// backwards, which is fatal rather than silently corrected.
func (s *State) Next(now time.Time) (uint32, error) {
	if s.hasNext {
		return s.next, nil
	}
	today := uint32(now.Year())*1_000_000 + uint32(now.Month())*10_000 + uint32(now.Day())

	var next uint32
	switch {
	case !s.hasPrev || s.prev/100 < today:
		next = today * 100
	case s.prev/100 == today:
		if s.prev%100 >= MaxSequence {
			return 0, fmt.Errorf("serial %d exhausted the sequence range for %d (max %d generations per day)",
				s.prev, today, MaxSequence+1)
		}
		next = s.prev + 1
	default:
		return 0, fmt.Errorf("serial %d is dated after today (%d): refusing to go backwards", s.prev, today)
	}

	s.next = next
	s.hasNext = true
	return next, nil
}

// Commit atomically persists the computed serial: write to a temporary
// file in the same directory, then rename over the old one. A crash
// mid-write never leaves a torn serial behind.
func (s *State) Commit() error {
	if !s.hasNext {
		return fmt.Errorf("serial: commit before Next")
	}
	if s.committed {
		return fmt.Errorf("serial: already committed")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".serial-*")
	if err != nil {
		return fmt.Errorf("staging serial file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := fmt.Fprintf(tmp, "%010d\n", s.next); err != nil {
		tmp.Close()
		return fmt.Errorf("writing serial file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing serial file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing serial file %s: %w", s.path, err)
	}

	s.committed = true
	return nil
}
