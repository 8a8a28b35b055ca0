package scheduler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// State is everything the scheduler needs to resume across restarts. A nil
// NextRunTime means no run has been scheduled yet: run immediately.
type State struct {
	RunCount              int        `json:"run_count"`
	LastRunTime           *time.Time `json:"last_run_time"`
	NextRunTime           *time.Time `json:"next_run_time"`
	LastRunSuccess        bool       `json:"last_run_success"`
	ScheduleIntervalHours int        `json:"schedule_interval_hours"`
}

// LoadState reads the persisted state; a missing file yields the zero
// state, which schedules an immediate first run.
func LoadState(path string) (State, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("read scheduler state: %w", err)
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, fmt.Errorf("parse scheduler state: %w", err)
	}
	return st, nil
}

// SaveState persists st atomically (temp file + rename) so a crash mid-write
// cannot corrupt resumability.
func SaveState(path string, st State) error {
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scheduler state: %w", err)
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".scheduler-state-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write scheduler state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace scheduler state: %w", err)
	}
	return nil
}
