// Package focus records which task is currently being worked on.
package focus

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const focusFile = "focus.json"

// Focus is the task currently being worked on.
type Focus struct {
	Project   string    `json:"project"`
	TaskID    string    `json:"task_id"`
	Name      string    `json:"name"`
	StartedAt time.Time `json:"started_at"`
}

// Elapsed returns how long the task has been in focus as of now.
func (f *Focus) Elapsed(now time.Time) time.Duration {
	if now.Before(f.StartedAt) {
		return 0
	}
	return now.Sub(f.StartedAt)
}

// focusPath returns the full path to focus.json for the given base path.
func focusPath(basePath string) string {
	return filepath.Join(basePath, focusFile)
}

// Exists checks if a focus file exists.
func Exists(basePath string) bool {
	_, err := os.Stat(focusPath(basePath))
	return err == nil
}

// Load reads the focus record from disk.
func Load(basePath string) (*Focus, error) {
	data, err := os.ReadFile(focusPath(basePath))
	if err != nil {
		return nil, err
	}

	var f Focus
	if unmarshalErr := json.Unmarshal(data, &f); unmarshalErr != nil {
		return nil, unmarshalErr
	}

	return &f, nil
}

// Save writes the focus record to disk.
func Save(basePath string, f *Focus) error {
	//nolint:gosec // G301: 0755 is appropriate for user-accessible data directory
	if mkdirErr := os.MkdirAll(basePath, 0o755); mkdirErr != nil {
		return mkdirErr
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	//nolint:gosec // G306: 0644 is appropriate for user-readable focus files
	return os.WriteFile(focusPath(basePath), data, 0o644)
}

// Delete removes the focus file.
func Delete(basePath string) error {
	err := os.Remove(focusPath(basePath))
	if os.IsNotExist(err) {
		return nil // Already deleted, not an error
	}
	return err
}

// Claim makes f the focused task. Returns (claimed, existing, error).
// If another task is already focused, returns (false, existing, nil).
func Claim(basePath string, f Focus) (bool, *Focus, error) {
	existing, loadErr := Load(basePath)
	if loadErr == nil {
		return false, existing, nil
	}

	if !os.IsNotExist(loadErr) {
		return false, nil, loadErr
	}

	if f.StartedAt.IsZero() {
		f.StartedAt = time.Now().UTC()
	}
	if saveErr := Save(basePath, &f); saveErr != nil {
		return false, nil, saveErr
	}

	return true, nil, nil
}

// Release clears the focus if taskID is the focused task, or unconditionally
// when taskID is empty. Returns the released record, or nil if nothing was
// released.
func Release(basePath string, taskID string) (*Focus, error) {
	existing, loadErr := Load(basePath)
	if os.IsNotExist(loadErr) {
		return nil, nil //nolint:nilnil // Nothing to release is not an error
	}
	if loadErr != nil {
		return nil, loadErr
	}

	if taskID != "" && existing.TaskID != taskID {
		return nil, nil //nolint:nilnil // Not the focused task
	}

	if deleteErr := Delete(basePath); deleteErr != nil {
		return nil, deleteErr
	}

	return existing, nil
}
