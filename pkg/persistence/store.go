package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/blelink-protocol/blelink-go/pkg/platform"
)

// FileVersion is the current version of the device reference file format.
const FileVersion = 1

// deviceFile is the on-disk representation of the stored reference.
type deviceFile struct {
	// Version is the file format version.
	Version int `json:"version"`

	// SavedAt is when the reference was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Device is the stored reference.
	Device platform.DeviceRef `json:"device"`
}

// FileStore persists the last-known device reference to a JSON file.
// It implements platform.Store.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a new device reference store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save persists the device reference to disk, replacing any previous one.
func (s *FileStore) Save(ref platform.DeviceRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file := deviceFile{
		Version: FileVersion,
		SavedAt: time.Now(),
		Device:  ref,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the device reference from disk.
// Returns nil, nil if no reference is stored.
func (s *FileStore) Load() (*platform.DeviceRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	file := &deviceFile{}
	if err := json.Unmarshal(data, file); err != nil {
		return nil, err
	}

	ref := file.Device
	return &ref, nil
}

// Clear removes the stored reference. No-op if none is stored.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Compile-time check: *FileStore implements platform.Store.
var _ platform.Store = (*FileStore)(nil)
