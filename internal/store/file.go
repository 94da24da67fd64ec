package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/amishk599/jobping/internal/model"
)

var _ model.SeenStore = (*FileStore)(nil)

// FileStore keeps the seen-set as a JSON array of posting IDs in a single file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore returns a store backed by the JSON file at path. The file does
// not need to exist yet.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the location of the state file.
func (s *FileStore) Path() string { return s.path }

// Load reads the seen-set. A missing file is an empty set. A file that is not
// a JSON array of strings is deleted and also treated as empty, so one corrupt
// write cannot block every later run.
func (s *FileStore) Load() (model.SeenSet, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.NewSeenSet(), nil
	}
	if err != nil {
		return model.SeenSet{}, fmt.Errorf("reading seen-set %s: %w", s.path, err)
	}

	var ids []string
	err = json.Unmarshal(data, &ids)
	if err == nil && ids == nil {
		// "null" decodes cleanly but is not a list.
		err = errors.New("state file is not a JSON array")
	}
	if err != nil {
		s.logger.Warn("seen-set file is corrupt, deleting it to start fresh", "path", s.path, "error", err)
		if rmErr := os.Remove(s.path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			return model.SeenSet{}, fmt.Errorf("removing corrupt seen-set %s: %w", s.path, rmErr)
		}
		return model.NewSeenSet(), nil
	}
	return model.NewSeenSet(ids...), nil
}

// Save overwrites the file with the full set. The write goes to a temp file in
// the same directory and is renamed into place.
func (s *FileStore) Save(set model.SeenSet) error {
	data, err := json.Marshal(set.Slice())
	if err != nil {
		return fmt.Errorf("encoding seen-set: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating state dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing seen-set %s: %w", s.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing seen-set %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing seen-set %s: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing seen-set %s: %w", s.path, err)
	}
	return nil
}

// Reset deletes the state file. The next Load returns an empty set.
func (s *FileStore) Reset() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing seen-set %s: %w", s.path, err)
	}
	return nil
}
