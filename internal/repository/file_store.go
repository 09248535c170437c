package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"SigScan/internal/domain/models"
	applogger "SigScan/pkg/logger"
)

// FileStore implements Persistence over a flat JSON file. Writes go through
// a temp file plus rename so a crash mid-write never corrupts the live file.
type FileStore struct {
	path string
	l    *applogger.Logger
}

func NewFileStore(path string, l *applogger.Logger) *FileStore {
	return &FileStore{path: path, l: l}
}

// Load reads the signal file. A missing or unreadable file yields an empty
// slice so a fresh deployment starts clean.
func (f *FileStore) Load(_ context.Context) ([]models.Signal, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read signal file: %w", err)
	}

	var signals []models.Signal
	if err := json.Unmarshal(data, &signals); err != nil {
		if f.l != nil {
			f.l.Warn("signal file corrupt, starting empty",
				applogger.String("path", f.path),
				applogger.Error(err))
		}
		return nil, nil
	}
	return signals, nil
}

// Save writes the full signal set atomically.
func (f *FileStore) Save(_ context.Context, signals []models.Signal) error {
	if signals == nil {
		signals = []models.Signal{}
	}
	data, err := json.MarshalIndent(signals, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal signals: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "signals-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace signal file: %w", err)
	}
	return nil
}
