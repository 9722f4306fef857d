package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"harborbank/pkg/platform/sentinel"
)

// File stores every key in one JSON object on disk. Writes go to a temp
// file that is renamed over the target, so a crash leaves either the old
// or the new contents.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]string
	logger *slog.Logger
}

// FileOption configures a File.
type FileOption func(*File)

func WithFileLogger(logger *slog.Logger) FileOption {
	return func(f *File) {
		f.logger = logger
	}
}

// NewFile loads path if it exists. A missing or empty file starts empty.
// A file that is not a JSON object of strings is renamed aside with a
// ".corrupt-<UTC timestamp>" suffix and the store starts empty, so one bad
// write does not keep the server from booting. Only read and rename
// failures are errors.
func NewFile(path string, opts ...FileOption) (*File, error) {
	f := &File{path: path, values: make(map[string]string), logger: slog.Default()}
	for _, opt := range opts {
		opt(f)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage file: %w", err)
	}
	if len(data) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(data, &f.values); err != nil {
		if qerr := f.quarantine(err); qerr != nil {
			return nil, qerr
		}
	}
	return f, nil
}

func (s *File) quarantine(cause error) error {
	s.values = make(map[string]string)
	aside := s.path + ".corrupt-" + time.Now().UTC().Format("20060102T150405Z")
	if err := os.Rename(s.path, aside); err != nil {
		return fmt.Errorf("move corrupt storage file %s aside: %w", s.path, err)
	}
	s.logger.Warn("storage file is corrupt, starting empty",
		"path", s.path,
		"moved_to", aside,
		"error", cause,
	)
	return nil
}

func (s *File) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return v, nil
}

func (s *File) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.values[key]
	s.values[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *File) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.values[key]
	if !had {
		return nil
	}
	delete(s.values, key)
	if err := s.flush(); err != nil {
		s.values[key] = prev
		return err
	}
	return nil
}

// flush must be called with mu held.
func (s *File) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage file: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".storage-*.json")
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
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace storage file: %w", err)
	}
	return nil
}
