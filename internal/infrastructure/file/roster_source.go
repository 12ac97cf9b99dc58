package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnsupportedRosterFile = errors.New("roster file must have a .csv or .txt extension")

// RosterSource reads roster uploads from the local filesystem. Relative
// paths resolve against BaseDir.
type RosterSource struct {
	BaseDir string
}

func NewRosterSource(baseDir string) *RosterSource {
	if baseDir == "" {
		baseDir = "."
	}
	return &RosterSource{BaseDir: baseDir}
}

func (s *RosterSource) Resolve(sourcePath string) string {
	if filepath.IsAbs(sourcePath) {
		return sourcePath
	}
	return filepath.Join(s.BaseDir, sourcePath)
}

func (s *RosterSource) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(sourcePath)) {
	case ".csv", ".txt":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRosterFile, sourcePath)
	}

	path := s.Resolve(sourcePath)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster %s: %w", path, err)
	}
	return f, nil
}

// ReadAll returns the whole roster as text, the form the ingestion
// pipeline takes.
func (s *RosterSource) ReadAll(ctx context.Context, sourcePath string) (string, error) {
	rc, err := s.Open(ctx, sourcePath)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read roster %s: %w", sourcePath, err)
	}
	return string(data), nil
}
