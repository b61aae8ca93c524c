package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// AssessmentRepository persists serialized assessment submissions.
type AssessmentRepository interface {
	Save(ctx context.Context, filename string, payload []byte) (string, error)
}

// AssessmentFileRepository writes one JSON file per submission into a data directory.
type AssessmentFileRepository struct {
	fs  afero.Fs
	dir string
}

// NewAssessmentFileRepository prepares the data directory and returns a file backed repository.
func NewAssessmentFileRepository(fs afero.Fs, dir string) (*AssessmentFileRepository, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("data directory must not be empty")
	}

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %q: %w", dir, err)
	}

	return &AssessmentFileRepository{fs: fs, dir: dir}, nil
}

// Dir returns the directory submissions are written to.
func (r *AssessmentFileRepository) Dir() string {
	return r.dir
}

// Save writes payload to {dir}/{filename}, replacing any file with the same name.
func (r *AssessmentFileRepository) Save(ctx context.Context, filename string, payload []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if filename == "" || filename != filepath.Base(filename) {
		return "", fmt.Errorf("invalid submission filename %q", filename)
	}

	path := filepath.Join(r.dir, filename)
	if err := afero.WriteFile(r.fs, path, payload, 0o644); err != nil {
		return "", fmt.Errorf("failed to write submission file: %w", err)
	}

	return path, nil
}

// Load reads a stored submission back. Used by tooling and tests; the intake flow never reads.
func (r *AssessmentFileRepository) Load(filename string) ([]byte, error) {
	data, err := afero.ReadFile(r.fs, filepath.Join(r.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("submission %q not found: %w", filename, err)
		}
		return nil, err
	}
	return data, nil
}
