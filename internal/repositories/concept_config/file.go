package conceptconfig

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/KirkDiggler/psychics/internal/errors"
)

// Extensions recognised by the file repository, in lookup order
var Extensions = []string{".yml", ".yaml"}

type fileRepository struct {
	dir string
}

// FileConfig contains configuration for the directory-backed repository
type FileConfig struct {
	Dir string
}

// Validate validates the FileConfig.
func (cfg *FileConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Dir == "" {
		return errors.InvalidArgument("dir cannot be empty")
	}
	return nil
}

// NewFile creates a repository over a directory of <name>.yml files.
// The directory is created on the first Put if it does not exist.
func NewFile(cfg *FileConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &fileRepository{dir: cfg.Dir}, nil
}

func (r *fileRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ListOutput{Names: []string{}}, nil
		}
		return nil, errors.Wrapf(err, "failed to read concept dir %s", r.dir)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !slices.Contains(Extensions, ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if ValidateName(name) != nil {
			slog.WarnContext(ctx, "Skipping concept file with invalid name", "file", entry.Name())
			continue
		}
		if other, ok := seen[name]; ok {
			slog.WarnContext(ctx, "Duplicate concept file ignored",
				"concept", name,
				"using", other,
				"ignored", entry.Name())
			continue
		}
		seen[name] = entry.Name()
		names = append(names, name)
	}

	slices.Sort(names)
	return &ListOutput{Names: names}, nil
}

func (r *fileRepository) find(name string) (string, bool, error) {
	for _, ext := range Extensions {
		path := filepath.Join(r.dir, name+ext)
		_, err := os.Stat(path)
		if err == nil {
			return path, true, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", false, errors.Wrapf(err, "failed to stat %s", path)
		}
	}
	return filepath.Join(r.dir, name+Extensions[0]), false, nil
}

func (r *fileRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}

	path, ok, err := r.find(input.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NotFoundf("concept %s not found", input.Name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	return &GetOutput{Name: input.Name, Data: data}, nil
}

func (r *fileRepository) Put(_ context.Context, input PutInput) (*PutOutput, error) {
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}
	if len(input.Data) == 0 {
		return nil, errors.InvalidArgument(errDataEmpty)
	}

	if err := os.MkdirAll(r.dir, 0o750); err != nil {
		return nil, errors.Wrapf(err, "failed to create concept dir %s", r.dir)
	}

	path, exists, err := r.find(input.Name)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, input.Data, 0o600); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", path)
	}

	return &PutOutput{Created: !exists}, nil
}

func (r *fileRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}

	path, ok, err := r.find(input.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NotFoundf("concept %s not found", input.Name)
	}

	if err := os.Remove(path); err != nil {
		return nil, errors.Wrapf(err, "failed to remove %s", path)
	}

	return &DeleteOutput{}, nil
}
