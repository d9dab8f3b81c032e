package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/FileExplorer/internal/shared/paths"
)

// Invalidator is told about every path a mutation touched.
type Invalidator interface {
	Invalidate(path string)
}

// InvalidatorFunc adapts a function to Invalidator
type InvalidatorFunc func(path string)

// Invalidate calls f(path)
func (f InvalidatorFunc) Invalidate(path string) { f(path) }

// Operations performs filesystem mutations. Each call is a single OS
// operation; there is no multi-step transaction or rollback.
type Operations struct {
	normalizer  *Normalizer
	invalidator Invalidator
	logger      *zap.Logger
}

// NewOperations creates mutation operations. A nil invalidator is allowed.
func NewOperations(normalizer *Normalizer, invalidator Invalidator, logger *zap.Logger) *Operations {
	if logger == nil {
		logger = zap.NewNop()
	}
	if normalizer == nil {
		normalizer = NewNormalizer(HostStyle(), logger, 0)
	}
	return &Operations{
		normalizer:  normalizer,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (o *Operations) touched(paths ...string) {
	if o.invalidator == nil {
		return
	}
	for _, p := range paths {
		o.invalidator.Invalidate(p)
	}
}

func exists(p string) (bool, error) {
	_, err := os.Lstat(p)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Rename renames oldPath to newPath. The destination must not exist.
func (o *Operations) Rename(oldPath, newPath string) error {
	src := o.normalizer.Normalize(oldPath)
	dst := o.normalizer.Normalize(newPath)

	ok, err := exists(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, src)
	}
	if ok, _ := exists(dst); ok {
		return fmt.Errorf("%w: %s", ErrExists, dst)
	}

	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}

	o.logger.Info("renamed", zap.String("from", src), zap.String("to", dst))
	o.touched(filepath.Dir(src), filepath.Dir(dst))
	return nil
}

// Move moves src into destination. When destination is an existing
// directory the item keeps its name inside it; otherwise destination is the
// new path. Returns the final path.
func (o *Operations) Move(src, destination string) (string, error) {
	from := o.normalizer.Normalize(src)
	to := o.normalizer.Normalize(destination)

	ok, err := exists(from)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", from, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, from)
	}

	if info, err := os.Stat(to); err == nil && info.IsDir() {
		to = filepath.Join(to, filepath.Base(from))
	}
	if to == from {
		return to, nil
	}
	if ok, _ := exists(to); ok {
		return "", fmt.Errorf("%w: %s", ErrExists, to)
	}
	if paths.IsWithin(to, from) {
		return "", fmt.Errorf("%w: cannot move %s into itself", ErrInvalidPath, from)
	}

	if err := os.Rename(from, to); err != nil {
		return "", fmt.Errorf("move failed: %w", err)
	}

	o.logger.Info("moved", zap.String("from", from), zap.String("to", to))
	o.touched(filepath.Dir(from), filepath.Dir(to))
	return to, nil
}

// CreateFolder creates p and any missing parents. An existing directory is
// not an error.
func (o *Operations) CreateFolder(p string) error {
	dir := o.normalizer.Normalize(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create folder failed: %w", err)
	}

	o.logger.Info("folder created", zap.String("path", dir))
	o.touched(filepath.Dir(dir))
	return nil
}

// Delete removes each path: directories recursively, files by unlink.
// Every path is attempted; failures are joined into the returned error.
func (o *Operations) Delete(targets []string) error {
	var errs []error
	for _, raw := range targets {
		p := o.normalizer.Normalize(raw)

		info, err := os.Lstat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, fmt.Errorf("%w: %s", ErrNotFound, p))
			} else {
				errs = append(errs, fmt.Errorf("stat %s: %w", p, err))
			}
			continue
		}

		if info.IsDir() {
			err = os.RemoveAll(p)
		} else {
			err = os.Remove(p)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", p, err))
			continue
		}

		o.logger.Info("deleted", zap.String("path", p), zap.Bool("is_dir", info.IsDir()))
		o.touched(filepath.Dir(p))
	}
	return errors.Join(errs...)
}
