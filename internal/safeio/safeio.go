// Package safeio confines diagram output to a fixed directory, refusing
// paths that resolve outside it.
package safeio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// OutputDir is a write-locked root for rendered diagrams.
type OutputDir struct {
	absRoot string
}

// NewOutputDir creates the directory if needed and locks all future writes
// under it.
func NewOutputDir(root string) (*OutputDir, error) {
	if root == "" {
		return nil, errors.New("safeio: empty root")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	return &OutputDir{absRoot: abs}, nil
}

// Root returns the absolute output directory.
func (o *OutputDir) Root() string {
	if o == nil {
		return ""
	}
	return o.absRoot
}

// Save writes data under the root and returns the absolute path written.
// An empty name gets a timestamped default.
func (o *OutputDir) Save(name string, data []byte) (string, error) {
	if o == nil {
		return "", errors.New("safeio: output directory not configured")
	}
	if name == "" {
		name = AutoName(time.Now())
	}
	p, err := o.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", err
	}
	return p, nil
}

// AutoName builds the default diagram filename for a timestamp.
func AutoName(now time.Time) string {
	return "diagram_" + now.Format("20060102_150405") + ".txt"
}

func (o *OutputDir) resolve(name string) (string, error) {
	clean := filepath.Clean(name)
	if filepath.IsAbs(clean) {
		return "", errors.New("safeio: absolute paths not allowed")
	}
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.New("safeio: path traversal not allowed")
	}
	joined := filepath.Join(o.absRoot, clean)

	// The parent must already exist and resolve under the root; the file
	// itself may not exist yet.
	parent, err := filepath.EvalSymlinks(filepath.Dir(joined))
	if err != nil {
		return "", err
	}
	if !hasPathPrefix(parent, o.absRoot) {
		return "", fmt.Errorf("safeio: resolved outside root (root=%s, path=%s)", o.absRoot, parent)
	}
	return filepath.Join(parent, filepath.Base(joined)), nil
}

func hasPathPrefix(path, root string) bool {
	path = filepath.Clean(path)
	root = filepath.Clean(root)
	if runtime.GOOS == "windows" {
		path = strings.ToLower(path)
		root = strings.ToLower(root)
	}
	if path == root {
		return true
	}
	sep := string(os.PathSeparator)
	if !strings.HasSuffix(root, sep) {
		root += sep
	}
	return strings.HasPrefix(path+sep, root)
}
