// Package ctxfile locates and assembles the persistent context files that
// get injected into every query: a project-local .context.md discovered by
// upward search, and a fixed per-user global fallback.
package ctxfile

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ContextFileName is the exact file name matched during upward search.
const ContextFileName = ".context.md"

// Locator finds the context file relevant to a directory. The global
// fallback path is injected at construction so tests can substitute it.
type Locator struct {
	globalPath string
	logger     *zap.Logger
}

// NewLocator creates a Locator with the given global fallback path.
func NewLocator(globalPath string, logger *zap.Logger) *Locator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Locator{
		globalPath: globalPath,
		logger:     logger,
	}
}

// GlobalPath returns the configured global fallback path.
func (l *Locator) GlobalPath() string {
	return l.globalPath
}

// Locate searches for a context file from startDir upward to the filesystem
// root, nearest first. If no ancestor holds one, the global fallback is
// returned when it exists. Absence anywhere in the chain is a normal outcome,
// reported as ("", false), never an error.
func (l *Locator) Locate(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		l.logger.Debug("failed to resolve start directory", zap.String("dir", startDir), zap.Error(err))
		dir = startDir
	}

	for {
		candidate := filepath.Join(dir, ContextFileName)
		if isRegularFile(candidate) {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if isRegularFile(l.globalPath) {
		return l.globalPath, true
	}

	return "", false
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
