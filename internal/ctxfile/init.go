package ctxfile

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed context_template.md
var contextTemplate string

// ErrContextFileExists is returned when init targets a directory that
// already has a context file. This is the one precondition that stops the
// caller's workflow instead of degrading.
var ErrContextFileExists = errors.New("context file already exists")

// InitContext creates a starter context file in targetDir, seeded from the
// embedded template plus simple project hints. Returns the created path.
func InitContext(targetDir string) (string, error) {
	path := filepath.Join(targetDir, ContextFileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s: %w", path, ErrContextFileExists)
	}

	content := contextTemplate
	if hints := projectHints(targetDir); len(hints) > 0 {
		content += "\n<!-- Auto-generated hints: " + strings.Join(hints, ", ") + " -->\n"
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// projectHints inspects common manifest files to seed the starter context.
func projectHints(dir string) []string {
	var hints []string

	if data, err := os.ReadFile(filepath.Join(dir, "package.json")); err == nil {
		var pkg struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if json.Unmarshal(data, &pkg) == nil && pkg.Name != "" {
			hints = append(hints, fmt.Sprintf("Project: %s - %s", pkg.Name, pkg.Description))
		} else {
			hints = append(hints, "JavaScript/Node project (package.json detected)")
		}
	}

	if isRegularFile(filepath.Join(dir, "requirements.txt")) {
		hints = append(hints, "Python dependencies listed in requirements.txt")
	}
	if isRegularFile(filepath.Join(dir, "pyproject.toml")) {
		hints = append(hints, "Python project with pyproject.toml")
	}
	if isRegularFile(filepath.Join(dir, "go.mod")) {
		hints = append(hints, "Go module (go.mod detected)")
	}
	if info, err := os.Stat(filepath.Join(dir, "src")); err == nil && info.IsDir() {
		hints = append(hints, "Source code under src/")
	}

	return hints
}
