package ctxfile

import (
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/quietfold/aictx/internal/llm"
)

// Section labels prepended to each context block in the system message.
const (
	globalLabel  = "[Global Context]"
	projectLabel = "[Project Context]"
)

// Assembler merges located context files into an ordered message sequence.
type Assembler struct {
	locator *Locator
	logger  *zap.Logger
}

// NewAssembler creates an Assembler over the given locator.
func NewAssembler(locator *Locator, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{
		locator: locator,
		logger:  logger,
	}
}

// Assemble builds the message sequence for a query: an optional system
// message holding labeled global and project context blocks, followed by
// exactly one user message with the verbatim query text.
//
// Assemble is pure and never fails: files are freshly read on every call,
// and an unreadable file degrades to an empty block rather than an error.
func (a *Assembler) Assemble(userQuery string, startDir string) []llm.Message {
	located, found := a.locator.Locate(startDir)

	var globalText, projectText string
	if found {
		if samePath(located, a.locator.GlobalPath()) {
			// The nearest file found is the global fallback itself: label it
			// as global content alone, never as project context.
			globalText = a.readBestEffort(located)
		} else {
			if isRegularFile(a.locator.GlobalPath()) {
				globalText = a.readBestEffort(a.locator.GlobalPath())
			}
			projectText = a.readBestEffort(located)
		}
	}

	var parts []string
	if globalText != "" {
		parts = append(parts, globalLabel+"\n"+globalText)
	}
	if projectText != "" {
		parts = append(parts, projectLabel+"\n"+projectText)
	}
	systemText := strings.TrimSpace(strings.Join(parts, "\n\n"))

	var messages []llm.Message
	if systemText != "" {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemText})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userQuery})
	return messages
}

func (a *Assembler) readBestEffort(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		a.logger.Debug("dropping unreadable context file", zap.String("path", path), zap.Error(err))
		return ""
	}
	return string(data)
}

// samePath reports whether two paths name the same file after resolution.
// Identity comparison, not content comparison: a project file that resolves
// to the global path is deduplicated into a single global block.
func samePath(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
