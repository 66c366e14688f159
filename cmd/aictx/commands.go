package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/quietfold/aictx/internal/core"
	"github.com/quietfold/aictx/internal/ctxfile"
	"github.com/quietfold/aictx/internal/dispatch"
	"github.com/quietfold/aictx/internal/guard"
	"github.com/quietfold/aictx/internal/history"
	"github.com/quietfold/aictx/internal/llm"
	"github.com/quietfold/aictx/internal/styles"
)

var modelFlag string

var sendCmd = &cobra.Command{
	Use:   "send <query>...",
	Short: "Send a query to the LLM with injected context",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSend,
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a starter " + ctxfile.ContextFileName + " in a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

var clearCmd = &cobra.Command{
	Use:   "clear [path]",
	Short: "Clear the conversation history in a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClear,
}

var showCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Print the context that would be injected, without sending anything",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	sendCmd.Flags().StringVar(&modelFlag, "model", "", "override the configured model")
}

func runSend(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	model := settings.Model
	if modelFlag != "" {
		model = modelFlag
	}

	locator := ctxfile.NewLocator(core.GlobalContextFile(), logger)
	assembler := ctxfile.NewAssembler(locator, logger)
	tokens := guard.NewTokenGuard(settings.TokenLimit, model, logger)
	scanner := guard.NewSecretScanner()
	sink := history.NewManager(cwd)

	client, available := llm.NewClientFromEnv()
	if !available {
		logger.Info("no API credential configured, running in deferred mode")
	}

	dispatcher := dispatch.NewDispatcher(assembler, scanner, tokens, client, sink, model, logger)
	outcome := dispatcher.Dispatch(cmd.Context(), query, cwd)

	fmt.Print(formatOutcome(outcome, tokens.Limit()))

	if outcome.Status == dispatch.StatusFailed {
		return outcome.Err
	}
	return nil
}

// formatOutcome renders a dispatch outcome for human consumption.
func formatOutcome(outcome *dispatch.Outcome, limit int) string {
	var b strings.Builder
	switch outcome.Status {
	case dispatch.StatusSent:
		b.WriteString(styles.RESPONSE(outcome.Response))
		b.WriteString("\n")
	case dispatch.StatusBlockedSecrets:
		b.WriteString(styles.BLOCKED("blocked: secret-shaped content detected in context"))
		b.WriteString("\n")
		for _, match := range outcome.Secrets {
			b.WriteString(fmt.Sprintf("  %s\n", match))
		}
		b.WriteString(styles.NOTE("nothing was sent; edit the context file and retry"))
		b.WriteString("\n")
	case dispatch.StatusBlockedTokens:
		b.WriteString(styles.BLOCKED(fmt.Sprintf(
			"blocked: context is ~%s tokens, over the %s token limit",
			humanize.Comma(int64(outcome.TokenCount)),
			humanize.Comma(int64(limit)),
		)))
		b.WriteString("\n")
		b.WriteString(styles.NOTE("nothing was sent; trim the context file and retry"))
		b.WriteString("\n")
	case dispatch.StatusDeferred:
		b.WriteString(styles.NOTE(outcome.Note))
		b.WriteString("\n")
		b.WriteString(formatPayload(outcome.Payload))
	case dispatch.StatusFailed:
		b.WriteString(styles.ERROR(fmt.Sprintf("request failed: %v", outcome.Err)))
		b.WriteString("\n")
		b.WriteString(styles.NOTE("the assembled payload was preserved; retry with `aictx send`"))
		b.WriteString("\n")
	}
	return b.String()
}

func formatPayload(payload llm.Payload) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("model: %s\n", payload.Model))
	for _, m := range payload.Messages {
		b.WriteString(fmt.Sprintf("--- %s ---\n%s\n", m.Role, m.Content))
	}
	return b.String()
}

func runInit(cmd *cobra.Command, args []string) error {
	target, err := targetDir(args)
	if err != nil {
		return err
	}

	created, err := ctxfile.InitContext(target)
	if err != nil {
		if errors.Is(err, ctxfile.ErrContextFileExists) {
			return err
		}
		return fmt.Errorf("init failed: %w", err)
	}

	fmt.Printf("Created %s\n", created)
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	target, err := targetDir(args)
	if err != nil {
		return err
	}

	manager := history.NewManager(target)
	if err := manager.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	fmt.Printf("Cleared history at %s\n", manager.FilePath())
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	target, err := targetDir(args)
	if err != nil {
		return err
	}

	locator := ctxfile.NewLocator(core.GlobalContextFile(), logger)
	assembler := ctxfile.NewAssembler(locator, logger)
	messages := assembler.Assemble("", target)

	systemMessage, found := lo.Find(messages, func(m llm.Message) bool {
		return m.Role == llm.RoleSystem
	})
	if !found {
		fmt.Println(styles.NOTE("no context found; `aictx init` creates a starter " + ctxfile.ContextFileName))
		return nil
	}

	tokens := guard.NewTokenGuard(settings.TokenLimit, settings.Model, logger)
	over, count := tokens.Check(systemMessage.Content)

	fmt.Println(systemMessage.Content)
	fmt.Println()
	status := fmt.Sprintf("~%s tokens (limit %s)",
		humanize.Comma(int64(count)), humanize.Comma(int64(tokens.Limit())))
	if over {
		fmt.Println(styles.BLOCKED(status + " - would be blocked"))
	} else {
		fmt.Println(styles.NOTE(status))
	}
	return nil
}

func targetDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return cwd, nil
}
