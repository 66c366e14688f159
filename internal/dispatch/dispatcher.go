// Package dispatch orchestrates the query pipeline: assemble context, run
// the pre-send guards in fixed order, then send, defer, or block. Every
// outcome carries the assembled payload so the caller can inspect, edit, or
// resend it.
package dispatch

import (
	"context"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/quietfold/aictx/internal/ctxfile"
	"github.com/quietfold/aictx/internal/guard"
	"github.com/quietfold/aictx/internal/history"
	"github.com/quietfold/aictx/internal/llm"
)

// Status is the terminal state of a dispatched query.
type Status int

const (
	// StatusSent means the request was sent and a response received.
	StatusSent Status = iota

	// StatusBlockedSecrets means the secret scanner matched; nothing was sent.
	StatusBlockedSecrets

	// StatusBlockedTokens means the system text exceeded the token budget.
	StatusBlockedTokens

	// StatusDeferred means no chat client is configured; the payload was
	// recorded instead of sent. A first-class mode, not a failure.
	StatusDeferred

	// StatusFailed means the chat client raised; the payload is preserved
	// for a caller-driven retry.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSent:
		return "sent"
	case StatusBlockedSecrets:
		return "blocked_secrets"
	case StatusBlockedTokens:
		return "blocked_token_limit"
	case StatusDeferred:
		return "deferred"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one dispatch. Payload is always populated.
type Outcome struct {
	Status     Status
	Payload    llm.Payload
	Secrets    []string // StatusBlockedSecrets: the matched substrings
	TokenCount int      // estimated tokens of the system text
	Response   string   // StatusSent
	Note       string   // StatusDeferred: human-readable explanation
	Err        error    // StatusFailed
}

// HistorySink records query outcomes. Writes are best-effort bookkeeping;
// failures are logged and never change the dispatch outcome.
type HistorySink interface {
	Append(entry history.Entry) error
}

// Dispatcher runs the locate -> assemble -> guard -> dispatch pipeline.
// A nil client puts it in deferred mode. Each Dispatch call is independent
// and reentrant.
type Dispatcher struct {
	assembler *ctxfile.Assembler
	scanner   *guard.SecretScanner
	tokens    *guard.TokenGuard
	client    llm.ChatClient
	sink      HistorySink
	model     string
	logger    *zap.Logger
}

// NewDispatcher wires the pipeline. client may be nil (deferred mode) and
// sink may be nil (no recording).
func NewDispatcher(
	assembler *ctxfile.Assembler,
	scanner *guard.SecretScanner,
	tokens *guard.TokenGuard,
	client llm.ChatClient,
	sink HistorySink,
	model string,
	logger *zap.Logger,
) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		assembler: assembler,
		scanner:   scanner,
		tokens:    tokens,
		client:    client,
		sink:      sink,
		model:     model,
		logger:    logger,
	}
}

// Dispatch assembles the query, runs the guards, and sends or records the
// payload. Guard order is fixed: the secret scan strictly precedes the token
// check, so a payload tripping both always reports blocked-for-secrets.
func (d *Dispatcher) Dispatch(ctx context.Context, userQuery string, startDir string) *Outcome {
	messages := d.assembler.Assemble(userQuery, startDir)
	payload := llm.Payload{Model: d.model, Messages: messages}

	systemParts := lo.FilterMap(messages, func(m llm.Message, _ int) (string, bool) {
		return m.Content, m.Role == llm.RoleSystem
	})
	systemText := strings.Join(systemParts, "\n\n")

	if secrets := d.scanner.Scan(systemText); len(secrets) > 0 {
		d.logger.Warn("query blocked: secret-shaped content in context",
			zap.Int("matches", len(secrets)))
		return &Outcome{Status: StatusBlockedSecrets, Payload: payload, Secrets: secrets}
	}

	over, count := d.tokens.Check(systemText)
	if over {
		d.logger.Warn("query blocked: context over token limit",
			zap.Int("tokens", count), zap.Int("limit", d.tokens.Limit()))
		return &Outcome{Status: StatusBlockedTokens, Payload: payload, TokenCount: count}
	}

	if d.client == nil {
		d.record(history.Entry{Query: userQuery, Payload: &payload, CreatedAt: time.Now()})
		return &Outcome{
			Status:     StatusDeferred,
			Payload:    payload,
			TokenCount: count,
			Note:       "no API credential configured; payload recorded without sending",
		}
	}

	response, err := d.client.Create(ctx, d.model, messages)
	if err != nil {
		d.logger.Error("chat completion failed", zap.Error(err))
		return &Outcome{Status: StatusFailed, Payload: payload, TokenCount: count, Err: err}
	}

	d.record(history.Entry{Query: userQuery, Response: response, CreatedAt: time.Now()})
	return &Outcome{Status: StatusSent, Payload: payload, TokenCount: count, Response: response}
}

func (d *Dispatcher) record(entry history.Entry) {
	if d.sink == nil {
		return
	}
	if err := d.sink.Append(entry); err != nil {
		d.logger.Warn("failed to record history entry", zap.Error(err))
	}
}
