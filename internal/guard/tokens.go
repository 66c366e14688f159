// Package guard provides the pre-send validators run over assembled system
// text: a token budget check and a secret pattern scan. Guards block dispatch
// by returning a verdict; they never fail themselves.
package guard

import (
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

// DefaultTokenLimit is the token budget applied when no limit is configured.
const DefaultTokenLimit = 2000

// wordExpansionFactor converts a whitespace-delimited word count into an
// approximate token count. BPE tokenizers emit slightly more tokens than
// words for English text.
const wordExpansionFactor = 1.3

// Estimator estimates the number of model tokens in a text.
type Estimator interface {
	Count(text string) int
}

// WordEstimator is the fallback estimator used when no precise tokenizer is
// available: whitespace-delimited words times a fixed expansion factor,
// truncated to an integer.
type WordEstimator struct{}

func (WordEstimator) Count(text string) int {
	return int(float64(len(strings.Fields(text))) * wordExpansionFactor)
}

// tiktokenEstimator counts tokens with a real BPE encoding.
type tiktokenEstimator struct {
	enc *tiktoken.Tiktoken
}

func (e *tiktokenEstimator) Count(text string) int {
	return len(e.enc.Encode(text, nil, nil))
}

// TokenGuard checks assembled text against a token budget.
type TokenGuard struct {
	limit     int
	estimator Estimator
}

// NewTokenGuard creates a guard with the best estimator available for the
// given model: the model's tiktoken encoding, then cl100k_base, then the
// word-count approximation. Estimator selection happens once, here; Check
// never fails.
func NewTokenGuard(limit int, model string, logger *zap.Logger) *TokenGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return NewTokenGuardWithEstimator(limit, selectEstimator(model, logger))
}

// NewTokenGuardWithEstimator creates a guard using the given estimator.
func NewTokenGuardWithEstimator(limit int, estimator Estimator) *TokenGuard {
	if limit <= 0 {
		limit = DefaultTokenLimit
	}
	return &TokenGuard{
		limit:     limit,
		estimator: estimator,
	}
}

func selectEstimator(model string, logger *zap.Logger) Estimator {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		logger.Debug("no tiktoken encoding for model, trying cl100k_base",
			zap.String("model", model), zap.Error(err))
		enc, err = tiktoken.GetEncoding("cl100k_base")
	}
	if err != nil {
		logger.Debug("tiktoken unavailable, falling back to word estimate", zap.Error(err))
		return WordEstimator{}
	}
	return &tiktokenEstimator{enc: enc}
}

// Check returns whether text exceeds the guard's limit, along with the
// estimated token count.
func (g *TokenGuard) Check(text string) (bool, int) {
	count := g.estimator.Count(text)
	return count > g.limit, count
}

// Limit returns the configured token budget.
func (g *TokenGuard) Limit() int {
	return g.limit
}
