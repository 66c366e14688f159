package guard

import "regexp"

// defaultSecretPatterns match secret-shaped tokens. Matching is case
// sensitive and word-boundary-delimited so unrelated identifiers containing
// these shapes as substrings do not trip the scanner. The set is a fast
// heuristic, not an exhaustive secrets detector.
var defaultSecretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bsk-[A-Za-z0-9]{16,}\b`),
	regexp.MustCompile(`\bAI_KEY\b`),
	regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
	regexp.MustCompile(`\bghp_[A-Za-z0-9]{36}\b`),
}

// SecretScanner scans text for secret-shaped substrings before dispatch.
type SecretScanner struct {
	patterns []*regexp.Regexp
}

// NewSecretScanner creates a scanner with the default pattern set.
func NewSecretScanner() *SecretScanner {
	return &SecretScanner{
		patterns: defaultSecretPatterns,
	}
}

// Scan returns every non-overlapping match found in text. An empty result
// means "no matches", not "no secrets exist".
func (s *SecretScanner) Scan(text string) []string {
	var matches []string
	for _, pattern := range s.patterns {
		matches = append(matches, pattern.FindAllString(text, -1)...)
	}
	return matches
}
