package llm

import "os"

// apiKeyEnvVars are checked in order; the first non-empty value wins.
var apiKeyEnvVars = []string{
	"AICTX_API_KEY",
	"AI_API_KEY",
	"OPENAI_API_KEY",
}

// DetectAPIKey looks up an API credential from the environment. A missing
// credential is a normal condition, not an error: the dispatcher runs in
// deferred mode without one.
func DetectAPIKey() (string, bool) {
	for _, name := range apiKeyEnvVars {
		if val := os.Getenv(name); val != "" {
			return val, true
		}
	}
	return "", false
}

// NewClientFromEnv returns an OpenAI-backed ChatClient if a credential is
// configured, or (nil, false) otherwise.
func NewClientFromEnv() (ChatClient, bool) {
	apiKey, ok := DetectAPIKey()
	if !ok {
		return nil, false
	}
	return NewOpenAIClient(apiKey), true
}
