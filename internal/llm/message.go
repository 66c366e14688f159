// Package llm defines the chat message types and the outbound chat-completion
// client used to send assembled prompts to a model provider.
package llm

// Message roles understood by chat-completion providers.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single role-tagged chat message. Ordering is significant:
// messages are sent in the order produced.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Payload is a fully assembled request: the target model plus the ordered
// message sequence. It is what guards inspect and what blocked or deferred
// outcomes hand back to the caller.
type Payload struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}
