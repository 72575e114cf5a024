package chat

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is a single conversation turn. Options holds the button labels
// parsed from [[Label]] directives; they only matter on the most recent
// model message.
type Message struct {
	ID         string    `json:"id"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	TokensUsed int       `json:"tokens_used,omitempty"`
	Options    []string  `json:"options,omitempty"`
}

func NewMessage(role, content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

var directivePattern = regexp.MustCompile(`\[\[(.*?)\]\]`)

// ParseOptions extracts the labels of all [[Label]] directives in order.
func ParseOptions(text string) []string {
	matches := directivePattern.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}
	options := make([]string, len(matches))
	for i, m := range matches {
		options[i] = m[1]
	}
	return options
}

// StripDirectives removes all [[Label]] directives from the text.
func StripDirectives(text string) string {
	return directivePattern.ReplaceAllString(text, "")
}
