package chat

import (
	"sync"
	"sync/atomic"
)

// Conversation is one session's chronological message log. The interrupted
// flag lets a stop request discard an in-flight model reply: the flag is
// checked after the model call returns, and an interrupted turn is dropped
// rather than surfaced as an error.
type Conversation struct {
	mu          sync.Mutex
	messages    []Message
	interrupted atomic.Bool
}

func NewConversation() *Conversation {
	return &Conversation{}
}

// Messages returns a copy of the log.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Append(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

// Reset discards all messages and clears any pending interrupt.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
	c.interrupted.Store(false)
}

// Stop flags the in-flight turn as interrupted and removes a trailing
// empty model placeholder if one is waiting to be filled.
func (c *Conversation) Stop() {
	c.interrupted.Store(true)
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := len(c.messages); n > 0 {
		last := c.messages[n-1]
		if last.Role == RoleModel && last.Content == "" {
			c.messages = c.messages[:n-1]
		}
	}
}

func (c *Conversation) ClearInterrupt() {
	c.interrupted.Store(false)
}

func (c *Conversation) Interrupted() bool {
	return c.interrupted.Load()
}

// Fill replaces the content of the message with the given ID. It reports
// whether the message was still present; an interrupted turn may have
// removed it already.
func (c *Conversation) Fill(id string, content string, options []string, tokensUsed int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.messages {
		if c.messages[i].ID == id {
			c.messages[i].Content = content
			c.messages[i].Options = options
			c.messages[i].TokensUsed = tokensUsed
			return true
		}
	}
	return false
}

// Remove deletes the message with the given ID if present.
func (c *Conversation) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.messages {
		if c.messages[i].ID == id {
			c.messages = append(c.messages[:i], c.messages[i+1:]...)
			return
		}
	}
}
