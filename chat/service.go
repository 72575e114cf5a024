package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/config"
	apperrors "github.com/Kapiti-Coast-District-Libraries/LibSysAI/errors"
	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/kb"
	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/llmclient"
	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/search"
)

// Turn error texts shown to staff in place of the model reply.
const (
	contextTooLargeText = "The information found is too large for me to process in one go. Please try being more specific about the file name or location you need."
	genericFailureText  = "Sorry, I hit a snag, Please try again."
)

// Confirmation texts substituted when the model calls a mail tool.
const (
	inkConfirmationFormat   = "✅ **Email Client Opened**\n\nI have prepared the email for **%s** toner for **%s**.\n\nAnything else? [[New Issue]] [[Done]]"
	historyConfirmationText = "\U0001F4EC **History Exported**\n\nI've opened your email client with the full log for Max.\n\nAnything else? [[New Issue]] [[Done]]"
)

// LLM is the completion client the service talks to.
type LLM interface {
	Chat(ctx context.Context, systemPrompt string, history []llmclient.ChatMessage, userMessage string) (*llmclient.Response, error)
}

// Result is the outcome of one turn. MailtoURL is set when the model
// triggered a mail action and the browser should open the mail client.
// Interrupted marks a turn stopped by the user; it carries no message.
type Result struct {
	Message     Message
	MailtoURL   string
	Interrupted bool
}

// Service owns the per-session conversations and drives the
// retrieve-then-generate turn loop.
type Service struct {
	cfg       *config.Config
	store     *kb.Store
	assembler *search.Assembler
	llm       LLM
	mailer    *Mailer
	logger    *zap.Logger

	mu            sync.Mutex
	conversations map[string]*Conversation
}

func NewService(cfg *config.Config, store *kb.Store, assembler *search.Assembler, llm LLM, logger *zap.Logger) *Service {
	return &Service{
		cfg:           cfg,
		store:         store,
		assembler:     assembler,
		llm:           llm,
		mailer:        NewMailer(cfg.MailRecipient),
		logger:        logger,
		conversations: make(map[string]*Conversation),
	}
}

func (s *Service) conversation(sessionID string) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[sessionID]
	if !ok {
		conv = NewConversation()
		s.conversations[sessionID] = conv
	}
	return conv
}

// History returns the session's message log.
func (s *Service) History(sessionID string) []Message {
	return s.conversation(sessionID).Messages()
}

// Reset discards the session's conversation.
func (s *Service) Reset(sessionID string) {
	s.conversation(sessionID).Reset()
}

// Stop interrupts the session's in-flight turn, if any.
func (s *Service) Stop(sessionID string) {
	s.conversation(sessionID).Stop()
}

// Send runs one turn: append the user message and an empty model
// placeholder, assemble the grounding context, call the model with the
// prior history, dispatch any tool calls, and fill the placeholder.
// Invocation failures are terminal for the turn and replace the
// placeholder with an error text rather than failing the request.
func (s *Service) Send(ctx context.Context, sessionID, text string) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.WrapError(apperrors.ErrInvalidInput, "message text is empty")
	}

	conv := s.conversation(sessionID)
	conv.ClearInterrupt()

	// History for this turn is the log before the current message.
	prior := conv.Messages()

	conv.Append(NewMessage(RoleUser, text))
	placeholder := NewMessage(RoleModel, "")
	conv.Append(placeholder)

	snap := s.store.Snapshot()
	systemPrompt := s.assembler.BuildContext(snap, text)

	history := make([]llmclient.ChatMessage, len(prior))
	for i, msg := range prior {
		role := msg.Role
		if role == RoleModel {
			role = "assistant"
		}
		history[i] = llmclient.ChatMessage{Role: role, Content: msg.Content}
	}

	resp, err := s.llm.Chat(ctx, systemPrompt, history, text)
	if conv.Interrupted() {
		conv.Remove(placeholder.ID)
		return &Result{Interrupted: true}, nil
	}
	if err != nil {
		errorText := genericFailureText
		if errors.Is(err, llmclient.ErrContextWindowExceeded) {
			errorText = contextTooLargeText
		}
		s.logger.Error("Model invocation failed",
			zap.String("session_id", sessionID), zap.Error(err))
		conv.Fill(placeholder.ID, errorText, nil, 0)
		placeholder.Content = errorText
		return &Result{Message: placeholder}, nil
	}

	finalContent := resp.Text
	mailtoURL := ""
	for _, call := range resp.FunctionCalls {
		switch call.Name {
		case llmclient.ToolSendInkRequest:
			color := call.Args["color"]
			location := call.Args["location"]
			mailtoURL = s.mailer.InkRequest(color, location)
			finalContent = fmt.Sprintf(inkConfirmationFormat, color, location)
			s.logger.Info("Ink request prepared",
				zap.String("session_id", sessionID),
				zap.String("color", color), zap.String("location", location))
		case llmclient.ToolSendChatHistory:
			mailtoURL = s.mailer.History(prior, time.Now())
			finalContent = historyConfirmationText
			s.logger.Info("Chat history export prepared", zap.String("session_id", sessionID))
		default:
			s.logger.Warn("Model requested unknown tool",
				zap.String("session_id", sessionID), zap.String("tool", call.Name))
		}
	}

	options := ParseOptions(finalContent)
	if !conv.Fill(placeholder.ID, finalContent, options, resp.TokensUsed) {
		return &Result{Interrupted: true}, nil
	}

	placeholder.Content = finalContent
	placeholder.Options = options
	placeholder.TokensUsed = resp.TokensUsed
	return &Result{Message: placeholder, MailtoURL: mailtoURL}, nil
}
