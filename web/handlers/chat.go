package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/chat"
	apperrors "github.com/Kapiti-Coast-District-Libraries/LibSysAI/errors"
	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/web/format"
)

type ChatHandler struct {
	service *chat.Service
	logger  *zap.Logger
}

type ChatRequest struct {
	Message string `json:"message" form:"message"`
}

type messageView struct {
	ID         string   `json:"id"`
	Role       string   `json:"role"`
	Content    string   `json:"content"`
	HTML       string   `json:"html,omitempty"`
	Options    []string `json:"options,omitempty"`
	TokensUsed int      `json:"tokens_used,omitempty"`
}

func NewChatHandler(service *chat.Service, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

func viewOf(m chat.Message) messageView {
	view := messageView{
		ID:         m.ID,
		Role:       m.Role,
		Content:    m.Content,
		Options:    m.Options,
		TokensUsed: m.TokensUsed,
	}
	if m.Role == chat.RoleModel {
		view.HTML = format.RenderHTML(m.Content)
	}
	return view
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uuid.UUID)

	var req ChatRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.service.Send(c.Request.Context(), sessionID.String(), req.Message)
	if err != nil {
		if apperrors.IsInvalidInput(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Chat turn failed",
			zap.String("session_id", sessionID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "chat turn failed"})
		return
	}

	if result.Interrupted {
		c.JSON(http.StatusOK, gin.H{"interrupted": true})
		return
	}

	response := gin.H{"message": viewOf(result.Message)}
	if result.MailtoURL != "" {
		response["mailto"] = result.MailtoURL
	}
	c.JSON(http.StatusOK, response)
}

func (h *ChatHandler) StopGeneration(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uuid.UUID)
	h.service.Stop(sessionID.String())
	c.JSON(http.StatusOK, gin.H{"stopped": true})
}

func (h *ChatHandler) ResetConversation(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uuid.UUID)
	h.service.Reset(sessionID.String())
	c.JSON(http.StatusOK, gin.H{"reset": true})
}

func (h *ChatHandler) History(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uuid.UUID)

	messages := h.service.History(sessionID.String())
	views := make([]messageView, len(messages))
	for i, m := range messages {
		views[i] = viewOf(m)
	}
	c.JSON(http.StatusOK, gin.H{"messages": views})
}
