package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"palaver/internal/services"
	"palaver/internal/transport/httpdto"
)

type MessageHandler struct {
	conversations *services.ConversationService
	messages      *services.MessageService
	reactions     *services.ReactionService
}

func NewMessageHandler(conversations *services.ConversationService, messages *services.MessageService, reactions *services.ReactionService) *MessageHandler {
	return &MessageHandler{
		conversations: conversations,
		messages:      messages,
		reactions:     reactions,
	}
}

// List returns the caller's conversation with ?from=<username>.
func (h *MessageHandler) List(c *gin.Context) {
	peer := c.Query("from")
	if peer == "" {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("missing from", "INVALID_REQUEST"))
		return
	}

	messages, err := h.conversations.GetMessages(c.Request.Context(), peer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(messages))
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	message, err := h.messages.SendMessage(c.Request.Context(), req.To, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(message))
}

func (h *MessageHandler) React(c *gin.Context) {
	var req httpdto.ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	reaction, err := h.reactions.ReactToMessage(c.Request.Context(), c.Param("uuid"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(reaction))
}
