package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gemini-chat/cmd/api/dto"
	"gemini-chat/cmd/api/services"
)

// ListConversationsHandler godoc
// @Summary      List conversations
// @Description  List all conversations, most recently created first
// @Tags         conversations
// @Produce      json
// @Success      200  {array}   models.Conversation
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /conversations [get]
func ListConversationsHandler(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		conversations, chatErr := svc.ListConversations(c.Request.Context())
		if chatErr != nil {
			c.JSON(chatErr.StatusCode, dto.ErrorResponseDTO{Error: chatErr.ErrorCode})
			return
		}
		c.JSON(http.StatusOK, conversations)
	}
}

// GetConversationHandler godoc
// @Summary      Get conversation
// @Description  Get a conversation with its messages in chronological order
// @Tags         conversations
// @Param        id   path   string  true  "conversation id"
// @Produce      json
// @Success      200  {object}  models.ConversationWithMessages
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /conversations/{id} [get]
func GetConversationHandler(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		conversation, chatErr := svc.GetConversation(c.Request.Context(), c.Param("id"))
		if chatErr != nil {
			c.JSON(chatErr.StatusCode, dto.ErrorResponseDTO{Error: chatErr.ErrorCode})
			return
		}
		c.JSON(http.StatusOK, conversation)
	}
}

// CreateConversationHandler godoc
// @Summary      Create conversation
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateConversationRequestDTO  true  "conversation to create"
// @Success      200   {object}  models.Conversation
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /conversations [post]
func CreateConversationHandler(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateConversationRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}

		conversation, chatErr := svc.CreateConversation(c.Request.Context(), req.Title)
		if chatErr != nil {
			c.JSON(chatErr.StatusCode, dto.ErrorResponseDTO{Error: chatErr.ErrorCode})
			return
		}
		c.JSON(http.StatusOK, conversation)
	}
}

// DeleteConversationHandler godoc
// @Summary      Delete conversation
// @Description  Delete a conversation and all of its messages
// @Tags         conversations
// @Param        id   path   string  true  "conversation id"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /conversations/{id} [delete]
func DeleteConversationHandler(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if chatErr := svc.DeleteConversation(c.Request.Context(), c.Param("id")); chatErr != nil {
			c.JSON(chatErr.StatusCode, dto.ErrorResponseDTO{Error: chatErr.ErrorCode})
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "conversation deleted successfully"})
	}
}
