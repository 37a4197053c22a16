package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gemini-chat/cmd/api/dto"
	"gemini-chat/cmd/api/services"
)

// SendMessageHandler godoc
// @Summary      Send message
// @Description  Append a user message, call Gemini with the full conversation
// @Description  history, and append the assistant reply. When the upstream call
// @Description  fails the turn is still recorded with a fallback reply and both
// @Description  messages are returned alongside a 500.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "conversation id"
// @Param        body  body      dto.SendMessageRequestDTO  true  "message content"
// @Success      200   {object}  dto.SendMessageResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      404   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.SendMessageErrorDTO
// @Router       /conversations/{id}/messages [post]
func SendMessageHandler(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.SendMessageRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}

		resp, chatErr := svc.SendMessage(c.Request.Context(), c.Param("id"), req.Content)
		if chatErr != nil {
			// 턴이 기록된 실패(업스트림 장애)는 두 메시지를 에러와 함께 내려준다.
			if resp.UserMessage.ID != "" {
				c.JSON(chatErr.StatusCode, dto.SendMessageErrorDTO{
					Error:            chatErr.ErrorCode,
					UserMessage:      resp.UserMessage,
					AssistantMessage: resp.AssistantMessage,
				})
				return
			}
			c.JSON(chatErr.StatusCode, dto.ErrorResponseDTO{Error: chatErr.ErrorCode})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
