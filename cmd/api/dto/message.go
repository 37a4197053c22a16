package dto

import "gemini-chat/models"

type SendMessageRequestDTO struct {
	Content string `json:"content" example:"Plan a 3-day trip to Kyoto"`
}

// SendMessageResponseDTO 는 한 턴(유저 메시지 + 어시스턴트 응답)의 결과다.
type SendMessageResponseDTO struct {
	UserMessage      models.Message `json:"userMessage"`
	AssistantMessage models.Message `json:"assistantMessage"`
}

// SendMessageErrorDTO 는 업스트림 생성 실패 시의 응답이다.
// 실패한 턴도 기록되므로 두 메시지를 에러와 함께 그대로 내려준다.
type SendMessageErrorDTO struct {
	Error            string         `json:"error" example:"generation_failed"`
	UserMessage      models.Message `json:"userMessage"`
	AssistantMessage models.Message `json:"assistantMessage"`
}
