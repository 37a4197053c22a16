package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gemini-chat/cmd/api/clients/geminiclient"
	"gemini-chat/cmd/api/dto"
	"gemini-chat/cmd/internal/logger"
	"gemini-chat/models"
	"gemini-chat/storage"
)

// 업스트림 응답이 비어 있을 때와 호출 자체가 실패했을 때의 고정 폴백 문구.
// 실패한 턴도 대화 기록에 남기기 위한 문자열이므로 임의로 바꾸면 안 된다.
const (
	emptyResponseFallback = "I'm sorry, I couldn't generate a response."
	connectivityFallback  = "I'm sorry, I'm having trouble connecting to my AI service right now. Please try again later."
)

// Generator 는 대화 이력을 받아 어시스턴트 응답 텍스트를 생성한다.
// 프로덕션 구현은 geminiclient.Client 이고, 테스트에서는 스텁으로 대체한다.
type Generator interface {
	Generate(ctx context.Context, history []geminiclient.Turn) (string, error)
}

// ChatService 는 대화/메시지 CRUD 와 한 턴의 채팅 오케스트레이션을 담당한다.
type ChatService struct {
	store     storage.Storage
	generator Generator
}

type ChatError struct {
	StatusCode int
	ErrorCode  string
	Cause      error
}

func (e *ChatError) Error() string {
	if e == nil {
		return "chat_failed"
	}
	return e.ErrorCode
}

func NewChatService(store storage.Storage, generator Generator) *ChatService {
	return &ChatService{store: store, generator: generator}
}

func (s *ChatService) ListConversations(ctx context.Context) ([]models.Conversation, *ChatError) {
	conversations, err := s.store.ListConversations(ctx)
	if err != nil {
		return nil, &ChatError{StatusCode: http.StatusInternalServerError, ErrorCode: "storage_failed", Cause: err}
	}
	return conversations, nil
}

func (s *ChatService) GetConversation(ctx context.Context, id string) (*models.ConversationWithMessages, *ChatError) {
	conversation, err := s.store.GetConversation(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrConversationNotFound) {
			return nil, &ChatError{StatusCode: http.StatusNotFound, ErrorCode: "conversation_not_found", Cause: err}
		}
		return nil, &ChatError{StatusCode: http.StatusInternalServerError, ErrorCode: "storage_failed", Cause: err}
	}
	return conversation, nil
}

func (s *ChatService) CreateConversation(ctx context.Context, title string) (*models.Conversation, *ChatError) {
	conversation, err := s.store.CreateConversation(ctx, title)
	if err != nil {
		return nil, &ChatError{StatusCode: http.StatusInternalServerError, ErrorCode: "storage_failed", Cause: err}
	}
	return conversation, nil
}

func (s *ChatService) DeleteConversation(ctx context.Context, id string) *ChatError {
	deleted, err := s.store.DeleteConversation(ctx, id)
	if err != nil {
		return &ChatError{StatusCode: http.StatusInternalServerError, ErrorCode: "storage_failed", Cause: err}
	}
	if !deleted {
		return &ChatError{StatusCode: http.StatusNotFound, ErrorCode: "conversation_not_found"}
	}
	return nil
}

// SendMessage 는 한 턴의 채팅을 처리한다.
//  1. 내용 검증 후 유저 메시지를 저장한다.
//  2. 저장소에서 전체 이력을 다시 읽어 Gemini 에 컨텍스트로 전달한다.
//     (요청 중 버퍼가 아니라 저장된 기록 기준으로 응답하게 하기 위함)
//  3. 성공 시 응답을, 실패 시 고정 폴백 문구를 어시스턴트 메시지로 저장한다.
//
// 업스트림 실패 시에도 두 메시지는 저장되어 응답에 포함되고, ChatError 로
// 500 을 함께 알린다. 유저가 보낸 메시지가 조용히 사라지는 일은 없어야 한다.
func (s *ChatService) SendMessage(ctx context.Context, conversationID, content string) (dto.SendMessageResponseDTO, *ChatError) {
	content = strings.TrimSpace(content)
	if content == "" {
		return dto.SendMessageResponseDTO{}, &ChatError{StatusCode: http.StatusBadRequest, ErrorCode: "message_required"}
	}

	if _, err := s.store.GetConversation(ctx, conversationID); err != nil {
		if errors.Is(err, storage.ErrConversationNotFound) {
			return dto.SendMessageResponseDTO{}, &ChatError{StatusCode: http.StatusNotFound, ErrorCode: "conversation_not_found", Cause: err}
		}
		return dto.SendMessageResponseDTO{}, &ChatError{StatusCode: http.StatusInternalServerError, ErrorCode: "storage_failed", Cause: err}
	}

	userMessage, err := s.store.CreateMessage(ctx, conversationID, models.RoleUser, content)
	if err != nil {
		return dto.SendMessageResponseDTO{}, &ChatError{StatusCode: http.StatusInternalServerError, ErrorCode: "storage_failed", Cause: err}
	}

	history, err := s.store.ListMessages(ctx, conversationID)
	if err != nil {
		return dto.SendMessageResponseDTO{}, &ChatError{StatusCode: http.StatusInternalServerError, ErrorCode: "storage_failed", Cause: err}
	}

	turns := make([]geminiclient.Turn, 0, len(history))
	for _, msg := range history {
		turns = append(turns, geminiclient.Turn{Role: msg.Role, Text: msg.Content})
	}

	answer, genErr := s.generator.Generate(ctx, turns)
	if genErr != nil {
		logger.ErrorWithFields("gemini generate failed", logger.Fields{
			"conversation_id": conversationID,
			"error":           genErr.Error(),
		})

		assistantMessage, err := s.store.CreateMessage(ctx, conversationID, models.RoleAssistant, connectivityFallback)
		if err != nil {
			return dto.SendMessageResponseDTO{}, &ChatError{StatusCode: http.StatusInternalServerError, ErrorCode: "storage_failed", Cause: err}
		}
		return dto.SendMessageResponseDTO{
				UserMessage:      *userMessage,
				AssistantMessage: *assistantMessage,
			}, &ChatError{
				StatusCode: http.StatusInternalServerError,
				ErrorCode:  "generation_failed",
				Cause:      genErr,
			}
	}

	if strings.TrimSpace(answer) == "" {
		answer = emptyResponseFallback
	}

	assistantMessage, err := s.store.CreateMessage(ctx, conversationID, models.RoleAssistant, answer)
	if err != nil {
		return dto.SendMessageResponseDTO{}, &ChatError{StatusCode: http.StatusInternalServerError, ErrorCode: "storage_failed", Cause: err}
	}

	return dto.SendMessageResponseDTO{
		UserMessage:      *userMessage,
		AssistantMessage: *assistantMessage,
	}, nil
}
