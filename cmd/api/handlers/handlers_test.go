package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemini-chat/cmd/api/clients/geminiclient"
	"gemini-chat/cmd/api/dto"
	"gemini-chat/cmd/api/router"
	"gemini-chat/cmd/api/services"
	"gemini-chat/models"
	"gemini-chat/storage"
)

type stubGenerator struct {
	answer string
	err    error
}

func (g *stubGenerator) Generate(ctx context.Context, history []geminiclient.Turn) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

func newTestServer(gen services.Generator) (*gin.Engine, storage.Storage) {
	gin.SetMode(gin.TestMode)
	store := storage.NewMemStorage()
	svc := services.NewChatService(store, gen)
	return router.New(svc), store
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCreateConversationValidation(t *testing.T) {
	engine, _ := newTestServer(&stubGenerator{})

	testCases := []struct {
		name string
		body string
		want int
	}{
		{name: "missing title", body: `{}`, want: http.StatusBadRequest},
		{name: "empty body", body: ``, want: http.StatusBadRequest},
		{name: "valid title", body: `{"title":"Trip planning"}`, want: http.StatusOK},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			rec := doJSON(t, engine, http.MethodPost, "/api/conversations", testCase.body)
			if rec.Code != testCase.want {
				t.Fatalf("expected status %d, got %d (body=%s)", testCase.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGetConversationNotFound(t *testing.T) {
	engine, _ := newTestServer(&stubGenerator{})

	rec := doJSON(t, engine, http.MethodGet, "/api/conversations/no-such-id", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body dto.ErrorResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "conversation_not_found", body.Error)
}

func TestDeleteConversation(t *testing.T) {
	engine, _ := newTestServer(&stubGenerator{})

	rec := doJSON(t, engine, http.MethodPost, "/api/conversations", `{"title":"to delete"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var conv models.Conversation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conv))

	rec = doJSON(t, engine, http.MethodDelete, "/api/conversations/"+conv.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, engine, http.MethodDelete, "/api/conversations/"+conv.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListConversations(t *testing.T) {
	engine, _ := newTestServer(&stubGenerator{})

	for _, title := range []string{"older", "newer"} {
		rec := doJSON(t, engine, http.MethodPost, "/api/conversations", `{"title":"`+title+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, engine, http.MethodGet, "/api/conversations", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var conversations []models.Conversation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conversations))
	require.Len(t, conversations, 2)
	assert.False(t, conversations[0].CreatedAt.Before(conversations[1].CreatedAt))
}

func TestSendMessageEndToEnd(t *testing.T) {
	engine, _ := newTestServer(&stubGenerator{answer: "Day 1: Arashiyama bamboo grove."})

	rec := doJSON(t, engine, http.MethodPost, "/api/conversations", `{"title":"Trip planning"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var conv models.Conversation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conv))

	rec = doJSON(t, engine, http.MethodPost, "/api/conversations/"+conv.ID+"/messages",
		`{"content":"Plan a 3-day trip to Kyoto"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.SendMessageResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.RoleUser, resp.UserMessage.Role)
	assert.Equal(t, "Plan a 3-day trip to Kyoto", resp.UserMessage.Content)
	assert.Equal(t, models.RoleAssistant, resp.AssistantMessage.Role)
	assert.NotEmpty(t, resp.AssistantMessage.Content)

	// 대화 조회 시 [user, assistant] 순서의 두 메시지가 그대로 보여야 한다.
	rec = doJSON(t, engine, http.MethodGet, "/api/conversations/"+conv.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.ConversationWithMessages
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Messages, 2)
	assert.Equal(t, models.RoleUser, got.Messages[0].Role)
	assert.Equal(t, models.RoleAssistant, got.Messages[1].Role)
}

func TestSendMessageBlankContent(t *testing.T) {
	engine, store := newTestServer(&stubGenerator{answer: "unused"})

	rec := doJSON(t, engine, http.MethodPost, "/api/conversations", `{"title":"validation"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var conv models.Conversation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conv))

	rec = doJSON(t, engine, http.MethodPost, "/api/conversations/"+conv.ID+"/messages", `{"content":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	msgs, err := store.ListMessages(context.Background(), conv.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestSendMessageUnknownConversation(t *testing.T) {
	engine, _ := newTestServer(&stubGenerator{answer: "unused"})

	rec := doJSON(t, engine, http.MethodPost, "/api/conversations/no-such-id/messages", `{"content":"hello"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSendMessageUpstreamFailure(t *testing.T) {
	engine, store := newTestServer(&stubGenerator{err: errors.New("gemini unreachable")})

	rec := doJSON(t, engine, http.MethodPost, "/api/conversations", `{"title":"failure"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var conv models.Conversation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conv))

	rec = doJSON(t, engine, http.MethodPost, "/api/conversations/"+conv.ID+"/messages", `{"content":"hello?"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// 실패한 턴도 두 메시지와 함께 응답 바디에 포함된다.
	var body dto.SendMessageErrorDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "generation_failed", body.Error)
	assert.Equal(t, "hello?", body.UserMessage.Content)
	assert.Equal(t,
		"I'm sorry, I'm having trouble connecting to my AI service right now. Please try again later.",
		body.AssistantMessage.Content)

	msgs, err := store.ListMessages(context.Background(), conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, body.AssistantMessage.Content, msgs[1].Content)
}

func TestHealth(t *testing.T) {
	engine, _ := newTestServer(&stubGenerator{})

	rec := doJSON(t, engine, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
