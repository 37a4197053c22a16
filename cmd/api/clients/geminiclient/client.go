package geminiclient

import (
	"context"
	"time"

	"google.golang.org/genai"

	"gemini-chat/cmd/internal/logger"
)

const defaultTimeout = 60 * time.Second

// Turn 은 Gemini 에 전달하는 대화 이력의 한 항목이다.
// Role 은 저장소의 역할 값("user"/"assistant")을 그대로 사용한다.
type Turn struct {
	Role string
	Text string
}

// Client 는 Gemini 생성 호출을 감싸는 클라이언트다.
// genai 클라이언트는 프로세스 시작 시 한 번 생성해 주입한다.
type Client struct {
	genai   *genai.Client
	model   string
	timeout time.Duration
}

func New(client *genai.Client, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{genai: client, model: model, timeout: timeout}
}

// Generate 는 전체 대화 이력을 컨텍스트로 Gemini 를 호출해 응답 텍스트를 반환한다.
// 응답에 사용할 텍스트가 없으면 빈 문자열을 반환한다. (폴백 처리는 호출자 책임)
func (c *Client) Generate(ctx context.Context, history []Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	result, err := c.genai.Models.GenerateContent(ctx, c.model, toContents(history), nil)
	if err != nil {
		return "", err
	}

	logger.InfoWithFields("gemini generate completed", logger.Fields{
		"model":       c.model,
		"turns":       len(history),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return result.Text(), nil
}

// toContents 는 저장소의 역할 값을 Gemini 가 기대하는 역할("user"/"model")로
// 매핑하면서 이력을 genai Content 목록으로 변환한다.
func toContents(history []Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		role := "user"
		if turn.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}
	return contents
}
