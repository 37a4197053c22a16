package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"
	"google.golang.org/genai"

	"gemini-chat/cmd/api/clients/geminiclient"
	"gemini-chat/cmd/api/router"
	"gemini-chat/cmd/api/services"
	"gemini-chat/cmd/internal/logger"
	"gemini-chat/config"
	"gemini-chat/storage"
)

// @title           Gemini Chat API
// @version         1.0
// @description     Conversation-based chat API backed by the Gemini API
// @BasePath        /api
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	// 자격 증명 누락은 요청 단위가 아니라 기동 단계에서 실패시킨다.
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable is not set")
	}

	ctx := context.Background()
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		log.Fatal("failed to initialize gemini client: ", err)
	}

	store := storage.NewMemStorage()
	generator := geminiclient.New(genaiClient, cfg.GeminiModel, time.Duration(cfg.LLM.TimeoutSeconds)*time.Second)
	chatSvc := services.NewChatService(store, generator)

	r := router.New(chatSvc)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})

	addr := cfg.Server.Addr
	if addr == "" {
		addr = ":8080"
	}
	logger.Log.Infof("listening on %s (model=%s)", addr, cfg.GeminiModel)
	if err := http.ListenAndServe(addr, corsMiddleware.Handler(r)); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
