package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gemini-chat/docs"

	"gemini-chat/cmd/api/handlers"
	"gemini-chat/cmd/api/middleware"
	"gemini-chat/cmd/api/services"
)

func New(chatSvc *services.ChatService) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestTrace())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.GET("/conversations", handlers.ListConversationsHandler(chatSvc))
		api.POST("/conversations", handlers.CreateConversationHandler(chatSvc))
		api.GET("/conversations/:id", handlers.GetConversationHandler(chatSvc))
		api.DELETE("/conversations/:id", handlers.DeleteConversationHandler(chatSvc))
		api.POST("/conversations/:id/messages", handlers.SendMessageHandler(chatSvc))
	}

	return r
}
