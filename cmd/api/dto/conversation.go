package dto

type CreateConversationRequestDTO struct {
	Title string `json:"title" binding:"required" example:"Trip planning"`
}
