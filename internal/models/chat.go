package models

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type ChatMessage struct {
	ID        string    `bson:"id" json:"id"`
	Content   string    `bson:"content" json:"content"`
	Role      string    `bson:"role" json:"role"`
	Model     string    `bson:"model,omitempty" json:"model,omitempty"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

type ChatSession struct {
	ID        string        `bson:"_id,omitempty" json:"id"`
	UserID    string        `bson:"user_id" json:"userId"`
	Title     string        `bson:"title" json:"title"`
	Messages  []ChatMessage `bson:"messages" json:"messages"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updatedAt"`
}
