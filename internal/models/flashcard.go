package models

import "time"

type Card struct {
	ID       string `bson:"id" json:"id"`
	Front    string `bson:"front" json:"front"`
	Back     string `bson:"back" json:"back"`
	ImageURL string `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Position int    `bson:"position" json:"position"`
}

// Flashcard is a deck of cards. Card order is carried by the explicit
// Position field, not by storage order.
type Flashcard struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Tags        []string  `bson:"tags" json:"tags"`
	CreatedBy   string    `bson:"created_by" json:"createdBy"`
	IsPublic    bool      `bson:"is_public" json:"isPublic"`
	Cards       []Card    `bson:"cards" json:"cards"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
