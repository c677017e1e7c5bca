package model

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MinTextLength is the shortest accepted frustration, counted after trimming.
const MinTextLength = 8

// Item represents one submitted frustration.
type Item struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Category  Category  `json:"category"`
	Impact    Impact    `json:"impact"`
	CreatedAt time.Time `json:"created_at"`
}

// NewItem creates a new Item with a fresh ID. The text is trimmed and must be
// at least MinTextLength runes long.
func NewItem(text string, category Category, impact Impact, now time.Time) (Item, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinTextLength {
		return Item{}, &ValidationError{Field: "text", Message: "Please write a bit more."}
	}
	if !category.Valid() {
		return Item{}, &ValidationError{Field: "category", Message: "Unknown category."}
	}
	if !impact.Valid() {
		return Item{}, &ValidationError{Field: "impact", Message: "Unknown impact."}
	}
	return Item{
		ID:        uuid.New(),
		Text:      text,
		Category:  category,
		Impact:    impact,
		CreatedAt: now,
	}, nil
}
