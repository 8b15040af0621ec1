package service

import (
	"fmt"
	"testing"

	"quizmaster-service/internal/llm"
	"quizmaster-service/internal/models"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"short message unchanged", "Explain recursion", "Explain recursion"},
		{"exactly thirty runes unchanged", "123456789012345678901234567890", "123456789012345678901234567890"},
		{"long message truncated with ellipsis", "What is the difference between TCP and UDP protocols", "What is the difference between..."},
		{"cut on sentence punctuation keeps no ellipsis", "Tell me about Go interfaces.?and some more text", "Tell me about Go interfaces.?a..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveTitle(tt.content)
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDeriveTitlePunctuationAtCut(t *testing.T) {
	// 30th rune is a question mark, so no ellipsis is appended.
	content := "Is Go garbage collected today?" + " and also compiled"
	got := deriveTitle(content)
	want := "Is Go garbage collected today?"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestDeriveTitleMultibyte(t *testing.T) {
	content := "日本語のクイズを作ってください。文法と語彙の両方を含めてほしいです。よろしくお願いします。"
	got := deriveTitle(content)
	if len([]rune(got)) > titleMaxLen+3 {
		t.Errorf("Expected at most %d runes plus ellipsis, got %d", titleMaxLen, len([]rune(got)))
	}
}

func TestBuildWindowShortHistory(t *testing.T) {
	messages := []models.ChatMessage{
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAssistant, Content: "hi"},
	}

	window := buildWindow(messages)

	if len(window) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(window))
	}
	if window[0].Role != models.RoleSystem {
		t.Errorf("Expected system message first, got role %q", window[0].Role)
	}
	if window[1].Content != "hello" || window[2].Content != "hi" {
		t.Errorf("Expected full history after system prompt, got %+v", window[1:])
	}
}

func TestBuildWindowTruncatesToLastTen(t *testing.T) {
	messages := make([]models.ChatMessage, 0, 25)
	for i := 0; i < 25; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		messages = append(messages, models.ChatMessage{Role: role, Content: fmt.Sprintf("msg-%d", i)})
	}

	window := buildWindow(messages)

	if len(window) != chatWindowSize+1 {
		t.Fatalf("Expected %d messages, got %d", chatWindowSize+1, len(window))
	}
	if window[0].Role != models.RoleSystem {
		t.Errorf("Expected system message first, got role %q", window[0].Role)
	}
	if window[1].Content != "msg-15" {
		t.Errorf("Expected window to start at msg-15, got %q", window[1].Content)
	}
	if window[len(window)-1].Content != "msg-24" {
		t.Errorf("Expected window to end at msg-24, got %q", window[len(window)-1].Content)
	}
}

func TestBuildWindowKeepsOrder(t *testing.T) {
	messages := []models.ChatMessage{
		{Role: models.RoleUser, Content: "first"},
		{Role: models.RoleAssistant, Content: "second"},
		{Role: models.RoleUser, Content: "third"},
	}

	window := buildWindow(messages)

	wantOrder := []llm.Message{
		{Role: models.RoleSystem, Content: chatSystemPrompt},
		{Role: models.RoleUser, Content: "first"},
		{Role: models.RoleAssistant, Content: "second"},
		{Role: models.RoleUser, Content: "third"},
	}
	for i, want := range wantOrder {
		if window[i] != want {
			t.Errorf("Expected message %d to be %+v, got %+v", i, want, window[i])
		}
	}
}
