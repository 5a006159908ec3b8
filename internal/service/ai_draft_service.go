package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"authoring_console_backend/internal/config"
	"authoring_console_backend/internal/domain"
	"authoring_console_backend/internal/model"
	"authoring_console_backend/internal/util"
)

// AIDraftService asks a chat-completion endpoint to draft a question, then
// gates the draft through the same validator that guards every other write
// path. A draft that fails validation is rejected, never persisted.
type AIDraftService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIDraftService(cfg config.AIConfig) *AIDraftService {
	return &AIDraftService{config: cfg, client: &http.Client{}}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// DraftRequest describes the question the author wants drafted.
type DraftRequest struct {
	Type       model.QuestionType `json:"type" binding:"required"`
	Topic      string             `json:"topic" binding:"required"`
	Difficulty model.Difficulty   `json:"difficulty"`
	Points     int                `json:"points"`
}

const draftSystemPrompt = `You draft assessment questions. Reply with a single JSON object only, no prose and no code fences. The object must have: "type", "content" (object with "text"), "points" (integer), and, when the type uses them, "options" (array of {"id","text","isCorrect"}) and "correctAnswer".`

// Draft produces one validated question draft. The caller still reviews and
// saves it; this never writes to the bank.
func (s *AIDraftService) Draft(ctx context.Context, req DraftRequest) (*model.Question, []domain.ValidationError, error) {
	prompt := fmt.Sprintf("Draft one %s question about: %s.", req.Type, req.Topic)
	if req.Difficulty != "" {
		prompt += fmt.Sprintf(" Difficulty: %s.", req.Difficulty)
	}
	if req.Points > 0 {
		prompt += fmt.Sprintf(" Worth %d points.", req.Points)
	}

	raw, err := s.chat(ctx, prompt)
	if err != nil {
		return nil, nil, err
	}

	var q model.Question
	if err := json.Unmarshal([]byte(sanitizeDraft(raw)), &q); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", util.ErrDraftRejected, err)
	}
	if req.Points > 0 {
		q.Points = req.Points
	}
	if q.Difficulty == "" {
		q.Difficulty = req.Difficulty
	}

	if verrs := domain.Validate(&q); len(verrs) > 0 {
		return nil, verrs, util.ErrDraftRejected
	}
	return &q, nil, nil
}

func (s *AIDraftService) chat(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: draftSystemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("AI returned no choices")
}

// sanitizeDraft strips the code fences models add despite being told not to.
func sanitizeDraft(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	}
	return strings.TrimSpace(raw)
}
