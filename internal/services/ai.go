package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/worklog-api/internal/models"
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type AIService struct {
	client chatCompleter
	model  string
}

type GeneratedReport struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func NewAIService(apiKey, model string) *AIService {
	if model == "" {
		model = openai.GPT4o
	}
	return &AIService{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// DraftReport summarizes hour logs into a work report using OpenAI GPT
func (s *AIService) DraftReport(ctx context.Context, logs []models.HourLog) (*GeneratedReport, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	var entries strings.Builder
	var total float64
	for _, log := range logs {
		fmt.Fprintf(&entries, "- %s: %.2fh %s\n", log.Date.Format("2006-01-02"), log.Hours, log.Description)
		total += log.Hours
	}

	prompt := fmt.Sprintf(`You are an assistant that writes work reports from timesheet entries.

Timesheet entries (%d entries, %.2f hours in total):
%s
Return a JSON object in this format:
{
  "title": "a short report title",
  "content": "the report body in plain text, grouping related work and mentioning hours spent"
}

Notes:
- Only describe work that appears in the entries
- Return JSON only, without any explanation`, len(logs), total, entries.String())

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var report GeneratedReport
	if err := json.Unmarshal([]byte(content), &report); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	if strings.TrimSpace(report.Content) == "" {
		return nil, fmt.Errorf("AI response has no report content")
	}

	return &report, nil
}
