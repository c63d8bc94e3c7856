package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/prajwalbhunte45/chatbot-project/internal/models"
)

// GeminiService wraps one Gemini model handle, created at startup and
// only read afterwards.
type GeminiService struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	log       *logrus.Logger
}

func NewGeminiService(ctx context.Context, apiKey, modelName string, log *logrus.Logger) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client:    client,
		model:     client.GenerativeModel(modelName),
		modelName: modelName,
		log:       log,
	}, nil
}

func (s *GeminiService) Name() string { return "gemini" }

func (s *GeminiService) Close() error {
	return s.client.Close()
}

// Generate sends prompt as a single text part. The SDK error is returned
// as is so its message reaches the client unchanged.
func (s *GeminiService) Generate(ctx context.Context, prompt string) (models.ProviderResult, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.ProviderResult{}, err
	}

	for i, cand := range resp.Candidates {
		entry := s.log.WithFields(logrus.Fields{
			"model":         s.modelName,
			"candidate":     i,
			"finish_reason": fmt.Sprint(cand.FinishReason),
			"token_count":   cand.TokenCount,
		})
		if cand.FinishReason != genai.FinishReasonStop {
			entry.Warn("Gemini candidate did not finish normally")
		} else {
			entry.Debug("Gemini candidate")
		}
	}

	return geminiResult(resp), nil
}

func geminiResult(resp *genai.GenerateContentResponse) models.ProviderResult {
	res := models.ProviderResult{Raw: resp}
	if text, ok := extractText(resp); ok {
		res.Text = &text
	}
	return res
}

// extractText joins the text parts of the first candidate. ok is false
// when that candidate carries no text part at all.
func extractText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return "", false
	}

	var (
		text  strings.Builder
		found bool
	)
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
			found = true
		}
	}
	return text.String(), found
}
