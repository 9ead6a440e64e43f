package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mfauzirh/dropout-predictor/internal/config"
	"github.com/mfauzirh/dropout-predictor/internal/ml"
	"google.golang.org/genai"
)

type AdvisorServiceInterface interface {
	Advise(ctx context.Context, studentID string, riskLevel string, factors []ml.Factor) (string, error)
}

// AdvisorService turns a prediction's contributing factors into short
// intervention advice for counselors using Gemini.
type AdvisorService struct {
	Client         *genai.Client
	RequestTimeout time.Duration
}

func NewAdvisorService(ctx context.Context) (*AdvisorService, error) {
	geminiConfig := config.LoadGeminiConfig()
	apiKey := geminiConfig.APIKey
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &AdvisorService{
		Client:         client,
		RequestTimeout: 30 * time.Second,
	}, nil
}

func (s *AdvisorService) Advise(ctx context.Context, studentID string, riskLevel string, factors []ml.Factor) (string, error) {
	var sb strings.Builder
	for i, f := range factors {
		fmt.Fprintf(&sb, "%d. %s (value %.2f, contribution %.3f)\n", i+1, f.Factor, f.Value, f.Contribution)
	}

	prompt := fmt.Sprintf(`You are an academic counselor assistant. A dropout-risk model
flagged student %s as %s risk. The top contributing factors were:

%s
Write 3-4 short, concrete intervention suggestions a counselor could act on this week.
Plain text, no preamble.`, studentID, riskLevel, sb.String())

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.3)),
	}
	result, err := s.Client.Models.GenerateContent(
		timeoutCtx,
		"gemini-2.5-flash",
		genai.Text(prompt),
		genConfig,
	)
	if err != nil {
		return "", err
	}
	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty advice response")
	}
	return text, nil
}
