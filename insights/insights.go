// Package insights asks Gemini for a short narrative about a dashboard summary.
package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"salesdash/models"
	"salesdash/utils"
)

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("gemini returned no text")

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// GeminiClient is a Generator backed by the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Model() string { return g.model }

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// BuildPrompt describes the summary and the user's selection in plain text.
func BuildPrompt(summary models.DashboardSummary, filters models.FilterOptions, question string) string {
	var b strings.Builder
	b.WriteString("You are a retail analyst. Summarize the supermarket sales below in three short bullet points.\n")
	fmt.Fprintf(&b, "Cities: %s\n", strings.Join(filters.Cities, ", "))
	fmt.Fprintf(&b, "Customer types: %s\n", strings.Join(filters.CustomerTypes, ", "))
	fmt.Fprintf(&b, "Genders: %s\n", strings.Join(filters.Genders, ", "))

	k := summary.KPIs
	fmt.Fprintf(&b, "Transactions: %d\n", k.Transactions)
	fmt.Fprintf(&b, "Total sales: US $ %s\n", utils.FormatThousands(k.TotalSales))
	fmt.Fprintf(&b, "Average rating: %s\n", utils.FormatAverage(k.AvgRating, k.HasData))
	fmt.Fprintf(&b, "Average sale per transaction: US $ %s\n", utils.FormatAverage(k.AvgSale, k.HasData))

	b.WriteString("Sales by product line:\n")
	for _, t := range summary.ByProductLine {
		fmt.Fprintf(&b, "- %s: %s\n", t.ProductLine, t.Total.StringFixed(2))
	}
	b.WriteString("Sales by hour:\n")
	for _, t := range summary.ByHour {
		fmt.Fprintf(&b, "- %02d:00: %s\n", t.Hour, t.Total.StringFixed(2))
	}

	if q := strings.TrimSpace(question); q != "" {
		fmt.Fprintf(&b, "Also answer: %s\n", q)
	}
	return b.String()
}
