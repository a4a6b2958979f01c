package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// Generation settings follow the product tuning: answers are allowed
// some variety, image descriptions are kept short and literal.
const (
	geminiAnswerTemperature   = 0.7
	geminiAnswerMaxTokens     = 2048
	geminiDescribeTemperature = 0.3
	geminiDescribeMaxTokens   = 500
)

// Gemini talks to the Google generative language REST API. It is the
// only provider that implements both core.Completer and core.Describer;
// the others cannot see images.
type Gemini struct {
	baseProvider
}

func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{
		baseProvider: newBaseProvider(geminiBaseURL, apiKey, model),
	}
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, []geminiPart{{Text: prompt}}, geminiAnswerTemperature, geminiAnswerMaxTokens)
}

// Describe captions an attached image with the student's question as a
// content hint, per the vision prompt below.
func (g *Gemini) Describe(ctx context.Context, imageBase64, hintQuery string) (string, error) {
	parts := []geminiPart{
		{Text: describePrompt(hintQuery)},
		{InlineData: &geminiInlineData{MimeType: "image/jpeg", Data: imageBase64}},
	}
	return g.generate(ctx, parts, geminiDescribeTemperature, geminiDescribeMaxTokens)
}

func (g *Gemini) generate(ctx context.Context, parts []geminiPart, temperature float64, maxTokens int) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxTokens,
		},
	}

	headers := map[string]string{"x-goog-api-key": g.apiKey}
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", g.model)

	resp, err := g.doRequest(ctx, http.MethodPost, path, payload, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

func describePrompt(hintQuery string) string {
	if hintQuery != "" {
		return fmt.Sprintf(`Analyze this image and describe what you see that's relevant to the user's question: %q

Focus on describing the scientific content, diagrams, experiments, or educational elements that would help answer the question.
Provide a detailed description of the image content that relates to NCERT Science Class 8 curriculum.`, hintQuery)
	}
	return "Please describe this image in detail, focusing on any scientific or educational content that might be relevant to NCERT Science Class 8 curriculum."
}
