package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
)

const vertexSystemPrompt = "You are a pre-sales engineer at a software agency. You draft itemized project quotations in Indian Rupees. You must output your response as a single valid JSON object."

const vertexUserPrompt = `Draft a quotation for the project brief below.

Return a JSON object with exactly these keys:
- "projectType": a short category such as "Web Development".
- "projectName": "<projectType> for <client name>".
- "summary": two sentences describing the engagement.
- "deliverables": an array of strings.
- "timeline": an estimated duration such as "4-6 Weeks".
- "lineItems": an array of {"description": string, "amount": number} priced in INR, between 3 and 8 entries.
- "terms": an array of commercial terms.

Do not include any text before or after the JSON object.`

// VertexGenerator drafts content with a Gemini model on Vertex AI.
type VertexGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

var _ ContentGenerator = (*VertexGenerator)(nil)

// NewVertexGenerator creates a client for projectID/region and configures
// modelName for JSON output.
func NewVertexGenerator(ctx context.Context, projectID, region, modelName string) (*VertexGenerator, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("NewVertexGenerator: projectID and region cannot be empty")
	}
	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(vertexSystemPrompt)},
	}
	model.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.2),
	}
	return &VertexGenerator{client: client, model: model}, nil
}

// Generate implements ContentGenerator.
func (g *VertexGenerator) Generate(ctx context.Context, req Request) (Content, error) {
	req = ApplyPreset(req)
	if strings.TrimSpace(req.Description) == "" {
		return Content{}, fmt.Errorf("project description is required")
	}

	brief := fmt.Sprintf("Client: %s\nBudget range (INR): %s\n\n%s", orDefault(req.ClientName, "Client"), orDefault(req.Budget, "not specified"), req.Description)
	resp, err := g.model.GenerateContent(ctx, genai.Text(vertexUserPrompt), genai.Text(brief))
	if err != nil {
		return Content{}, fmt.Errorf("failed to generate quotation from gemini: %w", err)
	}

	raw := extractJSON(resp)
	if raw == "" {
		return Content{}, fmt.Errorf("gemini returned an empty response")
	}
	var content Content
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return Content{}, fmt.Errorf("failed to parse JSON from model: %w", err)
	}
	if len(content.LineItems) == 0 {
		return Content{}, fmt.Errorf("model returned no line items")
	}
	if len(content.Terms) == 0 {
		content.Terms = append([]string(nil), DefaultTerms...)
	}
	return content, nil
}

// Close releases the underlying client.
func (g *VertexGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func extractJSON(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return ""
	}
	clean := strings.TrimSpace(string(txt))
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
