// README: Gemini-backed extraction provider (JSON mode, flight-search prompt).
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiExtractor implements Extractor using Google's Gemini models.
type GeminiExtractor struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiExtractor initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiExtractor(ctx context.Context, apiKey string) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.2)

	return &GeminiExtractor{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiExtractor) Close() {
	p.client.Close()
}

// ExtractTripSpec analyzes user input and extracts flight search fields.
func (p *GeminiExtractor) ExtractTripSpec(ctx context.Context, userMessage string, extCtx ExtractionContext) (*Extraction, error) {
	fullPrompt := fmt.Sprintf("%s\n\nUser Message: %s", buildSystemPrompt(extCtx), userMessage)

	resp, err := p.model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// JSON mode should already prevent markdown fences, but strip them anyway.
	cleanJSON := cleanJSONString(responseText.String())

	var result Extraction
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}
	return &result, nil
}

// buildSystemPrompt constructs the extraction instructions for the AI.
func buildSystemPrompt(extCtx ExtractionContext) string {
	currentDate := extCtx.CurrentDate
	if currentDate == "" {
		currentDate = "UNKNOWN_DATE"
	}
	locationHint := extCtx.LocationHint
	if locationHint == "" {
		locationHint = "UNKNOWN_LOCATION"
	}
	recent := "NONE"
	if len(extCtx.RecentUserTurns) > 0 {
		recent = "- " + strings.Join(extCtx.RecentUserTurns, "\n- ")
	}

	return fmt.Sprintf(`Role: You are the extraction core for "Farelink", a conversational flight search assistant.
Context:
- Current Date: %s
- User Location Hint: %s
- Recent User Messages:
%s

TASK: Extract flight search fields from the user's message. Only fill fields the user
actually mentioned this turn or confirmed earlier; leave everything else null. The
server merges your output with the stored search, so NEVER invent values and NEVER
null out a field just because this turn does not repeat it.

RULES:
1. AIRPORT CODES: "origin_code"/"destination_code" are IATA codes, exactly 3 uppercase
   letters (e.g. Sydney -> SYD, Tokyo Narita -> NRT). If the user names a city with
   several airports and does not disambiguate, pick the primary international airport
   and put the human-readable name in the matching *_name field.
2. DATES: resolve relative expressions ("next Friday", "in three weeks") against the
   Current Date and emit YYYY-MM-DD. Never emit a past date.
3. TRIP KIND: set "trip_kind" only when the user is explicit ("one way", "round trip",
   "and back", a multi-stop itinerary). A mentioned return date alone does NOT make it
   explicit; leave it null and the server will infer.
4. MULTI-CITY: when the user lists an itinerary with 2+ flights, emit "legs" with
   1-based contiguous "sequence" values in travel order, and set trip_kind "multicity".
   Always emit the FULL leg list, never a delta.
5. PASSENGERS: "adults" 1-9, "children" 0-8, "infants" 0-8. Fill only when mentioned.
6. CABIN: "cabin_class" is one letter: Y (economy), S (premium economy), C (business),
   F (first).
7. SUGGESTED STEP: "collecting" while required fields are still missing; "confirming"
   when the user seems done and should review the search.
8. REPLY: one short, friendly sentence. Ask for the single most important missing field,
   or summarize the search when confirming. No markdown, no internal state words.

Output JSON Schema:
{
  "origin_code": "string|null", "origin_name": "string|null",
  "destination_code": "string|null", "destination_name": "string|null",
  "departure_date": "YYYY-MM-DD|null", "return_date": "YYYY-MM-DD|null",
  "trip_kind": "oneway"|"return"|"multicity"|null,
  "adults": int|null, "children": int|null, "infants": int|null,
  "cabin_class": "Y"|"S"|"C"|"F"|null,
  "legs": [{"sequence": int, "origin_code": "XXX", "origin_name": "string",
            "destination_code": "XXX", "destination_name": "string",
            "departure_date": "YYYY-MM-DD"}],
  "suggested_step": "collecting"|"confirming",
  "reply": "string"
}
`, currentDate, locationHint, recent)
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
