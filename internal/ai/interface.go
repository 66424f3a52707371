// README: Extraction provider contract for turning free text into a partial trip spec.
package ai

import "context"

// Extractor turns one user turn of free text into a best-effort partial
// trip specification. Implementations give no completeness guarantee; the
// merge and evaluation layers own that.
type Extractor interface {
	// ExtractTripSpec analyzes the user's message. extCtx carries lightweight
	// hints such as recent prior user turns and a free-text location hint.
	ExtractTripSpec(ctx context.Context, userMessage string, extCtx ExtractionContext) (*Extraction, error)
}

// ExtractionContext is the lightweight conversational context handed to the
// provider alongside the raw message.
type ExtractionContext struct {
	// RecentUserTurns are the last few user messages, oldest first.
	RecentUserTurns []string
	// LocationHint is a free-text hint about where the user likely is.
	LocationHint string
	// CurrentDate is today's date (YYYY-MM-DD) so relative dates resolve.
	CurrentDate string
}
