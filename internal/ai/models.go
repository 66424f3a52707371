// README: Structured extraction result returned by the LLM.
package ai

import "farelink/internal/modules/tripspec"

// Extraction captures the structured output from the AI model for one turn.
// All spec fields are nullable: the model only fills what the user mentioned.
type Extraction struct {
	OriginCode    *string `json:"origin_code,omitempty"`
	OriginName    *string `json:"origin_name,omitempty"`
	DestCode      *string `json:"destination_code,omitempty"`
	DestName      *string `json:"destination_name,omitempty"`
	DepartureDate *string `json:"departure_date,omitempty"`
	ReturnDate    *string `json:"return_date,omitempty"`

	// TripKind is "oneway", "return", or "multicity"; null when the user has
	// not made it explicit.
	TripKind *string `json:"trip_kind,omitempty"`

	Adults   *int    `json:"adults,omitempty"`
	Children *int    `json:"children,omitempty"`
	Infants  *int    `json:"infants,omitempty"`
	Cabin    *string `json:"cabin_class,omitempty"`

	Legs []ExtractedLeg `json:"legs,omitempty"`

	// SuggestedStep is the model's read on where the conversation should go
	// next: "collecting" or "confirming". Advisory only.
	SuggestedStep string `json:"suggested_step,omitempty"`

	// Reply is a short user-facing response.
	Reply string `json:"reply"`
}

// ExtractedLeg is one multi-city leg as extracted from free text.
type ExtractedLeg struct {
	Sequence      int    `json:"sequence"`
	OriginCode    string `json:"origin_code"`
	OriginName    string `json:"origin_name,omitempty"`
	DestCode      string `json:"destination_code"`
	DestName      string `json:"destination_name,omitempty"`
	DepartureDate string `json:"departure_date"`
}

// Partial converts the extraction to the merge engine's input type.
func (e *Extraction) Partial() tripspec.Partial {
	p := tripspec.Partial{
		OriginCode:    e.OriginCode,
		OriginName:    e.OriginName,
		DestCode:      e.DestCode,
		DestName:      e.DestName,
		DepartureDate: e.DepartureDate,
		ReturnDate:    e.ReturnDate,
		Adults:        e.Adults,
		Children:      e.Children,
		Infants:       e.Infants,
	}
	if e.TripKind != nil && *e.TripKind != "" {
		k := tripspec.TripKind(*e.TripKind)
		p.TripKind = &k
	}
	if e.Cabin != nil && *e.Cabin != "" {
		c := tripspec.CabinClass(*e.Cabin)
		p.Cabin = &c
	}
	for _, leg := range e.Legs {
		p.Legs = append(p.Legs, tripspec.FlightLeg{
			Sequence:      leg.Sequence,
			OriginCode:    leg.OriginCode,
			OriginName:    leg.OriginName,
			DestCode:      leg.DestCode,
			DestName:      leg.DestName,
			DepartureDate: leg.DepartureDate,
		})
	}
	return p
}
