// README: Trip specification aggregate: route, dates, passengers, cabin, multi-city legs.
package tripspec

import (
	"errors"
	"time"

	"farelink/internal/types"
)

// TripKind classifies a search as one-way, return, or multi-city.
type TripKind string

const (
	KindOneWay    TripKind = "oneway"
	KindReturn    TripKind = "return"
	KindMultiCity TripKind = "multicity"
)

// CabinClass is the IATA-style single-letter booking class.
type CabinClass string

const (
	CabinEconomy  CabinClass = "Y"
	CabinPremium  CabinClass = "S"
	CabinBusiness CabinClass = "C"
	CabinFirst    CabinClass = "F"
)

// Passenger count bounds. Adults below 1 and anything above the upper
// bounds are clamped, not rejected.
const (
	MinAdults   = 1
	MaxAdults   = 9
	MinChildren = 0
	MaxChildren = 8
	MinInfants  = 0
	MaxInfants  = 8
)

var (
	ErrNotFound       = errors.New("trip specification not found")
	ErrBadRequest     = errors.New("bad request")
	ErrTooManyInfants = errors.New("infants must not exceed adults")
)

// TripSpecification is the structured flight search being assembled across
// conversation turns. Scalar fields stay nil until a turn resolves them.
// Dates are calendar dates in YYYY-MM-DD form.
type TripSpecification struct {
	ID             types.ID
	ConversationID types.ID
	OriginCode     *string
	OriginName     *string
	DestCode       *string
	DestName       *string
	DepartureDate  *string
	ReturnDate     *string
	TripKind       TripKind
	Adults         int
	Children       int
	Infants        int
	Cabin          *CabinClass
	Legs           []FlightLeg
	// IsComplete is a cached verdict. It is never authoritative: always
	// recompute via Evaluate before trusting it.
	IsComplete bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FlightLeg is one origin→destination flight of a multi-city itinerary.
// Sequence is 1-based and must be contiguous within a specification.
type FlightLeg struct {
	Sequence      int
	OriginCode    string
	OriginName    string
	DestCode      string
	DestName      string
	DepartureDate string
}

// NewSpecification returns an empty specification with documented defaults.
func NewSpecification(conversationID types.ID, now time.Time) *TripSpecification {
	return &TripSpecification{
		ConversationID: conversationID,
		Adults:         MinAdults,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Partial is a best-effort fragment of a specification, produced by the
// extraction layer or by decoding a booking URL. Nil means "not mentioned".
type Partial struct {
	OriginCode    *string
	OriginName    *string
	DestCode      *string
	DestName      *string
	DepartureDate *string
	ReturnDate    *string
	TripKind      *TripKind
	Adults        *int
	Children      *int
	Infants       *int
	Cabin         *CabinClass
	Legs          []FlightLeg
}

// IsEmpty reports whether the partial carries no information at all.
func (p Partial) IsEmpty() bool {
	return p.OriginCode == nil && p.OriginName == nil &&
		p.DestCode == nil && p.DestName == nil &&
		p.DepartureDate == nil && p.ReturnDate == nil &&
		p.TripKind == nil && p.Adults == nil && p.Children == nil &&
		p.Infants == nil && p.Cabin == nil && len(p.Legs) == 0
}
