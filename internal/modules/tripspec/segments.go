// README: Segment validator: sequence, chronology, and connectivity checks for multi-city legs.
package tripspec

import (
	"errors"
	"fmt"
	"sort"
)

// Each check fails with its own violation kind so callers can tell the
// failures apart without string matching.
var (
	ErrInvalidSequence       = errors.New("invalid leg sequence")
	ErrOutOfOrderDates       = errors.New("leg dates out of order")
	ErrDisconnectedItinerary = errors.New("disconnected itinerary")
	ErrNotEnoughLegs         = errors.New("multi-city trip requires at least 2 legs")
)

// SegmentError attributes a violation to a leg position.
type SegmentError struct {
	Kind   error
	Detail string
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Detail)
}

func (e *SegmentError) Unwrap() error { return e.Kind }

// SortedBySequence returns a copy of legs ordered by sequence position.
func SortedBySequence(legs []FlightLeg) []FlightLeg {
	out := append([]FlightLeg(nil), legs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out
}

// ValidateSequence checks that sequence positions are exactly 1..N with no
// gaps or duplicates. Input order does not matter.
func ValidateSequence(legs []FlightLeg) error {
	sorted := SortedBySequence(legs)
	for i, leg := range sorted {
		if leg.Sequence != i+1 {
			return &SegmentError{
				Kind:   ErrInvalidSequence,
				Detail: fmt.Sprintf("expected position %d, got %d", i+1, leg.Sequence),
			}
		}
	}
	return nil
}

// ValidateChronology checks that departure dates strictly increase in
// sequence order.
func ValidateChronology(legs []FlightLeg) error {
	sorted := SortedBySequence(legs)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].DepartureDate <= sorted[i-1].DepartureDate {
			return &SegmentError{
				Kind: ErrOutOfOrderDates,
				Detail: fmt.Sprintf("leg %d departs %s, not after leg %d (%s)",
					sorted[i].Sequence, sorted[i].DepartureDate,
					sorted[i-1].Sequence, sorted[i-1].DepartureDate),
			}
		}
	}
	return nil
}

// ValidateConnectivity checks that each leg starts where the previous one
// ended. Advisory: booking is allowed without it.
func ValidateConnectivity(legs []FlightLeg) error {
	sorted := SortedBySequence(legs)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].OriginCode != sorted[i-1].DestCode {
			return &SegmentError{
				Kind: ErrDisconnectedItinerary,
				Detail: fmt.Sprintf("leg %d starts at %s but leg %d ends at %s",
					sorted[i].Sequence, sorted[i].OriginCode,
					sorted[i-1].Sequence, sorted[i-1].DestCode),
			}
		}
	}
	return nil
}

// ValidateForBooking is the gate used before any multi-city URL is built:
// at least 2 legs, valid sequence, and strictly increasing dates.
// Connectivity is not part of this gate.
func ValidateForBooking(legs []FlightLeg) error {
	if len(legs) < 2 {
		return ErrNotEnoughLegs
	}
	if err := ValidateSequence(legs); err != nil {
		return err
	}
	return ValidateChronology(legs)
}
