// README: Segment validator tests: sequence, chronology, connectivity.
package tripspec

import (
	"errors"
	"testing"
)

func legsSYDBKKNRT() []FlightLeg {
	return []FlightLeg{
		{Sequence: 1, OriginCode: "SYD", DestCode: "BKK", DepartureDate: "2025-03-05"},
		{Sequence: 2, OriginCode: "BKK", DestCode: "NRT", DepartureDate: "2025-03-12"},
	}
}

func TestValidateSequenceAcceptsAnyInputOrder(t *testing.T) {
	orders := [][]int{{1, 2, 3}, {3, 1, 2}, {2, 3, 1}}
	for _, order := range orders {
		legs := make([]FlightLeg, 0, 3)
		for _, seq := range order {
			legs = append(legs, FlightLeg{Sequence: seq, OriginCode: "AAA", DestCode: "BBB", DepartureDate: "2025-03-05"})
		}
		if err := ValidateSequence(legs); err != nil {
			t.Errorf("input order %v: unexpected error %v", order, err)
		}
	}
}

func TestValidateSequenceRejectsDuplicatesAndGaps(t *testing.T) {
	cases := []struct {
		name string
		seqs []int
	}{
		{"duplicate", []int{1, 1, 2}},
		{"gap", []int{1, 3}},
		{"zero-based", []int{0, 1}},
	}
	for _, tc := range cases {
		legs := make([]FlightLeg, 0, len(tc.seqs))
		for _, seq := range tc.seqs {
			legs = append(legs, FlightLeg{Sequence: seq})
		}
		err := ValidateSequence(legs)
		if !errors.Is(err, ErrInvalidSequence) {
			t.Errorf("%s (%v): expected ErrInvalidSequence, got %v", tc.name, tc.seqs, err)
		}
	}
}

func TestValidateChronology(t *testing.T) {
	legs := legsSYDBKKNRT()
	if err := ValidateChronology(legs); err != nil {
		t.Fatalf("increasing dates: %v", err)
	}

	legs[1].DepartureDate = "2025-03-05" // equal dates are out of order too
	if err := ValidateChronology(legs); !errors.Is(err, ErrOutOfOrderDates) {
		t.Fatalf("equal dates: expected ErrOutOfOrderDates, got %v", err)
	}

	legs[1].DepartureDate = "2025-03-01"
	if err := ValidateChronology(legs); !errors.Is(err, ErrOutOfOrderDates) {
		t.Fatalf("decreasing dates: expected ErrOutOfOrderDates, got %v", err)
	}
}

func TestValidateChronologyIgnoresInputOrder(t *testing.T) {
	legs := legsSYDBKKNRT()
	legs[0], legs[1] = legs[1], legs[0]
	if err := ValidateChronology(legs); err != nil {
		t.Fatalf("chronology must sort by sequence first: %v", err)
	}
}

func TestValidateConnectivity(t *testing.T) {
	if err := ValidateConnectivity(legsSYDBKKNRT()); err != nil {
		t.Fatalf("connected itinerary: %v", err)
	}

	legs := legsSYDBKKNRT()
	legs[1].OriginCode = "HKT"
	err := ValidateConnectivity(legs)
	if !errors.Is(err, ErrDisconnectedItinerary) {
		t.Fatalf("expected ErrDisconnectedItinerary, got %v", err)
	}
}

func TestValidateForBooking(t *testing.T) {
	if err := ValidateForBooking(legsSYDBKKNRT()); err != nil {
		t.Fatalf("valid legs: %v", err)
	}

	if err := ValidateForBooking(legsSYDBKKNRT()[:1]); !errors.Is(err, ErrNotEnoughLegs) {
		t.Fatalf("single leg: expected ErrNotEnoughLegs, got %v", err)
	}

	// connectivity is advisory: a disconnected but well-sequenced itinerary books
	legs := legsSYDBKKNRT()
	legs[1].OriginCode = "HKT"
	if err := ValidateForBooking(legs); err != nil {
		t.Fatalf("disconnected itinerary must still pass the booking gate: %v", err)
	}
}
