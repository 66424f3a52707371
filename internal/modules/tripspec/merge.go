// README: Merge engine: combines an extracted partial with the stored specification.
package tripspec

import "time"

// KindPolicy decides the trip kind when neither the extracted partial nor the
// stored specification declares one. Two policies have shipped at different
// times; the active one is injected so both stay testable.
type KindPolicy func(merged *TripSpecification) TripKind

// PolicyAlwaysReturn is the legacy default: an undeclared trip is a return trip.
func PolicyAlwaysReturn(*TripSpecification) TripKind {
	return KindReturn
}

// PolicyInferFromReturnDate infers "return" when a return date is known and
// "oneway" otherwise.
func PolicyInferFromReturnDate(merged *TripSpecification) TripKind {
	if merged.ReturnDate != nil && *merged.ReturnDate != "" {
		return KindReturn
	}
	return KindOneWay
}

// KindPolicyByName maps a config value to a policy, defaulting to infer.
func KindPolicyByName(name string) KindPolicy {
	if name == "return" {
		return PolicyAlwaysReturn
	}
	return PolicyInferFromReturnDate
}

// Merge combines extracted fields with the current specification using
// latest-non-empty-wins per field. current may be nil (first turn). The
// result's IsComplete flag is always false here; the caller recomputes it
// with Evaluate after every merge.
//
// Merge is pure: it never mutates current and performs no I/O.
func Merge(extracted Partial, current *TripSpecification, policy KindPolicy, now time.Time) *TripSpecification {
	out := &TripSpecification{
		Adults:    MinAdults,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if current != nil {
		copied := *current
		copied.Legs = append([]FlightLeg(nil), current.Legs...)
		out = &copied
		out.UpdatedAt = now
	}
	out.IsComplete = false

	out.OriginCode = pickString(extracted.OriginCode, out.OriginCode)
	out.OriginName = pickString(extracted.OriginName, out.OriginName)
	out.DestCode = pickString(extracted.DestCode, out.DestCode)
	out.DestName = pickString(extracted.DestName, out.DestName)
	out.DepartureDate = pickString(extracted.DepartureDate, out.DepartureDate)
	out.ReturnDate = pickString(extracted.ReturnDate, out.ReturnDate)

	if extracted.Adults != nil {
		out.Adults = *extracted.Adults
	}
	if extracted.Children != nil {
		out.Children = *extracted.Children
	}
	if extracted.Infants != nil {
		out.Infants = *extracted.Infants
	}
	if extracted.Cabin != nil && *extracted.Cabin != "" {
		c := *extracted.Cabin
		out.Cabin = &c
	}

	// Legs are replaced wholesale; there is no partial leg update.
	if len(extracted.Legs) > 0 {
		out.Legs = append([]FlightLeg(nil), extracted.Legs...)
	}

	switch {
	case extracted.TripKind != nil && *extracted.TripKind != "":
		out.TripKind = *extracted.TripKind
	case out.TripKind != "":
		// keep the kind already established in earlier turns
	default:
		out.TripKind = policy(out)
	}

	// Legs are only meaningful for multi-city trips; a kind change drops them.
	if out.TripKind != KindMultiCity {
		out.Legs = nil
	}

	return out
}

func pickString(extracted, current *string) *string {
	if extracted != nil && *extracted != "" {
		v := *extracted
		return &v
	}
	return current
}
