// README: Completeness evaluator: required-field predicate plus diagnostics per trip kind.
package tripspec

import "math"

// Field names reported by MissingFields, in priority order.
const (
	FieldOrigin        = "origin"
	FieldDestination   = "destination"
	FieldDepartureDate = "departure_date"
	FieldReturnDate    = "return_date"
	FieldLegs          = "legs"
)

// Evaluation is the completeness verdict for the current field set.
type Evaluation struct {
	Complete   bool
	Missing    []string
	Percentage int
}

// Evaluate recomputes completeness from the specification's current fields.
// The cached IsComplete flag on the entity is never read.
func Evaluate(spec *TripSpecification) Evaluation {
	required := requirements(spec)
	missing := make([]string, 0, len(required))
	satisfied := 0
	for _, r := range required {
		if r.ok {
			satisfied++
			continue
		}
		missing = append(missing, r.name)
	}
	pct := 100
	if len(required) > 0 {
		pct = int(math.Round(float64(satisfied) / float64(len(required)) * 100))
	}
	return Evaluation{
		Complete:   len(missing) == 0,
		Missing:    missing,
		Percentage: pct,
	}
}

// IsComplete reports whether every field required for the spec's trip kind is present.
func IsComplete(spec *TripSpecification) bool {
	return Evaluate(spec).Complete
}

// MissingFields lists absent required fields in a fixed priority order
// (origin, destination, departure date, then the kind-specific field) so
// user-facing prompts stay stable across calls.
func MissingFields(spec *TripSpecification) []string {
	return Evaluate(spec).Missing
}

// CompletionPercentage is satisfied-over-required for the current trip kind,
// rounded to the nearest integer. UX feedback only, never a gate.
func CompletionPercentage(spec *TripSpecification) int {
	return Evaluate(spec).Percentage
}

type requirement struct {
	name string
	ok   bool
}

func requirements(spec *TripSpecification) []requirement {
	reqs := []requirement{
		{FieldOrigin, hasValue(spec.OriginCode)},
		{FieldDestination, hasValue(spec.DestCode)},
		{FieldDepartureDate, hasValue(spec.DepartureDate)},
	}
	switch effectiveKind(spec) {
	case KindReturn:
		reqs = append(reqs, requirement{FieldReturnDate, hasValue(spec.ReturnDate)})
	case KindMultiCity:
		reqs = append(reqs, requirement{FieldLegs, len(spec.Legs) >= 2})
	}
	return reqs
}

func effectiveKind(spec *TripSpecification) TripKind {
	if spec.TripKind == "" {
		return KindReturn
	}
	return spec.TripKind
}

func hasValue(s *string) bool {
	return s != nil && *s != ""
}
