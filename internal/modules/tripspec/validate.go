// README: Field validation: airport codes, date rules, passenger clamping.
package tripspec

import (
	"errors"
	"fmt"
	"time"
)

var ErrValidation = errors.New("validation failed")

// FieldError attributes a validation failure to a single field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

// ValidAirportCode reports whether code is exactly 3 uppercase ASCII letters.
func ValidAirportCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// ValidDate reports whether s is a parseable YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Validator applies the configurable domain rules that sit outside the pure
// merge step: code formats, the minimum advance-purchase window, and
// passenger count clamping.
type Validator struct {
	// MinDaysAhead is the advance-purchase window in days. Zero disables it.
	MinDaysAhead int
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (v *Validator) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

// ValidateSpec checks scalar fields that are present. Absent fields are not
// errors here; completeness is the evaluator's job.
func (v *Validator) ValidateSpec(spec *TripSpecification) error {
	if spec.OriginCode != nil && !ValidAirportCode(*spec.OriginCode) {
		return &FieldError{Field: FieldOrigin, Reason: "airport code must be 3 uppercase letters"}
	}
	if spec.DestCode != nil && !ValidAirportCode(*spec.DestCode) {
		return &FieldError{Field: FieldDestination, Reason: "airport code must be 3 uppercase letters"}
	}
	if spec.OriginCode != nil && spec.DestCode != nil && *spec.OriginCode == *spec.DestCode {
		return &FieldError{Field: FieldDestination, Reason: "origin and destination must differ"}
	}
	if spec.DepartureDate != nil {
		if err := v.validateDate(FieldDepartureDate, *spec.DepartureDate); err != nil {
			return err
		}
	}
	if spec.ReturnDate != nil {
		if err := v.validateDate(FieldReturnDate, *spec.ReturnDate); err != nil {
			return err
		}
	}
	if spec.Cabin != nil {
		switch *spec.Cabin {
		case CabinEconomy, CabinPremium, CabinBusiness, CabinFirst:
		default:
			return &FieldError{Field: "cabin", Reason: "unknown cabin class"}
		}
	}
	for i := range spec.Legs {
		if err := v.validateLeg(&spec.Legs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateLeg(leg *FlightLeg) error {
	field := fmt.Sprintf("legs[%d]", leg.Sequence)
	if !ValidAirportCode(leg.OriginCode) || !ValidAirportCode(leg.DestCode) {
		return &FieldError{Field: field, Reason: "airport codes must be 3 uppercase letters"}
	}
	if leg.OriginCode == leg.DestCode {
		return &FieldError{Field: field, Reason: "leg origin and destination must differ"}
	}
	return v.validateDate(field, leg.DepartureDate)
}

func (v *Validator) validateDate(field, value string) error {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return &FieldError{Field: field, Reason: "date must be YYYY-MM-DD"}
	}
	if v.MinDaysAhead > 0 {
		earliest := v.now().AddDate(0, 0, v.MinDaysAhead).Truncate(24 * time.Hour)
		if d.Before(earliest) {
			return &FieldError{
				Field:  field,
				Reason: fmt.Sprintf("date must be at least %d days ahead", v.MinDaysAhead),
			}
		}
	}
	return nil
}

// ClampPassengers forces passenger counts into their documented bounds
// (adults 1-9, children 0-8, infants 0-8). The clamp is explicit policy, not
// silent correction. Infants above adults cannot be clamped meaningfully and
// are rejected instead.
func ClampPassengers(spec *TripSpecification) error {
	spec.Adults = clamp(spec.Adults, MinAdults, MaxAdults)
	spec.Children = clamp(spec.Children, MinChildren, MaxChildren)
	spec.Infants = clamp(spec.Infants, MinInfants, MaxInfants)
	if spec.Infants > spec.Adults {
		return ErrTooManyInfants
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
