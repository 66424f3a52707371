// README: Best-effort decoder from a full booking URL back to a partial specification.
package booking

import (
	"net/url"
	"strconv"

	"farelink/internal/modules/tripspec"
)

// ParseBookingURL decodes a full web booking URL into a partial
// specification. It is the inverse of BookingURL for the fields both cover.
// Shareable and deep links have no decoder (see Format.CanDecode).
//
// The contract is best-effort: malformed input yields an empty partial, never
// an error. Callers treat an empty result as "nothing extracted". This is a
// known limitation, not a crash boundary, and must not be confused with the
// validation failures raised elsewhere.
func ParseBookingURL(raw string) tripspec.Partial {
	u, err := url.Parse(raw)
	if err != nil {
		return tripspec.Partial{}
	}
	params := u.Query()

	switch params.Get("type") {
	case "O":
		return parsePointToPoint(params, tripspec.KindOneWay)
	case "R":
		return parsePointToPoint(params, tripspec.KindReturn)
	case "M":
		return parseMultiCity(params)
	default:
		return tripspec.Partial{}
	}
}

// Decode decodes raw in the named format. Only decodable formats are
// accepted; asking for a write-only format is an explicit error rather than
// a silent empty result.
func (c *Codec) Decode(format Format, raw string) (tripspec.Partial, error) {
	if !format.Valid() {
		return tripspec.Partial{}, ErrUnknownFormat
	}
	if !format.CanDecode() {
		return tripspec.Partial{}, ErrFormatNotDecodable
	}
	return ParseBookingURL(raw), nil
}

func parsePointToPoint(params url.Values, kind tripspec.TripKind) tripspec.Partial {
	from := params.Get("from")
	to := params.Get("to")
	depart := fromDDMMYYYY(params.Get("depart"))
	if from == "" || to == "" || depart == "" {
		return tripspec.Partial{}
	}

	p := tripspec.Partial{
		OriginCode:    &from,
		DestCode:      &to,
		DepartureDate: &depart,
		TripKind:      &kind,
	}
	if kind == tripspec.KindReturn {
		ret := fromDDMMYYYY(params.Get("return"))
		if ret == "" {
			return tripspec.Partial{}
		}
		p.ReturnDate = &ret
	}
	decodePassengers(params, &p)
	return p
}

// maxDecodedSegments bounds the segment count taken from an untrusted URL.
// Partner itineraries top out well below this; anything larger is malformed.
const maxDecodedSegments = 12

func parseMultiCity(params url.Values) tripspec.Partial {
	count, err := strconv.Atoi(params.Get("segments"))
	if err != nil || count < 2 || count > maxDecodedSegments {
		return tripspec.Partial{}
	}

	legs := make([]tripspec.FlightLeg, 0, count)
	for i := 1; i <= count; i++ {
		n := strconv.Itoa(i)
		from := params.Get("from" + n)
		to := params.Get("to" + n)
		date := fromDDMMYYYY(params.Get("date" + n))
		if from == "" || to == "" || date == "" {
			return tripspec.Partial{}
		}
		legs = append(legs, tripspec.FlightLeg{
			Sequence:      i,
			OriginCode:    from,
			DestCode:      to,
			DepartureDate: date,
		})
	}

	kind := tripspec.KindMultiCity
	p := tripspec.Partial{TripKind: &kind, Legs: legs}
	decodePassengers(params, &p)
	return p
}

func decodePassengers(params url.Values, p *tripspec.Partial) {
	if n, err := strconv.Atoi(params.Get("adults")); err == nil {
		p.Adults = &n
	}
	if n, err := strconv.Atoi(params.Get("children")); err == nil {
		p.Children = &n
	}
	if n, err := strconv.Atoi(params.Get("infants")); err == nil {
		p.Infants = &n
	}
	if cl := params.Get("class"); cl != "" {
		c := tripspec.CabinClass(cl)
		p.Cabin = &c
	}
}
