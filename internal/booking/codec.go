// README: Encoders from a trip specification to the partner's URL formats.
package booking

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"farelink/internal/modules/tripspec"
)

// Config is the static partner configuration threaded into the codec.
// No ambient globals: main builds one of these from env config.
type Config struct {
	BaseURL        string
	DeepLinkScheme string
	Currency       string
	Market         string
	AffiliateID    string
	UTMSource      string
	UTMMedium      string
	UTMCampaign    string
}

// Codec encodes trip specifications into partner links and decodes full
// booking URLs back into partial specifications.
type Codec struct {
	cfg Config
}

func NewCodec(cfg Config) *Codec {
	return &Codec{cfg: cfg}
}

// Encode builds the link for the requested format.
func (c *Codec) Encode(format Format, spec *tripspec.TripSpecification) (string, error) {
	switch format {
	case FormatBooking:
		return c.BookingURL(spec)
	case FormatShareable:
		return c.ShareableURL(spec), nil
	case FormatDeepLink:
		return c.DeepLinkURL(spec), nil
	default:
		return "", ErrUnknownFormat
	}
}

// BookingURL builds the full web booking URL for the spec's trip kind.
// The partner parses parameters positionally in places, so emission order
// matters and the query is built in order rather than via url.Values.
func (c *Codec) BookingURL(spec *tripspec.TripSpecification) (string, error) {
	switch spec.TripKind {
	case tripspec.KindMultiCity:
		return c.multiCityURL(spec)
	case tripspec.KindOneWay:
		return c.pointToPointURL(spec, false)
	default:
		// trip kind defaults to return
		return c.pointToPointURL(spec, true)
	}
}

func (c *Codec) pointToPointURL(spec *tripspec.TripSpecification, withReturn bool) (string, error) {
	if !has(spec.OriginCode) || !has(spec.DestCode) || !has(spec.DepartureDate) {
		return "", ErrIncompleteSpec
	}
	if withReturn && !has(spec.ReturnDate) {
		return "", ErrIncompleteSpec
	}

	var q query
	q.add("from", *spec.OriginCode)
	q.add("to", *spec.DestCode)
	q.add("depart", toDDMMYYYY(*spec.DepartureDate))
	if withReturn {
		q.add("return", toDDMMYYYY(*spec.ReturnDate))
		q.add("type", "R")
	} else {
		q.add("type", "O")
	}
	c.addPassengerSuffix(&q, spec)
	return c.cfg.BaseURL + "/flights?" + q.encode(), nil
}

func (c *Codec) multiCityURL(spec *tripspec.TripSpecification) (string, error) {
	// Hard precondition: no partial URL may escape this point.
	if err := tripspec.ValidateForBooking(spec.Legs); err != nil {
		return "", err
	}
	legs := tripspec.SortedBySequence(spec.Legs)

	var q query
	for i, leg := range legs {
		n := strconv.Itoa(i + 1)
		q.add("from"+n, leg.OriginCode)
		q.add("to"+n, leg.DestCode)
		q.add("date"+n, toDDMMYYYY(leg.DepartureDate))
	}
	q.add("type", "M")
	q.add("segments", strconv.Itoa(len(legs)))
	c.addPassengerSuffix(&q, spec)
	return c.cfg.BaseURL + "/flights/multi-city?" + q.encode(), nil
}

// addPassengerSuffix appends the shared tail: passengers, class, and the
// static currency/market/affiliate parameters, then the optional UTM triple.
func (c *Codec) addPassengerSuffix(q *query, spec *tripspec.TripSpecification) {
	q.add("adults", strconv.Itoa(spec.Adults))
	if spec.Children > 0 {
		q.add("children", strconv.Itoa(spec.Children))
	}
	if spec.Infants > 0 {
		q.add("infants", strconv.Itoa(spec.Infants))
	}
	q.add("class", cabinOrDefault(spec.Cabin))
	q.add("currency", c.cfg.Currency)
	q.add("market", c.cfg.Market)
	if c.cfg.AffiliateID != "" {
		q.add("aid", c.cfg.AffiliateID)
	}
	if c.cfg.UTMSource != "" {
		q.add("utm_source", c.cfg.UTMSource)
		q.add("utm_medium", c.cfg.UTMMedium)
		q.add("utm_campaign", c.cfg.UTMCampaign)
	}
}

// ShareableURL builds the compact /s link. Sparse: keys whose value is
// unknown are omitted. Lossy (no multi-city legs) and write-only.
func (c *Codec) ShareableURL(spec *tripspec.TripSpecification) string {
	var q query
	if has(spec.OriginCode) {
		q.add("o", *spec.OriginCode)
	}
	if has(spec.DestCode) {
		q.add("d", *spec.DestCode)
	}
	if has(spec.DepartureDate) {
		q.add("dep", toYYMMDD(*spec.DepartureDate))
	}
	if has(spec.ReturnDate) && spec.TripKind != tripspec.KindOneWay {
		q.add("ret", toYYMMDD(*spec.ReturnDate))
	}
	q.add("t", shortKind(spec.TripKind))
	q.add("a", strconv.Itoa(spec.Adults))
	if spec.Children > 0 {
		q.add("c", strconv.Itoa(spec.Children))
	}
	if spec.Infants > 0 {
		q.add("i", strconv.Itoa(spec.Infants))
	}
	if spec.Cabin != nil {
		q.add("cl", string(*spec.Cabin))
	}
	return c.cfg.BaseURL + "/s?" + q.encode()
}

// DeepLinkURL builds the native-app handoff URI. The wire format differs
// from the web builders: raw ISO dates and a combined pax string.
func (c *Codec) DeepLinkURL(spec *tripspec.TripSpecification) string {
	var q query
	if has(spec.OriginCode) {
		q.add("from", *spec.OriginCode)
	}
	if has(spec.DestCode) {
		q.add("to", *spec.DestCode)
	}
	if has(spec.DepartureDate) {
		q.add("date", *spec.DepartureDate)
	}
	if has(spec.ReturnDate) {
		q.add("return", *spec.ReturnDate)
	}
	kind := spec.TripKind
	if kind == "" {
		kind = tripspec.KindReturn
	}
	q.add("type", string(kind))
	q.add("pax", fmt.Sprintf("%d-%d-%d", spec.Adults, spec.Children, spec.Infants))
	return c.cfg.DeepLinkScheme + "://search?" + q.encode()
}

func shortKind(kind tripspec.TripKind) string {
	switch kind {
	case tripspec.KindOneWay:
		return "o"
	case tripspec.KindMultiCity:
		return "m"
	default:
		return "r"
	}
}

func cabinOrDefault(c *tripspec.CabinClass) string {
	if c == nil || *c == "" {
		return string(tripspec.CabinEconomy)
	}
	return string(*c)
}

func has(s *string) bool {
	return s != nil && *s != ""
}

// query builds a URL query string preserving insertion order.
type query struct {
	pairs []string
}

func (q *query) add(key, value string) {
	q.pairs = append(q.pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
}

func (q *query) encode() string {
	return strings.Join(q.pairs, "&")
}
